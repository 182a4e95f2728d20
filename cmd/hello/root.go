package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/awantoch/hello/config"
	"github.com/awantoch/hello/constants"
	"github.com/awantoch/hello/logger"
	"github.com/awantoch/hello/processor"
	"github.com/awantoch/hello/telemetry"
)

var (
	exit = os.Exit
	// stdout overrides the greeting destination in tests; nil means os.Stdout.
	stdout        io.Writer
	configPath    string
	debug         bool
	traceExporter string
	metricsFile   string
)

// NewRootCmd creates the 'hello' command. Positional arguments and unknown
// flags are accepted and ignored, and so are ambient flags that fail to parse.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.CmdHello,
		Short:         constants.DescHello,
		Long:          constants.DescLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags().Changed(constants.FlagConfig))
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, constants.FlagConfig, "c", config.DefaultConfigPath, "Path to hello config (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, constants.FlagDebug, false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&traceExporter, constants.FlagTrace, "", "Tracing exporter: none, stdout or otlp (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, constants.FlagMetricsFile, "", "Write Prometheus metrics to this file after the run (overrides config file)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		logger.Warn("%s: %v", constants.WarnArgsIgnored, err)
		return run(cmd.Context(), false)
	})
	return rootCmd
}

// run prints the greeting. Config, telemetry and metrics faults are logged as
// warnings and never keep the greeting from being printed; only a failed
// write to stdout is returned.
func run(ctx context.Context, explicitConfig bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithRunID(ctx, uuid.New().String())

	cfg, err := loadConfig(configPath, explicitConfig)
	if err != nil {
		logger.WarnCtx(ctx, constants.WarnConfigIgnored, "error", err)
		cfg = config.Default()
	}

	// CLI flags override the config file
	if traceExporter != "" {
		if cfg.Tracing == nil {
			cfg.Tracing = config.Default().Tracing
		}
		cfg.Tracing.Exporter = traceExporter
	}
	if metricsFile != "" {
		cfg.Metrics.File = metricsFile
	}
	if debug || cfg.Log.Level == constants.LogLevelDebug || os.Getenv(constants.EnvDebug) != "" {
		logger.SetMode(constants.LogLevelDebug)
	}

	shutdown, err := telemetry.Init(ctx, cfg)
	if err != nil {
		logger.WarnCtx(ctx, constants.WarnTracingDisabled, "error", err)
		shutdown = func(context.Context) error { return nil }
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.WarnCtx(ctx, constants.WarnTracerShutdown, "error", err)
		}
	}()

	logger.DebugCtx(ctx, constants.MsgRunStarted, "config", configPath)
	w := stdout
	if w == nil {
		w = os.Stdout
	}
	if err := processor.Default(w).ProcessMessage(ctx); err != nil {
		logger.ErrorCtx(ctx, constants.MsgPrintFailed, "error", err)
		return fmt.Errorf(constants.ErrProcessFailed, err)
	}

	if cfg.Metrics.File != "" {
		if err := telemetry.WriteMetrics(cfg.Metrics.File); err != nil {
			logger.WarnCtx(ctx, constants.WarnMetricsNotWritten, "file", cfg.Metrics.File, "error", err)
		}
	}
	logger.DebugCtx(ctx, constants.MsgRunFinished)
	return nil
}

// loadConfig reads the config file. A missing file is only an error when
// the path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, fmt.Errorf(constants.ErrConfigLoadFailed, path, err)
}
