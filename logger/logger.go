package logger

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/awantoch/hello/constants"
)

var (
	internalLogger *zap.SugaredLogger
	loggerMutex    sync.Mutex
)

type runIDKeyType struct{}

var runIDKey = runIDKeyType{}

func init() {
	initLoggers("production")
}

func initLoggers(mode string) {
	// Diagnostics go to stderr only; stdout carries the greeting.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if os.Getenv(constants.EnvDebug) != "" || mode == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		log.Printf("Failed to initialize zap logger: %v", err)
		internalLogger = nil
		return
	}
	internalLogger = l.Sugar()
}

func Warn(format string, v ...any) {
	if internalLogger != nil {
		internalLogger.Warnf(format, v...)
	}
}

// SetInternalOutput sends all log output to w at debug level. Tests use it
// to capture logs.
func SetInternalOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	internalLogger = zap.New(core).Sugar()
}

// SetMode rebuilds the stderr logger; "debug" enables debug level.
func SetMode(mode string) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	initLoggers(mode)
}

// Sync flushes buffered log entries.
func Sync() {
	if internalLogger != nil {
		_ = internalLogger.Sync()
	}
}

// WithRunID returns a new context carrying the given run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from ctx, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(runIDKey)
	if s, ok := v.(string); ok {
		return s, true
	}
	return "", false
}

func withRunID(ctx context.Context, fields []any) []any {
	if runID, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, "run_id", runID)
	}
	return fields
}

// WarnCtx logs a warning message, including the run ID if present.
func WarnCtx(ctx context.Context, msg string, fields ...any) {
	if internalLogger != nil {
		internalLogger.Warnw(msg, withRunID(ctx, fields)...)
	}
}

// ErrorCtx logs an error message, including the run ID if present.
func ErrorCtx(ctx context.Context, msg string, fields ...any) {
	if internalLogger != nil {
		internalLogger.Errorw(msg, withRunID(ctx, fields)...)
	}
}

// DebugCtx logs a debug message, including the run ID if present.
func DebugCtx(ctx context.Context, msg string, fields ...any) {
	if internalLogger != nil {
		internalLogger.Debugw(msg, withRunID(ctx, fields)...)
	}
}
