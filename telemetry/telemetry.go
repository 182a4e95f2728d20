package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/awantoch/hello/config"
	"github.com/awantoch/hello/constants"
)

// ShutdownFunc flushes and stops the installed tracer provider.
type ShutdownFunc func(ctx context.Context) error

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// traceWriter receives spans from the stdout exporter. It is never
// os.Stdout, which is reserved for the greeting.
var traceWriter io.Writer = os.Stderr

var (
	stageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hello_pipeline_stage_total",
			Help: "Total number of pipeline stages executed.",
		},
		[]string{"stage", "outcome"},
	)
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hello_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(stageTotal, stageDuration)
}

// Init installs a global tracer provider for the configured exporter.
// Supported exporters: "none", "stdout", "otlp".
func Init(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	if cfg == nil || cfg.Tracing == nil {
		return noop, nil
	}
	serviceName := constants.ServiceName
	if cfg.Tracing.ServiceName != "" {
		serviceName = cfg.Tracing.ServiceName
	}

	var exp sdktrace.SpanExporter
	var err error
	switch cfg.Tracing.Exporter {
	case "", constants.TraceExporterNone:
		return noop, nil
	case constants.TraceExporterStdout:
		exp, err = stdouttrace.New(
			stdouttrace.WithWriter(traceWriter),
			stdouttrace.WithPrettyPrint(),
		)
	case constants.TraceExporterOTLP:
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.Tracing.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint))
		}
		exp, err = otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported tracing exporter %q", cfg.Tracing.Exporter)
	}
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// ObserveStage records one execution of a pipeline stage.
func ObserveStage(stage string, err error, d time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	stageTotal.WithLabelValues(stage, outcome).Inc()
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteMetrics writes every registered metric to path in the Prometheus
// text format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
