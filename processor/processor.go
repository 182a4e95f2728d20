// Package processor runs the greeting pipeline: obtain the text, format it,
// print it.
package processor

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/awantoch/hello/format"
	"github.com/awantoch/hello/greeting"
	"github.com/awantoch/hello/logger"
	"github.com/awantoch/hello/output"
	"github.com/awantoch/hello/telemetry"
)

const tracerName = "github.com/awantoch/hello/processor"

// Pipeline stage names, used for spans, metrics and error wrapping.
const (
	StageRefresh = "refresh"
	StageText    = "text"
	StageFormat  = "format"
	StageEmit    = "emit"
)

// Processor drives a single pass of the pipeline.
type Processor struct {
	text      greeting.TextProvider
	printer   output.Printer
	formatter format.Formatter
}

// New returns a Processor wired to the given components.
func New(text greeting.TextProvider, printer output.Printer, formatter format.Formatter) *Processor {
	return &Processor{text: text, printer: printer, formatter: formatter}
}

// Default wires the "Hello, World!" assembler, the label formatter and a
// stdout printer writing to w (os.Stdout when nil).
func Default(w io.Writer) *Processor {
	return New(greeting.NewHelloWorld(), output.NewStdoutPrinter(w), format.NewLabelFormatter())
}

// ProcessMessage refreshes the text source if it supports it, reads and
// formats the text, then prints it. A printer that also implements
// output.PrintStrategy is always driven through ExecutePrint.
func (p *Processor) ProcessMessage(ctx context.Context) error {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "ProcessMessage")
	defer span.End()
	if runID, ok := logger.RunIDFromContext(ctx); ok {
		span.SetAttributes(attribute.String("run_id", runID))
	}

	if r, ok := p.text.(greeting.Refresher); ok {
		if err := p.stage(ctx, StageRefresh, func(ctx context.Context) error {
			return r.Refresh(ctx)
		}); err != nil {
			return p.fail(span, StageRefresh, err)
		}
	}

	var message, formatted string
	p.step(ctx, StageText, func() {
		message = p.text.Text()
	})
	p.step(ctx, StageFormat, func() {
		formatted = p.formatter.FormatMessage(message)
	})

	if err := p.stage(ctx, StageEmit, func(ctx context.Context) error {
		return p.emit(ctx, formatted)
	}); err != nil {
		return p.fail(span, StageEmit, err)
	}
	return nil
}

func (p *Processor) emit(ctx context.Context, formatted string) error {
	if s, ok := p.printer.(output.PrintStrategy); ok {
		logger.DebugCtx(ctx, "emitting via print strategy")
		return s.ExecutePrint(formatted)
	}
	logger.DebugCtx(ctx, "emitting via plain printer")
	return p.printer.Print(formatted)
}

// stage runs fn inside a child span and records its duration and outcome.
func (p *Processor) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, done := p.begin(ctx, name)
	err := fn(ctx)
	done(err)
	return err
}

// step is stage for work that cannot fail.
func (p *Processor) step(ctx context.Context, name string, fn func()) {
	_, done := p.begin(ctx, name)
	fn()
	done(nil)
}

// begin opens the span for a stage. The returned func ends it and records
// the outcome.
func (p *Processor) begin(ctx context.Context, name string) (context.Context, func(error)) {
	ctx, span := telemetry.Tracer(tracerName).Start(ctx, name)
	start := time.Now()
	return ctx, func(err error) {
		defer span.End()
		telemetry.ObserveStage(name, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		logger.DebugCtx(ctx, "stage complete", "stage", name)
	}
}

func (p *Processor) fail(span trace.Span, stage string, err error) error {
	span.SetStatus(codes.Error, stage)
	return fmt.Errorf("%s: %w", stage, err)
}
