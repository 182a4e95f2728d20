package constants

// CLI Commands
const (
	CmdHello = "hello"
)

// CLI Short Descriptions
const (
	DescHello = "Print the greeting"
	DescLong  = "hello assembles the greeting one character at a time, formats it and prints it to standard output."
)

// CLI Flags
const (
	FlagConfig      = "config"
	FlagDebug       = "debug"
	FlagTrace       = "trace"
	FlagMetricsFile = "metrics-file"
)

// CLI Error Messages
const (
	ErrConfigLoadFailed = "failed to load config %s: %w"
	ErrProcessFailed    = "failed to print greeting: %w"
)

// CLI Warnings. Ambient faults are logged and the greeting is still printed.
const (
	WarnArgsIgnored       = "ignoring unparsable arguments"
	WarnConfigIgnored     = "config ignored, using defaults"
	WarnTracingDisabled   = "tracing disabled"
	WarnMetricsNotWritten = "metrics not written"
	WarnTracerShutdown    = "tracer shutdown failed"
)

// CLI Log Messages
const (
	MsgRunStarted  = "run started"
	MsgRunFinished = "run finished"
	MsgPrintFailed = "failed to print greeting"
)
