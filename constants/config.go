package constants

// Configuration Files
const (
	ConfigFileName   = "hello.config.json"
	ConfigSchemaFile = "hello.config.schema.json"
)

// Environment Variables
const (
	EnvDebug = "HELLO_DEBUG"
)

// Log Levels
const (
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
)

// Tracing Exporters
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
	TraceExporterOTLP   = "otlp"
)

// Service
const (
	ServiceName = "hello"
)
