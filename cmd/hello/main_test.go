package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/awantoch/hello/logger"
	"github.com/awantoch/hello/testutil"
)

const want = "[Strategy]: [Formatted]: Hello, World!\n"

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("stdout closed") }

// captureLogs routes the logger into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetInternalOutput(&buf)
	t.Cleanup(func() { logger.SetInternalOutput(os.Stderr) })
	return &buf
}

func runHello(t *testing.T, args ...string) (string, int) {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	code := -1
	out := testutil.CaptureStdout(func() {
		code = execute(args)
	})
	return out, code
}

func TestHello_NoArgs(t *testing.T) {
	out, code := runHello(t)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
}

func TestHello_TwiceIdentical(t *testing.T) {
	first, code := runHello(t)
	require.Equal(t, 0, code)
	second, code := runHello(t)
	require.Equal(t, 0, code)
	require.Equal(t, first, second)
}

func TestHello_IgnoresArgs(t *testing.T) {
	cases := [][]string{
		{"foo"},
		{"foo", "bar", "baz"},
		{"--unknown"},
		{"--unknown=1", "positional", "-z"},
	}
	for _, args := range cases {
		out, code := runHello(t, args...)
		require.Equal(t, 0, code, "args %v", args)
		require.Equal(t, want, out, "args %v", args)
	}
}

func TestHello_WriteFailure(t *testing.T) {
	logs := captureLogs(t)
	stdout = failingWriter{}
	defer func() { stdout = nil }()

	code := execute([]string{})
	require.Equal(t, 1, code)
	require.Contains(t, logs.String(), "failed to print greeting")
	require.Contains(t, logs.String(), "stdout closed")
	require.Contains(t, logs.String(), "run_id")
}

func TestHello_ExplicitMissingConfig(t *testing.T) {
	logs := captureLogs(t)
	out, code := runHello(t, "--config", filepath.Join(t.TempDir(), "missing.json"))
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Contains(t, logs.String(), "config ignored, using defaults")
	require.Contains(t, logs.String(), "failed to load config")
}

func TestHello_InvalidConfig(t *testing.T) {
	logs := captureLogs(t)
	path := filepath.Join(t.TempDir(), "hello.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"greeting":"Hi"}`), 0644))

	out, code := runHello(t, "-c", path)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Contains(t, logs.String(), "invalid config")
}

func TestHello_InvalidConfigInWorkingDir(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.config.json"), []byte(`{"log":{"level":"trace"}}`), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, code := runHello(t)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Contains(t, logs.String(), "WARN")
	require.Contains(t, logs.String(), "config ignored, using defaults")

	out, code = runHello(t, "--trace", "zipkin")
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
}

func TestHello_UnparsableFlags(t *testing.T) {
	cases := [][]string{
		{"--trace"},
		{"--debug=maybe"},
		{"positional", "--metrics-file"},
	}
	for _, args := range cases {
		logs := captureLogs(t)
		out, code := runHello(t, args...)
		require.Equal(t, 0, code, "args %v", args)
		require.Equal(t, want, out, "args %v", args)
		require.Contains(t, logs.String(), "ignoring unparsable arguments", "args %v", args)
	}
}

func TestHello_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "hello.prom")
	cfgPath := filepath.Join(dir, "hello.config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("metrics:\n  file: "+metrics+"\n"), 0644))

	out, code := runHello(t, "--config", cfgPath)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	require.Contains(t, string(data), `hello_pipeline_stage_total{outcome="ok",stage="emit"}`)
}

func TestHello_MetricsFlagOverridesConfig(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "flag.prom")
	out, code := runHello(t, "--metrics-file", metrics)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	_, err := os.Stat(metrics)
	require.NoError(t, err)
}

func TestHello_TraceStdoutKeepsStdoutClean(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	out, code := runHello(t, "--trace", "stdout")
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.NotContains(t, out, "ProcessMessage")
}

func TestHello_UnsupportedTrace(t *testing.T) {
	logs := captureLogs(t)
	out, code := runHello(t, "--trace", "zipkin")
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Contains(t, logs.String(), "tracing disabled")
	require.Contains(t, logs.String(), "unsupported tracing exporter")
}

func TestHello_MetricsWriteFailure(t *testing.T) {
	logs := captureLogs(t)
	metrics := filepath.Join(t.TempDir(), "missing", "dir", "hello.prom")
	out, code := runHello(t, "--metrics-file", metrics)
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Contains(t, logs.String(), "metrics not written")
}

func TestHello_DebugLogsStayOffStdout(t *testing.T) {
	defer logger.SetMode("production")
	out, code := runHello(t, "--debug")
	require.Equal(t, 0, code)
	require.Equal(t, want, out)
	require.Equal(t, 1, strings.Count(out, "\n"))
}
