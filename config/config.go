package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/awantoch/hello/constants"
)

// ErrInvalidConfig is returned for config files that cannot be parsed or do
// not match the embedded schema.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the ambient settings of a run. Nothing here reaches standard
// output; the greeting and its labels are fixed.
type Config struct {
	Log     LogConfig      `json:"log"`
	Tracing *TracingConfig `json:"tracing,omitempty"`
	Metrics MetricsConfig  `json:"metrics"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// TracingConfig selects the span exporter.
type TracingConfig struct {
	// Exporter is one of "none", "stdout" or "otlp".
	Exporter string `json:"exporter"`
	// Endpoint is the OTLP/HTTP collector address (host:port), used by "otlp".
	Endpoint    string `json:"endpoint,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

type MetricsConfig struct {
	// File, when set, receives the Prometheus text exposition after each run.
	File string `json:"file,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: constants.LogLevelInfo},
		Tracing: &TracingConfig{
			Exporter:    constants.TraceExporterNone,
			ServiceName: constants.ServiceName,
		},
	}
}

// LoadConfig reads a JSON or YAML config file, validates it against the
// embedded schema and overlays it on Default. Read errors are returned as is,
// so callers can test for fs.ErrNotExist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if cfg.Tracing != nil && cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = constants.ServiceName
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// schema and one decoder. An empty document becomes an empty object.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(doc)
}
