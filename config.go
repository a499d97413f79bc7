package glint

import (
	"io"
	"os"
	"time"
)

// Config holds the complete logging configuration.
// A Config is a value: Configure replaces the process-wide state wholesale,
// it never merges a new Config into the old one.
type Config struct {
	// Level sets the minimum log level: debug, info, warn/warning, error.
	// Unrecognized values fall back to "info".
	// Default: "info"
	Level string `yaml:"level" json:"level" env:"LOG_LEVEL"`

	// Development enables development mode with:
	// - Pretty console output by default
	// - Caller information in logs
	// - Stack traces on error
	Development bool `yaml:"development" json:"development" env:"LOG_DEVELOPMENT"`

	// ServiceName identifies this service in logs and OTEL.
	// Default: "unknown"
	ServiceName string `yaml:"service_name" json:"service_name" env:"SERVICE_NAME"`

	// Version is the application version, included in logs.
	Version string `yaml:"version" json:"version" env:"SERVICE_VERSION"`

	// Console output configuration.
	Console ConsoleConfig `yaml:"console" json:"console"`

	// File output configuration (with rotation).
	File FileConfig `yaml:"file" json:"file"`

	// OTEL (OpenTelemetry) log exporter configuration.
	OTEL OTELConfig `yaml:"otel" json:"otel"`

	// Tracing configures the OTEL tracer provider used by the
	// instrumentation wrappers and the Tracer facade.
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`

	// Metrics configures the OTEL meter provider used by the
	// instrumentation wrappers for call/failure counters.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// ConsoleConfig configures console (stdout/stderr) output.
type ConsoleConfig struct {
	// Enabled controls whether console output is active.
	// Default: true
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Format: "json" for structured JSON, anything else for the
	// human-readable renderer. Default: "json" (production),
	// "pretty" (development).
	Format string `yaml:"format" json:"format"`

	// Color enables ANSI colors in pretty format.
	// Default: true
	Color bool `yaml:"color" json:"color"`

	// ErrorsToStderr sends warn/error to stderr, others to stdout.
	// Ignored when Writer is set.
	// Default: true
	ErrorsToStderr bool `yaml:"errors_to_stderr" json:"errors_to_stderr"`

	// Writer overrides the console destination (defaults to the process's
	// standard output). Used by hosts that redirect logs and by tests.
	Writer io.Writer `yaml:"-" json:"-"`
}

// FileConfig configures file output with rotation.
type FileConfig struct {
	// Enabled controls whether file output is active.
	// Default: false
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Path is the log file path.
	// Example: "/var/log/dexwatch/app.log"
	Path string `yaml:"path" json:"path"`

	// MaxSizeMB is the maximum size in MB before rotation.
	// Default: 100
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb"`

	// MaxAgeDays is the maximum age in days to retain old logs.
	// Default: 7
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days"`

	// MaxBackups is the maximum number of old log files to keep.
	// Default: 5
	MaxBackups int `yaml:"max_backups" json:"max_backups"`

	// Compress enables gzip compression of rotated log files.
	// Default: true
	Compress bool `yaml:"compress" json:"compress"`
}

// OTELConfig configures OpenTelemetry log export.
type OTELConfig struct {
	// Enabled controls whether OTEL export is active.
	// Default: false
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Protocol: "grpc" or "http". gRPC is recommended for performance.
	// Default: "grpc"
	Protocol string `yaml:"protocol" json:"protocol"`

	// Endpoint is the OTEL collector endpoint.
	// Examples: "localhost:4317" (gRPC), "localhost:4318/v1/logs" (HTTP)
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Insecure disables TLS for the connection.
	// Default: false
	Insecure bool `yaml:"insecure" json:"insecure"`

	// Headers are additional headers to send (e.g., auth tokens).
	Headers map[string]string `yaml:"headers" json:"headers"`

	// Timeout is the export timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// BatchSize is the number of logs per export batch.
	// Default: 512
	BatchSize int `yaml:"batch_size" json:"batch_size"`

	// ExportInterval is how often to export batched logs.
	// Default: 5s
	ExportInterval time.Duration `yaml:"export_interval" json:"export_interval"`

	// Attributes are additional resource attributes for OTEL.
	// Example: {"environment": "production", "chain": "solana"}
	Attributes map[string]string `yaml:"attributes" json:"attributes"`
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	// Enabled controls whether spans are created and exported.
	// Default: false
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Protocol: "grpc" or "http".
	// Default: "grpc"
	Protocol string `yaml:"protocol" json:"protocol"`

	// Endpoint is the OTEL collector endpoint. Falls back to
	// OTEL.Endpoint when empty.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Insecure disables TLS for the connection.
	Insecure bool `yaml:"insecure" json:"insecure"`

	// Sampler: "always", "never", or a ratio like "ratio:0.1".
	// Default: "always"
	Sampler string `yaml:"sampler" json:"sampler"`

	// BatchSize is the number of spans per export batch.
	BatchSize int `yaml:"batch_size" json:"batch_size"`

	// ExportInterval is how often to export batched spans.
	ExportInterval time.Duration `yaml:"export_interval" json:"export_interval"`

	// Timeout is the export timeout.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Headers are additional headers to send (e.g., auth tokens).
	Headers map[string]string `yaml:"headers" json:"headers"`

	// Attributes are additional resource attributes.
	Attributes map[string]string `yaml:"attributes" json:"attributes"`
}

// MetricsConfig configures OpenTelemetry metric export.
type MetricsConfig struct {
	// Enabled controls whether call/failure counters are exported.
	// Default: false
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Protocol: "grpc" or "http".
	// Default: "grpc"
	Protocol string `yaml:"protocol" json:"protocol"`

	// Endpoint is the OTEL collector endpoint. Falls back to
	// OTEL.Endpoint when empty.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Insecure disables TLS for the connection.
	Insecure bool `yaml:"insecure" json:"insecure"`

	// Interval is how often metrics are exported.
	// Default: 15s
	Interval time.Duration `yaml:"interval" json:"interval"`

	// Timeout is the export timeout.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Headers are additional headers to send (e.g., auth tokens).
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// Default returns a Config with sensible production defaults.
func Default() Config {
	return Config{
		Level:       "info",
		Development: false,
		ServiceName: "unknown",
		Console: ConsoleConfig{
			Enabled:        true,
			Format:         "json",
			Color:          true,
			ErrorsToStderr: true,
		},
		File: FileConfig{
			Enabled:    false,
			MaxSizeMB:  100,
			MaxAgeDays: 7,
			MaxBackups: 5,
			Compress:   true,
		},
		OTEL: OTELConfig{
			Enabled:        false,
			Protocol:       "grpc",
			Insecure:       false,
			Timeout:        10 * time.Second,
			BatchSize:      512,
			ExportInterval: 5 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Protocol: "grpc",
			Sampler:  "always",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Protocol: "grpc",
			Interval: 15 * time.Second,
		},
	}
}

// Development returns a Config optimized for development.
func Development() Config {
	cfg := Default()
	cfg.Level = "debug"
	cfg.Development = true
	cfg.Console.Format = "pretty"
	return cfg
}

// FromEnv builds a Config from environment variables:
// LOG_LEVEL, LOG_FORMAT, LOG_DEVELOPMENT, LOG_FILE, SERVICE_NAME,
// SERVICE_VERSION, OTEL_ENDPOINT. Unset variables keep the defaults;
// unrecognized values degrade gracefully like everywhere else.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("LOG_DEVELOPMENT"); v == "true" || v == "1" {
		cfg = Development()
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Console.Format = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("SERVICE_VERSION"); v != "" {
		cfg.Version = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg = cfg.WithFile(v)
	}
	if v := os.Getenv("OTEL_ENDPOINT"); v != "" {
		cfg = cfg.WithOTEL(v)
	}

	return cfg
}

// WithLevel returns a copy of the config with the specified level.
func (c Config) WithLevel(level string) Config {
	c.Level = level
	return c
}

// WithFormat returns a copy of the config with the specified console format.
func (c Config) WithFormat(format string) Config {
	c.Console.Format = format
	return c
}

// WithService returns a copy of the config with the specified service name.
func (c Config) WithService(name string) Config {
	c.ServiceName = name
	return c
}

// WithOutput returns a copy of the config writing console output to w.
func (c Config) WithOutput(w io.Writer) Config {
	c.Console.Writer = w
	return c
}

// WithOTEL returns a copy of the config with OTEL log export enabled.
func (c Config) WithOTEL(endpoint string) Config {
	c.OTEL.Enabled = true
	c.OTEL.Endpoint = endpoint
	return c
}

// WithTracing returns a copy of the config with trace export enabled.
func (c Config) WithTracing(endpoint string) Config {
	c.Tracing.Enabled = true
	c.Tracing.Endpoint = endpoint
	return c
}

// WithMetrics returns a copy of the config with metric export enabled.
func (c Config) WithMetrics(endpoint string) Config {
	c.Metrics.Enabled = true
	c.Metrics.Endpoint = endpoint
	return c
}

// WithFile returns a copy of the config with file logging enabled.
func (c Config) WithFile(path string) Config {
	c.File.Enabled = true
	c.File.Path = path
	return c
}
