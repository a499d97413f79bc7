package glint

import (
	"strings"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got '%s'", cfg.Level)
	}
	if !cfg.Console.Enabled {
		t.Error("expected console enabled by default")
	}
	if cfg.Console.Format != "json" {
		t.Errorf("expected console format 'json', got '%s'", cfg.Console.Format)
	}
	if cfg.File.Enabled {
		t.Error("expected file disabled by default")
	}
	if cfg.OTEL.Enabled {
		t.Error("expected OTEL disabled by default")
	}
	if cfg.OTEL.Protocol != "grpc" {
		t.Errorf("expected OTEL protocol 'grpc', got '%s'", cfg.OTEL.Protocol)
	}
	if cfg.Tracing.Enabled || cfg.Metrics.Enabled {
		t.Error("expected tracing and metrics disabled by default")
	}
}

func TestConfig_Development(t *testing.T) {
	cfg := Development()

	if cfg.Level != "debug" {
		t.Errorf("expected level 'debug', got '%s'", cfg.Level)
	}
	if !cfg.Development {
		t.Error("expected development mode enabled")
	}
	if cfg.Console.Format != "pretty" {
		t.Errorf("expected console format 'pretty', got '%s'", cfg.Console.Format)
	}
}

func TestConfig_Builders(t *testing.T) {
	cfg := Default().
		WithLevel("debug").
		WithFormat("pretty").
		WithService("my-service").
		WithOTEL("localhost:4317").
		WithTracing("localhost:4317").
		WithMetrics("localhost:4317").
		WithFile("/var/log/app.log")

	if cfg.Level != "debug" {
		t.Errorf("expected level 'debug', got '%s'", cfg.Level)
	}
	if cfg.Console.Format != "pretty" {
		t.Errorf("expected format 'pretty', got '%s'", cfg.Console.Format)
	}
	if cfg.ServiceName != "my-service" {
		t.Errorf("expected service 'my-service', got '%s'", cfg.ServiceName)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "localhost:4317" {
		t.Error("expected OTEL enabled with endpoint")
	}
	if !cfg.Tracing.Enabled || !cfg.Metrics.Enabled {
		t.Error("expected tracing and metrics enabled")
	}
	if !cfg.File.Enabled || cfg.File.Path != "/var/log/app.log" {
		t.Error("expected file enabled with path")
	}
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "pretty")
	t.Setenv("SERVICE_NAME", "indexer")
	t.Setenv("LOG_FILE", "/tmp/indexer.log")

	cfg := FromEnv()

	if cfg.Level != "error" {
		t.Errorf("expected level 'error', got '%s'", cfg.Level)
	}
	if cfg.Console.Format != "pretty" {
		t.Errorf("expected format 'pretty', got '%s'", cfg.Console.Format)
	}
	if cfg.ServiceName != "indexer" {
		t.Errorf("expected service 'indexer', got '%s'", cfg.ServiceName)
	}
	if !cfg.File.Enabled || cfg.File.Path != "/tmp/indexer.log" {
		t.Error("expected file output enabled from LOG_FILE")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"INFO", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"Warning", "warn"},
		{"error", "error"},
		{"ERROR", "error"},
		{"invalid", "info"}, // defaults to info
		{"", "info"},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			got := strings.ToLower(level.String())
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestStructuredFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
		dev    bool
		want   bool
	}{
		{"json", "json", false, true},
		{"json uppercase", "JSON", false, true},
		{"empty production", "", false, true},
		{"empty development", "", true, false},
		{"pretty", "pretty", false, false},
		{"unrecognized", "xml", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Console.Format = tt.format
			cfg.Development = tt.dev
			if got := structuredFormat(cfg); got != tt.want {
				t.Errorf("structuredFormat(format=%q dev=%v) = %v, want %v", tt.format, tt.dev, got, tt.want)
			}
		})
	}
}
