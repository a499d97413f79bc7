package otel

import (
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupTracer_Disabled(t *testing.T) {
	tp, err := SetupTracer(TracerConfig{Enabled: false}, "svc", "1.0.0")
	if err != nil {
		t.Fatalf("disabled tracing must not error: %v", err)
	}
	if tp != nil {
		t.Error("disabled tracing must return a nil provider")
	}

	// Enabled without an endpoint is also off.
	tp, err = SetupTracer(TracerConfig{Enabled: true}, "svc", "1.0.0")
	if err != nil || tp != nil {
		t.Errorf("expected (nil, nil) without endpoint, got (%v, %v)", tp, err)
	}
}

func TestSetupLogs_Disabled(t *testing.T) {
	lp, err := SetupLogs(LogConfig{Enabled: false}, "svc", "1.0.0")
	if err != nil {
		t.Fatalf("disabled log export must not error: %v", err)
	}
	if lp != nil {
		t.Error("disabled log export must return a nil provider")
	}
}

func TestSetupMeter_Disabled(t *testing.T) {
	mp, err := SetupMeter(MeterConfig{Enabled: false}, "svc", "1.0.0")
	if err != nil {
		t.Fatalf("disabled metrics must not error: %v", err)
	}
	if mp != nil {
		t.Error("disabled metrics must return a nil provider")
	}
}

func TestProviders_NilShutdown(t *testing.T) {
	var tp *TracerProvider
	var lp *LogProvider
	var mp *MeterProvider

	if err := tp.Shutdown(t.Context()); err != nil {
		t.Errorf("nil tracer provider shutdown: %v", err)
	}
	if err := lp.Shutdown(t.Context()); err != nil {
		t.Errorf("nil log provider shutdown: %v", err)
	}
	if err := mp.Shutdown(t.Context()); err != nil {
		t.Errorf("nil meter provider shutdown: %v", err)
	}
}

func TestParseSampler(t *testing.T) {
	tests := []struct {
		in   string
		want sdktrace.Sampler
	}{
		{"", sdktrace.AlwaysSample()},
		{"always", sdktrace.AlwaysSample()},
		{"never", sdktrace.NeverSample()},
		{"ratio:0.25", sdktrace.TraceIDRatioBased(0.25)},
		{"ratio:garbage", sdktrace.AlwaysSample()},
		{"unknown", sdktrace.AlwaysSample()},
	}

	for _, tt := range tests {
		got := parseSampler(tt.in)
		if got.Description() != tt.want.Description() {
			t.Errorf("parseSampler(%q) = %s, want %s", tt.in, got.Description(), tt.want.Description())
		}
	}
}
