package glint_test

import (
	"context"
	"testing"

	"github.com/luminelabs/glint"
)

func silentLogger() glint.Logger {
	cfg := glint.Default()
	cfg.Console.Enabled = false // measure the emission path, not I/O
	return glint.New(cfg)
}

func BenchmarkEmit(b *testing.B) {
	logger := silentLogger()
	ctx := context.Background()

	b.Run("Field_Int", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info(ctx, "swap indexed", glint.Int("slot", 123))
		}
	})

	b.Run("Field_String", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info(ctx, "swap indexed", glint.String("pool", "8sLbN"))
		}
	})

	b.Run("Field_F_Int", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			// F accepts any, so this boxes the int
			logger.Info(ctx, "swap indexed", glint.F("slot", 123))
		}
	})

	b.Run("Complex_Usage", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			logger.Info(ctx, "transaction processed",
				glint.Int("batch_size", 128),
				glint.String("status", "ok"),
				glint.Float64("latency_ms", 10.5),
			)
		}
	})
}

func BenchmarkEmit_Filtered(b *testing.B) {
	cfg := glint.Default()
	cfg.Console.Enabled = false
	cfg.Level = "error"
	logger := glint.New(cfg)
	ctx := context.Background()

	// Filtered records take the level short-circuit, no encoding.
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "swap indexed", glint.Int("slot", 123))
	}
}

func benchDouble(n int) (int, error) { return n * 2, nil }

func BenchmarkInstrument(b *testing.B) {
	cfg := glint.Default()
	cfg.Console.Enabled = false
	cfg.Level = "error" // gate the debug-level call events
	glint.Configure(cfg)

	wrapped := glint.Instrument(benchDouble)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := wrapped(i); err != nil {
			b.Fatal(err)
		}
	}
}
