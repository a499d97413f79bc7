// Package glint provides structured logging and call instrumentation for
// Lumine blockchain services.
//
// Features:
//   - High-performance Zap pipeline with an atomic level gate
//   - Process-wide reconfiguration that takes effect immediately for every
//     handle, held or future
//   - Structured JSON or colored console output
//   - Generic instrumentation wrappers emitting called/completed/failed
//     events around arbitrary calls
//   - Multi-destination output (console, rotating file, OTEL)
//   - Automatic trace context propagation
//
// Basic usage:
//
//	glint.Configure(glint.Default())
//	defer glint.Sync()
//
//	log := glint.GetLogger("parser")
//	log.Info(ctx, "pool decoded", glint.F("pool", addr))
//
// Instrumenting a function:
//
//	decode := glint.Instrument(decodePool)
//	pool, err := decode(raw) // logs called/completed/failed around the call
package glint

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the primary logging interface.
// All methods are safe for concurrent use. A Logger is a handle: it holds
// only its name and bound fields, and resolves every emission against the
// live configuration, so reconfiguration applies to held handles too.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(ctx context.Context, msg string, fields ...Field)

	// Info logs a message at info level.
	Info(ctx context.Context, msg string, fields ...Field)

	// Warn logs a message at warn level.
	Warn(ctx context.Context, msg string, fields ...Field)

	// Error logs a message at error level with an optional error.
	Error(ctx context.Context, msg string, err error, fields ...Field)

	// With returns a child logger with additional fields attached.
	// Fields are included in all subsequent log entries.
	With(fields ...Field) Logger

	// Named returns a named sub-logger.
	// The name appears in records under the "logger" key.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error

	// Shutdown flushes the logger and drains its telemetry exporters.
	Shutdown(ctx context.Context) error

	// SetLevel changes the minimum level at runtime.
	// Valid levels: debug, info, warn/warning, error.
	SetLevel(level string)

	// GetLevel returns the current minimum level as a string.
	GetLevel() string
}

// handle implements Logger. The resolver indirection is what keeps a
// handle live: global handles resolve the active pipeline on every
// emission, instance handles resolve their own fixed pipeline.
type handle struct {
	resolve func() *pipeline
	name    string
	bound   []zap.Field
}

// GetLogger returns a handle bound to name (or the root handle when name
// is empty). Handles acquired for the same name are equivalent; acquiring
// is cheap and side-effect free.
func GetLogger(name string) Logger {
	return &handle{resolve: activePipeline, name: name}
}

// New creates a standalone Logger from cfg, independent of the global
// configuration. Use this for dependency injection; use Configure for the
// process-wide logger.
func New(cfg Config) Logger {
	p := newPipeline(cfg)
	return &handle{resolve: func() *pipeline { return p }}
}

func (h *handle) log(ctx context.Context, lvl zapcore.Level, msg string, err error, fields []Field) {
	p := h.resolve()

	// Hard gate: sub-threshold events never reach the pipeline.
	if !p.lvl.Enabled(lvl) {
		return
	}

	zl := p.named(h.name)
	if len(h.bound) > 0 {
		zl = zl.With(h.bound...)
	}

	zapFields := toZapFields(fields)

	// context.Background() and context.TODO() never carry trace info.
	if ctx != nil && ctx != context.Background() && ctx != context.TODO() {
		zapFields = append(zapFields, extractContextZapFields(ctx)...)
		// Carry ctx for the otelzap bridge; the filter core hides it
		// from console and file output.
		zapFields = append(zapFields, zap.Reflect(sentinelKey, ctx))
	}

	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	if ce := zl.Check(lvl, msg); ce != nil {
		ce.Write(zapFields...)
	}
}

func (h *handle) Debug(ctx context.Context, msg string, fields ...Field) {
	h.log(ctx, zapcore.DebugLevel, msg, nil, fields)
}

func (h *handle) Info(ctx context.Context, msg string, fields ...Field) {
	h.log(ctx, zapcore.InfoLevel, msg, nil, fields)
}

func (h *handle) Warn(ctx context.Context, msg string, fields ...Field) {
	h.log(ctx, zapcore.WarnLevel, msg, nil, fields)
}

func (h *handle) Error(ctx context.Context, msg string, err error, fields ...Field) {
	h.log(ctx, zapcore.ErrorLevel, msg, err, fields)
}

func (h *handle) With(fields ...Field) Logger {
	bound := make([]zap.Field, 0, len(h.bound)+len(fields))
	bound = append(bound, h.bound...)
	bound = append(bound, toZapFields(fields)...)
	return &handle{resolve: h.resolve, name: h.name, bound: bound}
}

func (h *handle) Named(name string) Logger {
	child := name
	if h.name != "" && name != "" {
		child = h.name + "." + name
	} else if name == "" {
		child = h.name
	}
	return &handle{resolve: h.resolve, name: child, bound: h.bound}
}

func (h *handle) Sync() error {
	return h.resolve().zap.Sync()
}

func (h *handle) Shutdown(ctx context.Context) error {
	return h.resolve().drain(ctx)
}

func (h *handle) SetLevel(level string) {
	h.resolve().lvl.SetLevel(parseLevel(level))
}

func (h *handle) GetLevel() string {
	return h.resolve().lvl.Level().String()
}
