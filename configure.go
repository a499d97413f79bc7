package glint

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// active is the process-wide configuration: an atomically-swappable
// pointer to an immutable pipeline. Emissions load it once per call, so a
// reconfiguration racing an emission lands on the old pipeline or the new
// one, whole, never a torn mix.
var active atomic.Pointer[pipeline]

var (
	redirectMu   sync.Mutex
	undoRedirect func()
)

// Configure replaces the process-wide logging configuration wholesale.
// It never fails: unrecognized levels fall back to info and unrecognized
// formats to the human renderer, because logging setup must not be able
// to prevent the host process from starting.
//
// Side effects, in order: the previous configuration (if any) is flushed
// and its exporters drained best-effort; the stdlib "log" package is
// redirected through the new pipeline so both logging paths share one
// destination and level; the destination is flushed once so early startup
// records are not lost to upstream buffering.
//
// Configure may be called any number of times, from any goroutine,
// concurrently with ongoing emissions. Each call fully re-applies.
func Configure(cfg Config) {
	p := newPipeline(cfg)
	old := active.Swap(p)

	if old != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = old.drain(drainCtx)
		cancel()
	}

	redirectMu.Lock()
	if undoRedirect != nil {
		undoRedirect()
	}
	// InfoLevel is always valid, so the error path is unreachable.
	if undo, err := zap.RedirectStdLogAt(p.zap.Named("stdlog"), zapcore.InfoLevel); err == nil {
		undoRedirect = undo
	}
	redirectMu.Unlock()

	// One explicit flush so startup logs survive even if the host exits
	// without calling Sync.
	_ = p.zap.Sync()
}

// activePipeline returns the live pipeline, lazily installing defaults so
// emissions before the first Configure still work.
func activePipeline() *pipeline {
	if p := active.Load(); p != nil {
		return p
	}
	p := newPipeline(Default())
	if active.CompareAndSwap(nil, p) {
		return p
	}
	return active.Load()
}

// drain flushes the pipeline and shuts down its telemetry providers.
func (p *pipeline) drain(ctx context.Context) error {
	var errs []error

	// Stop exporters first so nothing is produced into closed buffers.
	if p.logs != nil {
		if err := p.logs.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel logs: %w", err))
		}
	}
	if p.traces != nil {
		if err := p.traces.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel traces: %w", err))
		}
	}
	if p.meter != nil {
		if err := p.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("otel metrics: %w", err))
		}
	}

	if err := p.zap.Sync(); err != nil {
		errs = append(errs, fmt.Errorf("zap sync: %w", err))
	}

	return errors.Join(errs...)
}

// --- Package-level convenience surface over the live configuration ---

func root() *handle {
	return &handle{resolve: activePipeline}
}

// Debug logs at debug level using the process-wide logger.
func Debug(ctx context.Context, msg string, fields ...Field) {
	root().Debug(ctx, msg, fields...)
}

// Info logs at info level using the process-wide logger.
func Info(ctx context.Context, msg string, fields ...Field) {
	root().Info(ctx, msg, fields...)
}

// Warn logs at warn level using the process-wide logger.
func Warn(ctx context.Context, msg string, fields ...Field) {
	root().Warn(ctx, msg, fields...)
}

// Error logs at error level using the process-wide logger.
func Error(ctx context.Context, msg string, err error, fields ...Field) {
	root().Error(ctx, msg, err, fields...)
}

// SetLevel changes the process-wide minimum level at runtime.
func SetLevel(level string) {
	activePipeline().lvl.SetLevel(parseLevel(level))
}

// GetLevel returns the process-wide minimum level.
func GetLevel() string {
	return activePipeline().lvl.Level().String()
}

// Sync flushes the process-wide logger.
func Sync() error {
	if p := active.Load(); p != nil {
		return p.zap.Sync()
	}
	return nil
}

// Shutdown flushes the process-wide logger and drains its exporters.
// Call before exit when OTEL export is enabled.
func Shutdown(ctx context.Context) error {
	if p := active.Load(); p != nil {
		return p.drain(ctx)
	}
	return nil
}
