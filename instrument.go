package glint

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// call is the per-wrapper state: the handle named after the callable's
// originating package, the callable's declared name, and its data arity.
// Built once at wrap time; emissions still resolve the live configuration.
type call struct {
	log       Logger
	component string
	function  string
	argc      int
}

// newCall captures the callable's identity. argc counts data arguments;
// the context parameter of the Ctx variants is not an argument.
func newCall(fn any, argc int) call {
	component, name := callableName(fn)
	return call{
		log:       GetLogger(component),
		component: component,
		function:  name,
		argc:      argc,
	}
}

// callableName derives the originating package and declared name from the
// callable's identity. "github.com/x/parser.DecodePool" yields
// ("parser", "DecodePool"); methods and closures keep their qualified
// suffix ("Pool.Decode", "Run.func1").
func callableName(fn any) (component, name string) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "instrument", "anonymous"
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "instrument", "anonymous"
	}

	full := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.Index(full, "."); i >= 0 {
		component = full[:i]
		name = strings.TrimPrefix(full[i+1:], "(*")
		name = strings.Replace(name, ")", "", 1)
		return component, name
	}
	return "instrument", full
}

func (c call) called(ctx context.Context) {
	c.log.Debug(ctx, "called",
		String("function", c.function),
		Int("args_count", c.argc),
	)
	if counter := activePipeline().calls; counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("function", c.function)))
	}
}

func (c call) completed(ctx context.Context) {
	c.log.Debug(ctx, "completed",
		String("function", c.function),
		Bool("success", true),
	)
}

func (c call) failed(ctx context.Context, err error) {
	c.log.Error(ctx, "failed", err,
		String("function", c.function),
		String("error_type", errorKind(err)),
	)
	if counter := activePipeline().failures; counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("function", c.function)))
	}
}

// observePanic logs a panic as a failure and re-raises the original value.
// The failure is observed, never swallowed or transformed.
func (c call) observePanic(ctx context.Context, r any) {
	c.log.Error(ctx, "failed", nil,
		String("function", c.function),
		String("error", fmt.Sprint(r)),
		String("error_type", fmt.Sprintf("panic:%T", r)),
	)
	if counter := activePipeline().failures; counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("function", c.function)))
	}
	panic(r)
}

// errorKind names the failure's kind so distinct error types stay
// distinguishable in the record. Cancellation errors get stable names
// since their dynamic type is unexported.
func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "context.Canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context.DeadlineExceeded"
	}
	return fmt.Sprintf("%T", err)
}

// Instrument wraps a one-argument function with called/completed/failed
// logging. The wrapped function keeps its exact signature, return value,
// and error behavior; the wrapper only observes.
//
//	decode := glint.Instrument(decodePool)
//	out, err := decode(raw) // identical to decodePool(raw)
func Instrument[A, R any](fn func(A) (R, error)) func(A) (R, error) {
	c := newCall(fn, 1)
	return func(a A) (R, error) {
		ctx := context.Background()
		c.called(ctx)
		defer func() {
			if r := recover(); r != nil {
				c.observePanic(ctx, r)
			}
		}()
		out, err := fn(a)
		if err != nil {
			c.failed(ctx, err)
			return out, err
		}
		c.completed(ctx)
		return out, nil
	}
}

// Instrument2 wraps a two-argument function.
func Instrument2[A, B, R any](fn func(A, B) (R, error)) func(A, B) (R, error) {
	c := newCall(fn, 2)
	return func(a A, b B) (R, error) {
		ctx := context.Background()
		c.called(ctx)
		defer func() {
			if r := recover(); r != nil {
				c.observePanic(ctx, r)
			}
		}()
		out, err := fn(a, b)
		if err != nil {
			c.failed(ctx, err)
			return out, err
		}
		c.completed(ctx)
		return out, nil
	}
}

// InstrumentCtx wraps a context-taking one-argument function. The wrapper
// suspends exactly where the wrapped function suspends; it introduces no
// suspension points of its own, and a cancellation of the wrapped call
// still produces the "failed" event before propagating.
func InstrumentCtx[A, R any](fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	c := newCall(fn, 1)
	return func(ctx context.Context, a A) (R, error) {
		ctx, span := Tracer(c.component).Start(ctx, c.function)
		defer span.End()

		c.called(ctx)
		defer func() {
			if r := recover(); r != nil {
				span.SetStatus(codes.Error, fmt.Sprint(r))
				c.observePanic(ctx, r)
			}
		}()
		out, err := fn(ctx, a)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.failed(ctx, err)
			return out, err
		}
		c.completed(ctx)
		return out, nil
	}
}

// InstrumentCtx2 wraps a context-taking two-argument function.
// Same contract as InstrumentCtx.
func InstrumentCtx2[A, B, R any](fn func(context.Context, A, B) (R, error)) func(context.Context, A, B) (R, error) {
	c := newCall(fn, 2)
	return func(ctx context.Context, a A, b B) (R, error) {
		ctx, span := Tracer(c.component).Start(ctx, c.function)
		defer span.End()

		c.called(ctx)
		defer func() {
			if r := recover(); r != nil {
				span.SetStatus(codes.Error, fmt.Sprint(r))
				c.observePanic(ctx, r)
			}
		}()
		out, err := fn(ctx, a, b)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.failed(ctx, err)
			return out, err
		}
		c.completed(ctx)
		return out, nil
	}
}
