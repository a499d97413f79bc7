// Context helpers propagate trace, request, and user IDs through
// context.Context. These values are extracted automatically and included
// in log entries emitted with that context.
//
// For OTEL tracing, trace_id and span_id come from the span context. For
// non-OTEL scenarios, use WithTraceID to set one manually.
package glint

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// contextKey is unexported so keys from other packages cannot collide.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	traceIDKey   contextKey = "trace_id"
	spanIDKey    contextKey = "span_id"
)

// WithRequestID attaches a request ID that emissions with this context
// will carry as a "request_id" field.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID attaches a user ID carried as a "user_id" field.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithTraceID attaches a manual trace ID. Ignored when the context
// carries a valid OTEL span, which takes precedence.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// RequestIDFromContext returns the attached request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// UserIDFromContext returns the attached user ID, or "".
func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// extractContextZapFields collects correlation fields from ctx. Returns
// nil when the context carries nothing of interest.
func extractContextZapFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}

	var fields []zap.Field
	add := func(key, val string) {
		if val != "" {
			fields = append(fields, zap.String(key, val))
		}
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		add("trace_id", sc.TraceID().String())
		add("span_id", sc.SpanID().String())
	} else {
		add("trace_id", stringValue(ctx, traceIDKey))
		add("span_id", stringValue(ctx, spanIDKey))
	}

	add("request_id", stringValue(ctx, requestIDKey))
	add("user_id", stringValue(ctx, userIDKey))

	return fields
}
