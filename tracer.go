package glint

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Link is an alias for trace.Link so callers can connect spans without
// importing otel/trace directly.
type Link = trace.Link

// LinkFromContext extracts a link to the span carried by ctx.
func LinkFromContext(ctx context.Context) Link {
	return trace.LinkFromContext(ctx)
}

// TracerHandle creates spans. Obtain one with Tracer.
type TracerHandle interface {
	// Start opens a span. End it with Span.End.
	Start(ctx context.Context, spanName string, opts ...SpanOption) (context.Context, Span)
}

// Span is one unit of work in a trace.
type Span interface {
	End()
	SetStatus(code codes.Code, description string)
	RecordError(err error)
	// SetAttributes sets attributes on the span. Build Attr values with
	// attribute.String(), attribute.Int64(), and friends.
	SetAttributes(attrs ...Attr)
	AddEvent(name string, attrs ...Attr)
}

var tracingNotice sync.Once

// Tracer returns a named tracer bound to the live configuration. When
// tracing is disabled the returned tracer is a no-op, with a one-time
// notice on the stdlib logger.
func Tracer(name string) TracerHandle {
	if !activePipeline().tracingEnabled {
		tracingNotice.Do(func() {
			log.Println("[glint] Tracing disabled: Tracer() returning no-op. Enable via Config.Tracing.Enabled")
		})
		return noopTracer{}
	}
	return &otelTracer{tracer: otel.Tracer(name)}
}

// SpanOption configures span creation.
type SpanOption func(*spanOptions)

type spanOptions struct {
	kind       trace.SpanKind
	attributes []Attr
	links      []trace.Link
	otelOpts   []trace.SpanStartOption
}

// WithSpanKind sets the span kind (client, server, etc).
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(o *spanOptions) { o.kind = kind }
}

// WithAttributes adds attributes to the span at creation.
func WithAttributes(attrs ...Attr) SpanOption {
	return func(o *spanOptions) { o.attributes = append(o.attributes, attrs...) }
}

// WithLinks links the span to other spans.
func WithLinks(links ...trace.Link) SpanOption {
	return func(o *spanOptions) { o.links = append(o.links, links...) }
}

// WithOTELOptions passes raw OpenTelemetry start options through. Escape
// hatch for anything the wrapped options don't cover.
func WithOTELOptions(opts ...trace.SpanStartOption) SpanOption {
	return func(o *spanOptions) { o.otelOpts = append(o.otelOpts, opts...) }
}

type otelTracer struct {
	tracer trace.Tracer
}

func (t *otelTracer) Start(ctx context.Context, spanName string, opts ...SpanOption) (context.Context, Span) {
	o := spanOptions{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(&o)
	}

	startOpts := append([]trace.SpanStartOption{trace.WithSpanKind(o.kind)}, o.otelOpts...)
	if len(o.attributes) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(o.attributes...))
	}
	if len(o.links) > 0 {
		startOpts = append(startOpts, trace.WithLinks(o.links...))
	}

	ctx, span := t.tracer.Start(ctx, spanName, startOpts...)
	return ctx, otelSpan{span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End()                                   { s.span.End() }
func (s otelSpan) SetStatus(code codes.Code, desc string) { s.span.SetStatus(code, desc) }
func (s otelSpan) RecordError(err error)                  { s.span.RecordError(err) }
func (s otelSpan) SetAttributes(attrs ...Attr)            { s.span.SetAttributes(attrs...) }
func (s otelSpan) AddEvent(name string, attrs ...Attr) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...SpanOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                         {}
func (noopSpan) SetStatus(codes.Code, string) {}
func (noopSpan) RecordError(error)            {}
func (noopSpan) SetAttributes(...Attr)        {}
func (noopSpan) AddEvent(string, ...Attr)     {}
