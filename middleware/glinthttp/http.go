// Package glinthttp instruments HTTP servers and clients.
//
// Handler wraps an http.Handler with OpenTelemetry spans plus glint
// request logging in the called/completed/failed shape:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/api", handler)
//	instrumented := glinthttp.Handler(mux, "my-service")
//	http.ListenAndServe(":8080", instrumented)
//
// Client instrumentation wraps an http.Client:
//
//	client := glinthttp.Client()
//	resp, err := client.Get("https://api.example.com")
package glinthttp

import (
	"net/http"
	"time"

	"github.com/luminelabs/glint"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler wraps an http.Handler with OpenTelemetry instrumentation and
// request logging. Each request emits a debug "called" event and, after
// the inner handler returns, a debug "completed" event (status < 500) or
// an error "failed" event. The inner handler's behavior is untouched.
func Handler(handler http.Handler, operation string, opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	otelOpts := []otelhttp.Option{}
	if o.filter != nil {
		otelOpts = append(otelOpts, otelhttp.WithFilter(o.filter))
	}

	logged := loggingHandler(handler, operation)
	return otelhttp.NewHandler(logged, operation, otelOpts...)
}

// statusRecorder captures the status code written by the inner handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingHandler(inner http.Handler, operation string) http.Handler {
	log := glint.GetLogger("http")
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log.Debug(ctx, "called",
			glint.String("operation", operation),
			glint.String("method", req.Method),
			glint.String("path", req.URL.Path),
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		inner.ServeHTTP(rec, req)
		elapsed := time.Since(start)

		if rec.status >= http.StatusInternalServerError {
			log.Error(ctx, "failed", nil,
				glint.String("operation", operation),
				glint.String("method", req.Method),
				glint.String("path", req.URL.Path),
				glint.Int("status", rec.status),
				glint.Float64("latency_ms", float64(elapsed.Microseconds())/1000),
			)
			return
		}

		log.Debug(ctx, "completed",
			glint.String("operation", operation),
			glint.Bool("success", true),
			glint.Int("status", rec.status),
			glint.Float64("latency_ms", float64(elapsed.Microseconds())/1000),
		)
	})
}

// Client returns an HTTP client instrumented with OpenTelemetry.
// Each request creates a client span linked to the current trace context.
func Client(opts ...Option) *http.Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &http.Client{Transport: transport}
}

// Transport returns an http.RoundTripper instrumented with OpenTelemetry.
// Use this to instrument custom transports.
func Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base)
}

// --- Options ---

type options struct {
	filter otelhttp.Filter
}

// Option configures HTTP instrumentation.
type Option func(*options)

// WithFilter sets a filter function to exclude requests from tracing.
// Return true to include the request, false to skip.
//
// Example:
//
//	glinthttp.Handler(mux, "api", glinthttp.WithFilter(func(r *http.Request) bool {
//	    return r.URL.Path != "/health"
//	}))
func WithFilter(filter func(r *http.Request) bool) Option {
	return func(o *options) { o.filter = otelhttp.Filter(filter) }
}
