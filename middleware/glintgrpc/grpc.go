// Package glintgrpc instruments gRPC servers and clients.
//
// Server instrumentation using stats handler:
//
//	server := grpc.NewServer(
//	    grpc.StatsHandler(glintgrpc.ServerHandler()),
//	)
//
// Client instrumentation using stats handler:
//
//	conn, err := grpc.NewClient(addr,
//	    grpc.WithStatsHandler(glintgrpc.ClientHandler()),
//	)
//
// UnaryServerInterceptor adds glint request logging in the
// called/completed/failed shape on top of the tracing handlers.
package glintgrpc

import (
	"context"

	"github.com/luminelabs/glint"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/stats"
	"google.golang.org/grpc/status"
)

// ServerHandler returns a stats.Handler for gRPC server instrumentation.
// Use with grpc.StatsHandler() option when creating a gRPC server.
func ServerHandler(opts ...Option) stats.Handler {
	return otelgrpc.NewServerHandler(collectOptions(opts)...)
}

// ClientHandler returns a stats.Handler for gRPC client instrumentation.
// Use with grpc.WithStatsHandler() option when dialing.
func ClientHandler(opts ...Option) stats.Handler {
	return otelgrpc.NewClientHandler(collectOptions(opts)...)
}

func collectOptions(opts []Option) []otelgrpc.Option {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var otelOpts []otelgrpc.Option
	if o.filter != nil {
		otelOpts = append(otelOpts, otelgrpc.WithInterceptorFilter(o.filter))
	}
	return otelOpts
}

// UnaryServerInterceptor returns an interceptor that logs each unary RPC
// through glint: a debug "called" event before the handler runs, then a
// debug "completed" or error "failed" event. The handler's response and
// error pass through unchanged.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	log := glint.GetLogger("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		log.Debug(ctx, "called", glint.String("function", info.FullMethod))

		resp, err := handler(ctx, req)
		if err != nil {
			log.Error(ctx, "failed", err,
				glint.String("function", info.FullMethod),
				glint.String("error_type", status.Code(err).String()),
			)
			return resp, err
		}

		log.Debug(ctx, "completed",
			glint.String("function", info.FullMethod),
			glint.Bool("success", true),
		)
		return resp, nil
	}
}

// UnaryClientInterceptor returns the client-side equivalent of
// UnaryServerInterceptor.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	log := glint.GetLogger("grpc")
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		log.Debug(ctx, "called", glint.String("function", method))

		if err := invoker(ctx, method, req, reply, cc, opts...); err != nil {
			log.Error(ctx, "failed", err,
				glint.String("function", method),
				glint.String("error_type", status.Code(err).String()),
			)
			return err
		}

		log.Debug(ctx, "completed",
			glint.String("function", method),
			glint.Bool("success", true),
		)
		return nil
	}
}

// --- Options ---

type options struct {
	filter otelgrpc.InterceptorFilter
}

// Option configures gRPC instrumentation.
type Option func(*options)

// WithFilter sets a filter function to exclude methods from tracing.
// Return false to skip tracing for the given request.
//
// Example:
//
//	glintgrpc.ServerHandler(glintgrpc.WithFilter(func(info *otelgrpc.InterceptorInfo) bool {
//	    return info.Method != "/grpc.health.v1.Health/Check"
//	}))
func WithFilter(filter otelgrpc.InterceptorFilter) Option {
	return func(o *options) { o.filter = filter }
}
