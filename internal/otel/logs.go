// Package otel wires the OTLP exporters behind glint's optional sinks:
// log export teed into the zap pipeline, the tracer provider used by the
// instrumentation wrappers, and the meter provider for call counters.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// LogConfig configures OTLP log export.
type LogConfig struct {
	Enabled        bool
	Endpoint       string
	Protocol       string
	Insecure       bool
	Timeout        time.Duration
	Headers        map[string]string
	Attributes     map[string]string
	BatchSize      int
	ExportInterval time.Duration
}

// LogProvider owns the OTLP log pipeline. Nil-safe: a nil provider
// reports no underlying LoggerProvider and shuts down cleanly.
type LogProvider struct {
	provider *sdklog.LoggerProvider
}

// LoggerProvider returns the underlying sdklog.LoggerProvider, or nil.
func (p *LogProvider) LoggerProvider() *sdklog.LoggerProvider {
	if p == nil {
		return nil
	}
	return p.provider
}

// Shutdown flushes and stops the log exporter.
func (p *LogProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

// SetupLogs initializes OTLP log export and installs the provider
// globally. Returns (nil, nil) when export is disabled or unconfigured.
func SetupLogs(cfg LogConfig, serviceName, version string) (*LogProvider, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, nil
	}

	ctx := context.Background()

	res, err := buildResource(ctx, serviceName, version, cfg.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTEL resource: %w", err)
	}

	var exporter sdklog.Exporter
	switch cfg.Protocol {
	case "http":
		opts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlploghttp.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlploghttp.WithHeaders(cfg.Headers))
		}
		exporter, err = otlploghttp.New(ctx, opts...)
	default:
		opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
			opts = append(opts, otlploggrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, otlploggrpc.WithTimeout(cfg.Timeout))
		}
		if len(cfg.Headers) > 0 {
			opts = append(opts, otlploggrpc.WithHeaders(cfg.Headers))
		}
		exporter, err = otlploggrpc.New(ctx, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create OTEL log exporter: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 512
	}
	exportInterval := cfg.ExportInterval
	if exportInterval <= 0 {
		exportInterval = 5 * time.Second
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(
			exporter,
			sdklog.WithMaxQueueSize(batchSize*2),
			sdklog.WithExportMaxBatchSize(batchSize),
			sdklog.WithExportInterval(exportInterval),
		)),
	)

	global.SetLoggerProvider(provider)

	return &LogProvider{provider: provider}, nil
}

// buildResource assembles the process resource shared by the sinks.
// Explicit detectors instead of resource.Merge(resource.Default(), ...)
// to avoid schema URL conflicts between the SDK and our semconv import.
func buildResource(ctx context.Context, serviceName, version string, extra map[string]string) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	}
	for k, v := range extra {
		attrs = append(attrs, attribute.String(k, v))
	}

	return resource.New(ctx,
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcess(),
		resource.WithAttributes(attrs...),
	)
}
