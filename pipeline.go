package glint

import (
	"log"
	"os"
	"strings"

	internalotel "github.com/luminelabs/glint/internal/otel"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// pipeline is one fully-built processing chain: the zap core tee, the
// atomic level gate in front of it, and the telemetry providers attached
// to this configuration. A pipeline is immutable after construction;
// reconfiguration builds a fresh one and swaps the active pointer, so an
// emission always observes one whole pipeline, never a mix of two.
type pipeline struct {
	cfg    Config
	zap    *zap.Logger
	lvl    zap.AtomicLevel
	logs   *internalotel.LogProvider
	traces *internalotel.TracerProvider
	meter  *internalotel.MeterProvider

	tracingEnabled bool

	// Call instrumentation counters. No-op when metrics are disabled.
	calls    metric.Int64Counter
	failures metric.Int64Counter
}

// newPipeline builds a pipeline from cfg. It never fails: unrecognized
// level and format tokens fall back to defaults, and telemetry sinks that
// cannot be initialized degrade to console-only logging with a notice on
// the stdlib logger. Logging setup must not be able to abort startup.
func newPipeline(cfg Config) *pipeline {
	p := &pipeline{cfg: cfg}
	p.lvl = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	cores := make([]zapcore.Core, 0, 4)

	if cfg.Console.Enabled {
		for _, c := range buildConsoleCores(cfg, p.lvl) {
			cores = append(cores, newFilteringCore(c, sentinelKey))
		}
	}

	if cfg.File.Enabled && cfg.File.Path != "" {
		if fileCore := buildFileCore(cfg, p.lvl); fileCore != nil {
			cores = append(cores, newFilteringCore(fileCore, sentinelKey))
		}
	}

	if otelCore := p.setupLogExport(cfg); otelCore != nil {
		// The otelzap core defaults to info; force it to follow the
		// configured level, and keep trace_id/span_id strings out since
		// the bridge carries them on the LogRecord.
		otelCore = &levelEnforcer{Core: otelCore, level: p.lvl}
		cores = append(cores, newFilteringCore(otelCore, sentinelKey, "trace_id", "span_id"))
	}

	var core zapcore.Core
	switch len(cores) {
	case 0:
		core = zapcore.NewNopCore()
	case 1:
		core = cores[0]
	default:
		core = zapcore.NewTee(cores...)
	}

	p.zap = zap.New(core, buildZapOptions(cfg)...)

	p.setupTracing(cfg)
	p.setupMetrics(cfg)

	return p
}

// setupLogExport initializes the optional OTLP log sink, returning a core
// to tee into the pipeline, or nil when disabled or failed.
func (p *pipeline) setupLogExport(cfg Config) zapcore.Core {
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint == "" {
		return nil
	}

	provider, err := internalotel.SetupLogs(internalotel.LogConfig{
		Enabled:        cfg.OTEL.Enabled,
		Endpoint:       cfg.OTEL.Endpoint,
		Protocol:       cfg.OTEL.Protocol,
		Insecure:       cfg.OTEL.Insecure,
		Timeout:        cfg.OTEL.Timeout,
		Headers:        cfg.OTEL.Headers,
		Attributes:     cfg.OTEL.Attributes,
		BatchSize:      cfg.OTEL.BatchSize,
		ExportInterval: cfg.OTEL.ExportInterval,
	}, cfg.ServiceName, cfg.Version)
	if err != nil {
		log.Printf("[glint] OTEL log export disabled: %v", err)
		return nil
	}
	if provider == nil || provider.LoggerProvider() == nil {
		return nil
	}

	p.logs = provider
	return otelzap.NewCore(
		cfg.ServiceName,
		otelzap.WithLoggerProvider(provider.LoggerProvider()),
	)
}

func (p *pipeline) setupTracing(cfg Config) {
	if !cfg.Tracing.Enabled {
		return
	}

	endpoint := cfg.Tracing.Endpoint
	if endpoint == "" {
		endpoint = cfg.OTEL.Endpoint
	}
	protocol := cfg.Tracing.Protocol
	if protocol == "" {
		protocol = cfg.OTEL.Protocol
	}
	insecure := cfg.Tracing.Insecure || cfg.OTEL.Insecure

	tp, err := internalotel.SetupTracer(internalotel.TracerConfig{
		Enabled:        true,
		Endpoint:       endpoint,
		Protocol:       protocol,
		Insecure:       insecure,
		Sampler:        cfg.Tracing.Sampler,
		BatchSize:      cfg.Tracing.BatchSize,
		ExportInterval: cfg.Tracing.ExportInterval,
		Timeout:        cfg.Tracing.Timeout,
		Headers:        cfg.Tracing.Headers,
		Attributes:     cfg.Tracing.Attributes,
	}, cfg.ServiceName, cfg.Version)
	if err != nil {
		log.Printf("[glint] tracing disabled: %v", err)
		return
	}
	if tp != nil {
		p.traces = tp
		p.tracingEnabled = true
	}
}

func (p *pipeline) setupMetrics(cfg Config) {
	endpoint := cfg.Metrics.Endpoint
	if endpoint == "" {
		endpoint = cfg.OTEL.Endpoint
	}

	mp, err := internalotel.SetupMeter(internalotel.MeterConfig{
		Enabled:  cfg.Metrics.Enabled,
		Endpoint: endpoint,
		Protocol: cfg.Metrics.Protocol,
		Insecure: cfg.Metrics.Insecure || cfg.OTEL.Insecure,
		Interval: cfg.Metrics.Interval,
		Timeout:  cfg.Metrics.Timeout,
		Headers:  cfg.Metrics.Headers,
	}, cfg.ServiceName, cfg.Version)
	if err != nil {
		log.Printf("[glint] metrics disabled: %v", err)
		mp = nil
	}
	p.meter = mp

	// A nil provider hands out no-op meters, so the counters always exist.
	meter := p.meter.Meter("glint")
	if c, err := meter.Int64Counter("glint.calls"); err == nil {
		p.calls = c
	}
	if c, err := meter.Int64Counter("glint.call_failures"); err == nil {
		p.failures = c
	}
}

// named derives the emission logger for a handle from this pipeline.
func (p *pipeline) named(name string) *zap.Logger {
	if name == "" {
		return p.zap
	}
	return p.zap.Named(name)
}

// buildZapOptions creates common zap options from config.
func buildZapOptions(cfg Config) []zap.Option {
	// Skip the handle's leveled method and its log helper.
	opts := []zap.Option{
		zap.AddCallerSkip(2),
	}

	if cfg.Development {
		opts = append(opts, zap.Development())
		opts = append(opts, zap.AddCaller())
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	if cfg.ServiceName != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.ServiceName)))
	}
	if cfg.Version != "" {
		opts = append(opts, zap.Fields(zap.String("version", cfg.Version)))
	}

	return opts
}

// buildConsoleCores creates console output cores.
// A configured Writer override gets a single core; otherwise the stream is
// split between stdout and stderr when ErrorsToStderr is enabled.
func buildConsoleCores(cfg Config, level zap.AtomicLevel) []zapcore.Core {
	encoder := buildConsoleEncoder(cfg)

	if cfg.Console.Writer != nil {
		sink := zapcore.Lock(zapcore.AddSync(cfg.Console.Writer))
		return []zapcore.Core{zapcore.NewCore(encoder, sink, level)}
	}

	if cfg.Console.ErrorsToStderr {
		// Split: debug/info → stdout, warn/error → stderr
		stdoutLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level.Level() && lvl < zapcore.WarnLevel
		})
		stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level.Level() && lvl >= zapcore.WarnLevel
		})

		return []zapcore.Core{
			zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), stdoutLevel),
			zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), stderrLevel),
		}
	}

	return []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
}

// structuredFormat reports whether cfg selects the machine-parseable
// renderer. An empty format means the default for the mode; any other
// unrecognized token yields the human renderer.
func structuredFormat(cfg Config) bool {
	switch strings.ToLower(cfg.Console.Format) {
	case "json":
		return true
	case "":
		return !cfg.Development
	default:
		return false
	}
}

// buildConsoleEncoder creates the appropriate encoder for console output.
func buildConsoleEncoder(cfg Config) zapcore.Encoder {
	if !structuredFormat(cfg) {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.MessageKey = "event"
		encoderCfg.NameKey = "logger"
		if cfg.Console.Color && cfg.Console.Writer == nil {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
			encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
			encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}

	return zapcore.NewJSONEncoder(structuredEncoderConfig())
}

// structuredEncoderConfig is the record shape of structured mode:
// {"timestamp": ISO-8601, "level": name, "event": message,
//  "logger": handle name, ...fields}.
func structuredEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.MessageKey = "event"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"
	encoderCfg.CallerKey = "caller"
	return encoderCfg
}

// buildFileCore creates the file output core with rotation.
// File output is always structured JSON.
func buildFileCore(cfg Config, level zap.AtomicLevel) zapcore.Core {
	writer := NewFileWriter(cfg.File)
	if writer == nil {
		return nil
	}

	encoder := zapcore.NewJSONEncoder(structuredEncoderConfig())
	return zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
}

// parseLevel converts a string level to zapcore.Level.
// Unrecognized values fall back to info rather than failing.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// --- Field conversion ---

// convertField converts a single glint.Field to zap.Field.
func convertField(f Field) zap.Field {
	switch f.Type {
	case StringType:
		return zap.String(f.Key, f.Str)
	case Int64Type:
		return zap.Int64(f.Key, f.Num)
	case Uint64Type:
		return zap.Uint64(f.Key, f.Any.(uint64))
	case Float64Type:
		return zap.Float64(f.Key, f.Float)
	case BoolType:
		return zap.Bool(f.Key, f.Num == 1)
	case StringsType:
		if vs, ok := f.Any.([]string); ok {
			return zap.Strings(f.Key, vs)
		}
		return zap.Any(f.Key, f.Any)
	case ErrorType:
		if err, ok := f.Any.(error); ok {
			return zap.Error(err)
		}
		return zap.Any(f.Key, f.Any)
	default:
		return zap.Any(f.Key, f.Any)
	}
}

func toZapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zapFields = append(zapFields, convertField(f))
	}
	return zapFields
}
