package glint

import "go.uber.org/zap/zapcore"

// sentinelKey carries context.Context through zap.Reflect so the otelzap
// bridge can extract trace correlation. The filter core hides it from
// console and file output. Users should avoid keys with this prefix.
const sentinelKey = "__glint_ctx__"

// filteringCore wraps a zapcore.Core to filter out specific field keys
// before encoding: the sentinel context carrier, and for the OTEL sink
// the redundant trace_id/span_id strings.
type filteringCore struct {
	zapcore.Core
	filterKeys []string
}

func newFilteringCore(core zapcore.Core, keys ...string) zapcore.Core {
	return &filteringCore{Core: core, filterKeys: keys}
}

func (c *filteringCore) With(fields []zapcore.Field) zapcore.Core {
	filtered := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if !c.shouldFilter(f.Key) {
			filtered = append(filtered, f)
		}
	}
	return &filteringCore{Core: c.Core.With(filtered), filterKeys: c.filterKeys}
}

func (c *filteringCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *filteringCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	filtered := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if !c.shouldFilter(f.Key) {
			filtered = append(filtered, f)
		}
	}
	return c.Core.Write(entry, filtered)
}

func (c *filteringCore) shouldFilter(key string) bool {
	for _, k := range c.filterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// levelEnforcer wraps a Core that carries its own default level (the
// otelzap bridge defaults to info) and overrides its Enabled check to
// respect the provided LevelEnabler instead.
type levelEnforcer struct {
	zapcore.Core
	level zapcore.LevelEnabler
}

func (l *levelEnforcer) Enabled(lvl zapcore.Level) bool {
	return l.level.Enabled(lvl)
}

func (l *levelEnforcer) With(fields []zapcore.Field) zapcore.Core {
	return &levelEnforcer{
		Core:  l.Core.With(fields),
		level: l.level,
	}
}

func (l *levelEnforcer) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if l.Enabled(ent.Level) {
		return ce.AddCore(ent, l)
	}
	return ce
}
