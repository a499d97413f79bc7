package glint

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// withDefaults fills unset rotation knobs: 100MB files, 7 days retention,
// 5 backups.
func (c FileConfig) withDefaults() FileConfig {
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 100
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 7
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 5
	}
	return c
}

// NewFileWriter returns a rotating file writer for cfg, or nil when no
// path is configured. Rotation is handled by lumberjack; records are
// written through unmodified.
func NewFileWriter(cfg FileConfig) io.Writer {
	if cfg.Path == "" {
		return nil
	}
	cfg = cfg.withDefaults()

	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}
