// Package logging 诊断日志，人类可读的进度与汇总由 interactive 包输出
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Learting/leartools/config"
)

// ParseLevel 解析日志级别，无法识别时回退到 info
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// New 按配置创建日志器
func New(w io.Writer, cfg config.LogConfig, color bool) zerolog.Logger {
	out := w
	if cfg.Format != config.LogFormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !color,
			TimeFormat: time.TimeOnly,
		}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Nop 不输出任何内容的日志器
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
