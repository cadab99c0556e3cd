package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// ParseLevel reads APP_LOG_LEVEL. "warning" is accepted for warn; anything
// zap does not know, and the panic/fatal levels, fall back to info.
func ParseLevel(v string) Level {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "warning" {
		v = "warn"
	}
	level, err := zapcore.ParseLevel(v)
	if err != nil || level > LevelError {
		return LevelInfo
	}
	return level
}
