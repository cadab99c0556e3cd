// Package logging wraps zap behind slog-style key/value methods. Context
// variants attach the active trace and span ids.
package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	zap    *zap.Logger
	synced *atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// NewJSON writes one JSON object per line to stdout. Error entries carry a
// stack trace.
func NewJSON(level Level) *Logger {
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))

	// skip Info and emit so caller points at the call site
	return FromZap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)))
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

func (l *Logger) orDefault() *Logger {
	if l == nil || l.zap == nil {
		return Default()
	}
	return l
}

func (l *Logger) Zap() *zap.Logger {
	return l.orDefault().zap
}

// Sync flushes buffered entries once. Loggers derived with With share the
// flush.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.zap.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	base := l.orDefault()
	return &Logger{zap: base.zap.With(fields(args)...), synced: base.synced}
}

func (l *Logger) Enabled(level Level) bool {
	return l.orDefault().zap.Core().Enabled(level)
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args, nil) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args, nil) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args, nil) }
func (l *Logger) Error(msg string, args ...any) { l.emit(LevelError, msg, args, nil) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(LevelDebug, msg, args, traceFields(ctx))
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(LevelInfo, msg, args, traceFields(ctx))
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(LevelWarn, msg, args, traceFields(ctx))
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(LevelError, msg, args, traceFields(ctx))
}

func (l *Logger) emit(level Level, msg string, args []any, extra []zap.Field) {
	ce := l.orDefault().zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(fields(args), extra...)...)
}
