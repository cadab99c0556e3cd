package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_InfoContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "match scored", "match_id", "m1", "snapshots", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != "m1" {
		t.Fatalf("unexpected match_id field: %v", fields["match_id"])
	}
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("expected trace fields, got %v", fields)
	}
}

func TestLogger_ErrorFieldAndLevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	logger.Info("ignored")
	logger.Warn("sweep league failed", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "boom" {
		t.Fatalf("expected error field, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.InfoContext(t.Context(), "no panic")
}

func TestLogger_FieldConversion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "scheduler")

	logger.Debug("sweep", zap.Int("leagues", 2), "dangling")
	logger.Info("odd", 42)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	first := entries[0].ContextMap()
	if first["component"] != "scheduler" || first["leagues"] != int64(2) || first[badKey] != "dangling" {
		t.Fatalf("unexpected fields: %v", first)
	}
	if second := entries[1].ContextMap(); second[badKey] != int64(42) {
		t.Fatalf("expected non-string key under %s, got %v", badKey, second)
	}
}

func TestLogger_SyncOnce(t *testing.T) {
	logger := NewNop()
	child := logger.With("k", "v")

	if err := child.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if !logger.synced.Load() {
		t.Fatalf("expected derived logger to share sync state")
	}
	if logger.Enabled(LevelError) {
		t.Fatalf("expected nop logger to drop every level")
	}
}
