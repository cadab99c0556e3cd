package httpapi

import (
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_NoParent(t *testing.T) {
	ctx, span := startSpan(t.Context(), "httpapi.Handler.ValidateRoster")
	defer span.End()

	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected no span without a parent")
	}
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		t.Fatalf("expected context to stay span-free")
	}
}

func TestStartSpan_KeepsParentTrace(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	parent := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	ctx, span := startSpan(trace.ContextWithSpanContext(t.Context(), parent), "httpapi.Handler.CreateSquad")
	defer span.End()

	if got := trace.SpanContextFromContext(ctx).TraceID(); got != traceID {
		t.Fatalf("expected trace %s to propagate, got %s", traceID, got)
	}
}
