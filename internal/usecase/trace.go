package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/riskibarqy/fantasy-tour/internal/usecase")

// startUsecaseSpan opens a child span only when ctx already carries a trace. The
// scheduler and tests call services without one and stay untraced.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if parent := trace.SpanFromContext(ctx); !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, name)
}
