package usecase

import (
	"context"
	"errors"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
)

func TestWrapRepoErr(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "guarded failure", err: crerr.Mark(boom, resilience.ErrUnavailable), want: ErrDependencyUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrDependencyUnavailable},
		{name: "duplicate snapshot", err: fantasy.ErrDuplicateSnapshot, want: ErrInvariantViolation},
		{name: "assertion failure", err: crerr.AssertionFailedf("two rows for one key"), want: ErrInvariantViolation},
		{name: "plain error", err: boom, want: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapRepoErr("load", tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v in chain, got %v", tt.want, got)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("expected original error kept, got %v", got)
			}
		})
	}

	if wrapRepoErr("load", nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}
