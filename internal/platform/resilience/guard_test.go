package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
)

func TestGuard_OpensAfterFailures(t *testing.T) {
	guard := NewGuard(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, time.Second)
	boom := errors.New("catalog down")

	for i := 0; i < 2; i++ {
		err := guard.Do(t.Context(), func(context.Context) error { return boom })
		if !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected dependency error, got %v", i, err)
		}
	}

	called := false
	err := guard.Do(t.Context(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if !crerr.Is(err, ErrUnavailable) {
		t.Fatalf("expected open breaker to be marked unavailable")
	}
	if called {
		t.Fatalf("expected call to be short-circuited")
	}
	if guard.State() != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", guard.State())
	}
}

func TestGuard_Timeout(t *testing.T) {
	guard := NewGuard(CircuitBreakerConfig{}, 10*time.Millisecond)

	err := guard.Do(t.Context(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestGuard_NilRunsDirectly(t *testing.T) {
	var guard *Guard
	if err := guard.Do(t.Context(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected nil guard to pass through, got %v", err)
	}
}
