package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, probes int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   probes,
	})
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func mustAllow(t *testing.T, b *CircuitBreaker) uint64 {
	t.Helper()
	gen, err := b.Allow()
	if err != nil {
		t.Fatalf("expected call to be admitted in %s state: %v", b.State(), err)
	}
	return gen
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	b, now := newTestBreaker(2, 1)

	b.Done(mustAllow(t, b), false)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.Done(mustAllow(t, b), false)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold, got %s", state)
	}
	if _, err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	probe := mustAllow(t, b)
	if _, err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.Done(probe, true)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(1, 2)

	b.Done(mustAllow(t, b), false)
	*now = now.Add(6 * time.Second)

	first := mustAllow(t, b)
	second := mustAllow(t, b)
	b.Done(first, true)
	b.Done(second, false)

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected failed probe to reopen, got %s", state)
	}
}

func TestCircuitBreaker_IgnoresStaleOutcome(t *testing.T) {
	b, _ := newTestBreaker(1, 1)

	slow := mustAllow(t, b)
	b.Done(mustAllow(t, b), false)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open, got %s", state)
	}

	b.Done(slow, true)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected stale success to be ignored, got %s", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker(2, 1)

	b.Done(mustAllow(t, b), false)
	b.Done(mustAllow(t, b), true)
	b.Done(mustAllow(t, b), false)

	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected non-consecutive failures to keep breaker closed, got %s", state)
	}
}
