package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

type fakeSweeper struct {
	calls     atomic.Int32
	release   chan struct{}
	entered   chan struct{}
	err       error
	explode   bool
	cancelled atomic.Bool
}

func (f *fakeSweeper) RunSweep(ctx context.Context) (usecase.SweepResult, error) {
	n := f.calls.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if ctx.Err() != nil {
		f.cancelled.Store(true)
	}
	if f.explode {
		panic("league cursor corrupted")
	}
	if f.err != nil {
		return usecase.SweepResult{}, f.err
	}
	return usecase.SweepResult{DispatchID: "dispatch", LeaguesProcessed: int(n)}, nil
}

func TestScheduler_RunOnceIsSingleFlight(t *testing.T) {
	sweeper := &fakeSweeper{
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := New(sweeper, logging.NewNop(), time.Hour)

	var (
		wg      sync.WaitGroup
		shared  atomic.Int32
		results = make(chan usecase.SweepResult, 2)
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		out, isShared, err := s.RunOnce(t.Context())
		if err != nil {
			t.Errorf("first run: %v", err)
		}
		if isShared {
			shared.Add(1)
		}
		results <- out
	}()
	<-sweeper.entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		out, isShared, err := s.RunOnce(t.Context())
		if err != nil {
			t.Errorf("second run: %v", err)
		}
		if isShared {
			shared.Add(1)
		}
		results <- out
	}()

	// let the second caller reach the flight before the sweep returns
	time.Sleep(20 * time.Millisecond)
	close(sweeper.release)
	wg.Wait()
	close(results)

	if got := sweeper.calls.Load(); got != 1 {
		t.Fatalf("expected one sweep, got %d", got)
	}
	if shared.Load() != 1 {
		t.Fatalf("expected exactly one shared result, got %d", shared.Load())
	}
	for out := range results {
		if out.DispatchID != "dispatch" {
			t.Fatalf("unexpected result: %+v", out)
		}
	}
	if status := s.Status(); status.Runs != 1 || status.Coalesced != 1 || status.Running {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestScheduler_RunOnceRecoversPanic(t *testing.T) {
	s := New(&fakeSweeper{explode: true}, logging.NewNop(), time.Hour)

	_, _, err := s.RunOnce(t.Context())
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}

	status := s.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" || status.Running {
		t.Fatalf("unexpected status after panic: %+v", status)
	}
}

func TestScheduler_StatusTracksFailuresAndRecovery(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("league list unavailable")}
	s := New(sweeper, logging.NewNop(), time.Hour)

	for range 2 {
		if _, _, err := s.RunOnce(t.Context()); err == nil {
			t.Fatalf("expected sweep error")
		}
	}
	if got := s.Status().ConsecutiveFailures; got != 2 {
		t.Fatalf("expected 2 consecutive failures, got %d", got)
	}

	sweeper.err = nil
	out, _, err := s.RunOnce(t.Context())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}

	status := s.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" || status.LastResult == nil {
		t.Fatalf("expected recovered status, got %+v", status)
	}
	if status.LastResult.LeaguesProcessed != out.LeaguesProcessed {
		t.Fatalf("expected last result %+v, got %+v", out, status.LastResult)
	}
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	sweeper := &fakeSweeper{entered: make(chan struct{}, 4)}
	s := New(sweeper, logging.NewNop(), time.Hour)

	s.Start(t.Context())
	s.Start(t.Context())

	select {
	case <-sweeper.entered:
	case <-time.After(time.Second):
		t.Fatalf("expected a sweep on start")
	}

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if got := sweeper.calls.Load(); got != 1 {
		t.Fatalf("expected one sweep with an hourly interval, got %d", got)
	}
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := New(&fakeSweeper{}, nil, 0)
	if s.interval != defaultInterval {
		t.Fatalf("expected default interval, got %s", s.interval)
	}
	if err := s.Stop(t.Context()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestScheduler_RunOnceOutlivesCallerContext(t *testing.T) {
	sweeper := &fakeSweeper{
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := New(sweeper, logging.NewNop(), time.Hour)

	ctx, cancel := context.WithCancel(t.Context())
	errs := make(chan error, 1)
	go func() {
		_, _, err := s.RunOnce(ctx)
		errs <- err
	}()
	<-sweeper.entered

	cancel()
	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected caller to stop waiting with context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected caller to return once its context ended")
	}

	close(sweeper.release)
	stopCtx, stopCancel := context.WithTimeout(t.Context(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if sweeper.cancelled.Load() {
		t.Fatalf("expected sweep context to survive caller cancellation")
	}
	status := s.Status()
	if status.Running || status.LastResult == nil || status.ConsecutiveFailures != 0 {
		t.Fatalf("expected completed sweep recorded, got %+v", status)
	}
}
