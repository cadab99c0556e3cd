package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_CollapsesConcurrentCalls(t *testing.T) {
	var (
		flight  Flight[string]
		calls   atomic.Int32
		shared  atomic.Int32
		wg      sync.WaitGroup
		start   = make(chan struct{})
		workers = 20
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			value, isShared, err := flight.Do(t.Context(), "finalization_sweep", func() (string, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || value != "ok" {
				t.Errorf("unexpected result %q, %v", value, err)
			}
			if isShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
	if got := shared.Load(); got != int32(workers-1) {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestFlight_WaiterHonoursContext(t *testing.T) {
	var flight Flight[int]
	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_, _, _ = flight.Do(context.Background(), "k", func() (int, error) {
			close(entered)
			<-release
			return 1, nil
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	_, shared, err := flight.Do(ctx, "k", func() (int, error) { return 2, nil })
	close(release)

	if !shared || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected waiter to give up with deadline, got shared=%v err=%v", shared, err)
	}
}

func TestFlight_KeyIsReleased(t *testing.T) {
	var flight Flight[int]

	for want := 1; want <= 2; want++ {
		got, shared, err := flight.Do(t.Context(), "k", func() (int, error) { return want, nil })
		if err != nil || shared || got != want {
			t.Fatalf("call %d: got %d shared=%v err=%v", want, got, shared, err)
		}
	}
}
