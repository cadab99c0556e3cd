package resilience

import (
	"context"
	"errors"
	"sync"
)

// ErrFlightAborted is what waiters see when the leading call panicked.
var ErrFlightAborted = errors.New("shared call aborted")

// Flight collapses concurrent calls that share a key into one execution.
// The zero value is ready to use.
type Flight[T any] struct {
	mu       sync.Mutex
	inflight map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Do runs fn unless a call for key is already running, in which case it waits
// for that call's result and reports shared=true. A waiter whose ctx ends
// stops waiting; the running call is not cancelled.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (value T, shared bool, err error) {
	f.mu.Lock()
	if f.inflight == nil {
		f.inflight = make(map[string]*flightCall[T])
	}
	if c, ok := f.inflight[key]; ok {
		f.mu.Unlock()
		select {
		case <-c.done:
			return c.value, true, c.err
		case <-ctx.Done():
			var zero T
			return zero, true, ctx.Err()
		}
	}

	c := &flightCall[T]{done: make(chan struct{}), err: ErrFlightAborted}
	f.inflight[key] = c
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.inflight, key)
		f.mu.Unlock()
		close(c.done)
	}()

	c.value, c.err = fn()
	return c.value, false, c.err
}
