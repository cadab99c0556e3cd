package resilience

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnavailable marks every failure that passed through a Guard, so callers
// can classify it with crerr.Is without knowing the dependency.
var ErrUnavailable = errors.New("dependency unavailable")

// Guard runs dependency calls through an optional breaker and a per-call
// timeout. A nil Guard runs fn directly.
type Guard struct {
	breaker *CircuitBreaker
	timeout time.Duration
}

func NewGuard(cfg CircuitBreakerConfig, timeout time.Duration) *Guard {
	g := &Guard{timeout: timeout}
	if cfg.Enabled {
		g.breaker = NewCircuitBreaker(cfg)
	}
	return g
}

func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	var generation uint64
	if g.breaker != nil {
		var err error
		if generation, err = g.breaker.Allow(); err != nil {
			return crerr.Mark(err, ErrUnavailable)
		}
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	if g.breaker != nil {
		switch {
		case err == nil:
			g.breaker.Done(generation, true)
		case ctx.Err() != nil:
			// caller gave up, the dependency is not to blame
		default:
			g.breaker.Done(generation, false)
		}
	}
	if err != nil {
		return crerr.Mark(err, ErrUnavailable)
	}
	return nil
}

func (g *Guard) State() CircuitState {
	if g == nil || g.breaker == nil {
		return CircuitStateClosed
	}
	return g.breaker.State()
}
