package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after FailureThreshold consecutive failures, rejects
// calls for OpenTimeout, then lets HalfOpenMaxReq probes through. All probes
// must succeed to close it again.
//
// Every state change bumps the generation. Outcomes reported against an older
// generation are ignored, so a slow call admitted before the breaker tripped
// cannot close it afterwards.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu         sync.Mutex
	state      CircuitState
	generation uint64
	failures   int
	openedAt   time.Time
	probes     int
	probesOK   int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// Allow admits a call and returns the generation to report its outcome
// against.
func (b *CircuitBreaker) Allow() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	switch b.state {
	case CircuitStateOpen:
		return 0, ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return 0, ErrCircuitOpen
		}
		b.probes++
	}
	return b.generation, nil
}

// Done reports the outcome of a call admitted at generation.
func (b *CircuitBreaker) Done(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		return
	}

	switch b.state {
	case CircuitStateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if !success {
			b.transition(CircuitStateOpen)
			return
		}
		b.probesOK++
		if b.probesOK >= b.cfg.HalfOpenMaxReq {
			b.transition(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	return b.state
}

// advance moves an expired open breaker to half-open. Caller holds mu.
func (b *CircuitBreaker) advance() {
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.transition(CircuitStateHalfOpen)
	}
}

func (b *CircuitBreaker) transition(to CircuitState) {
	b.state = to
	b.generation++
	b.failures = 0
	b.probes = 0
	b.probesOK = 0
	if to == CircuitStateOpen {
		b.openedAt = b.now()
	}
}
