// Package scheduler drives the finalization sweep on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

const (
	defaultInterval = time.Hour
	sweepFlightKey  = "finalization_sweep"
)

// Sweeper runs one pass over every league.
type Sweeper interface {
	RunSweep(ctx context.Context) (usecase.SweepResult, error)
}

// Scheduler triggers the sweep on every tick. Runs never overlap: a tick or
// manual trigger that arrives mid-run joins the run in progress, and ticks
// missed while a run was busy are dropped by the ticker.
type Scheduler struct {
	sweeper  Sweeper
	logger   *logging.Logger
	interval time.Duration
	now      func() time.Time

	flight resilience.Flight[usecase.SweepResult]
	sweeps sync.WaitGroup

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the scheduler loop.
type Status struct {
	Running             bool                 `json:"running"`
	Runs                int                  `json:"runs"`
	Coalesced           int                  `json:"coalesced"`
	ConsecutiveFailures int                  `json:"consecutive_failures"`
	LastError           string               `json:"last_error,omitempty"`
	LastAttempt         time.Time            `json:"last_attempt"`
	LastSuccess         time.Time            `json:"last_success"`
	LastResult          *usecase.SweepResult `json:"last_result,omitempty"`
}

func New(sweeper Sweeper, logger *logging.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Scheduler{
		sweeper:  sweeper,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval until ctx is
// cancelled or Stop is called. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		defer close(s.exited)
		s.logger.Info("finalization scheduler started", "interval", s.interval.String())

		s.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				s.ticker.Stop()
				s.logger.Info("finalization scheduler stopped", "reason", "context done")
				return
			case <-s.done:
				s.ticker.Stop()
				s.logger.Info("finalization scheduler stopped", "reason", "stop called")
				return
			case <-s.ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for in-flight sweeps to return, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if started {
		select {
		case <-s.exited:
		case <-ctx.Done():
			return fmt.Errorf("wait for finalization scheduler: %w", ctx.Err())
		}
	}

	idle := make(chan struct{})
	go func() {
		s.sweeps.Wait()
		close(idle)
	}()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for finalization sweep: %w", ctx.Err())
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, _, err := s.RunOnce(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled finalization sweep failed", "error", err)
	}
}

type sweepOutcome struct {
	result usecase.SweepResult
	shared bool
	err    error
}

// RunOnce runs a sweep now, or joins the one already running. shared reports
// whether the result came from a run started by another caller. ctx only
// bounds the wait: the sweep itself runs detached from its cancellation, so
// a caller that goes away does not abort leagues mid-finalization.
func (s *Scheduler) RunOnce(ctx context.Context) (result usecase.SweepResult, shared bool, err error) {
	sweepCtx := context.WithoutCancel(ctx)
	outcome := make(chan sweepOutcome, 1)

	s.sweeps.Add(1)
	go func() {
		defer s.sweeps.Done()
		var out sweepOutcome
		out.result, out.shared, out.err = s.flight.Do(sweepCtx, sweepFlightKey, func() (usecase.SweepResult, error) {
			return s.run(sweepCtx)
		})
		if out.shared {
			s.statusMu.Lock()
			s.status.Coalesced++
			s.statusMu.Unlock()
		}
		outcome <- out
	}()

	select {
	case out := <-outcome:
		if out.err != nil {
			return usecase.SweepResult{}, out.shared, out.err
		}
		return out.result, out.shared, nil
	case <-ctx.Done():
		return usecase.SweepResult{}, false, fmt.Errorf("wait for finalization sweep: %w", ctx.Err())
	}
}

func (s *Scheduler) run(ctx context.Context) (usecase.SweepResult, error) {
	startedAt := s.now()
	s.recordAttempt(startedAt)

	var (
		result   usecase.SweepResult
		sweepErr error
		catcher  panics.Catcher
	)
	catcher.Try(func() {
		result, sweepErr = s.sweeper.RunSweep(ctx)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		sweepErr = fmt.Errorf("finalization sweep panicked: %w", recovered.AsError())
	}

	if sweepErr != nil {
		s.recordFailure(sweepErr, startedAt)
		return usecase.SweepResult{}, sweepErr
	}

	s.recordSuccess(result, startedAt)
	s.logger.InfoContext(ctx, "finalization sweep completed",
		"dispatch_id", result.DispatchID,
		"leagues", result.LeaguesProcessed,
		"started", result.Started,
		"finalized", result.Finalized,
		"created", result.Created,
		"errors", len(result.Errors),
		"duration_ms", s.now().Sub(startedAt).Milliseconds(),
	)
	return result, nil
}

func (s *Scheduler) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Running = true
	s.status.Runs++
	s.status.LastAttempt = at
}

func (s *Scheduler) recordSuccess(result usecase.SweepResult, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Running = false
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
	s.status.LastResult = &result
}

func (s *Scheduler) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Running = false
	s.status.ConsecutiveFailures++
	s.status.LastError = err.Error()
	s.status.LastAttempt = at
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	out := s.status
	if out.LastResult != nil {
		result := *out.LastResult
		out.LastResult = &result
	}
	return out
}
