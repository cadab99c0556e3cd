package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fantasy-tour/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	idgen "github.com/riskibarqy/fantasy-tour/internal/platform/id"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

// TourLifecycle is what the sweep needs from the tour controller.
type TourLifecycle interface {
	TourStatus(ctx context.Context, tourID string) (TourState, error)
	StartTour(ctx context.Context, tourID string) (StartTourResult, error)
	FinalizeRound(ctx context.Context, input FinalizeRoundInput) (FinalizeRoundResult, error)
}

type FinalizationConfig struct {
	Grace         time.Duration
	MaxWorkers    int
	LeagueTimeout time.Duration
}

type LeagueError struct {
	LeagueID string `json:"league_id"`
	TourID   string `json:"tour_id,omitempty"`
	Message  string `json:"message"`
}

type SweepResult struct {
	DispatchID       string        `json:"dispatch_id"`
	LeaguesProcessed int           `json:"leagues_processed"`
	Started          int           `json:"started"`
	Finalized        int           `json:"finalized"`
	Created          int           `json:"created"`
	Errors           []LeagueError `json:"errors"`
}

type FinalizationService struct {
	leagueRepo   league.Repository
	tourRepo     tour.Repository
	lifecycle    TourLifecycle
	dispatchRepo jobscheduler.Repository
	idGen        idgen.Generator
	cfg          FinalizationConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewFinalizationService(
	leagueRepo league.Repository,
	tourRepo tour.Repository,
	lifecycle TourLifecycle,
	dispatchRepo jobscheduler.Repository,
	idGen idgen.Generator,
	cfg FinalizationConfig,
	logger *logging.Logger,
) *FinalizationService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	return &FinalizationService{
		leagueRepo:   leagueRepo,
		tourRepo:     tourRepo,
		lifecycle:    lifecycle,
		dispatchRepo: dispatchRepo,
		idGen:        idGen,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

type leagueOutcome struct {
	tourID    string
	status    jobscheduler.DispatchStatus
	reason    string
	started   bool
	finalized bool
	created   int
}

// RunSweep walks every league once: a tour past its start gets started and
// a finished tour gets finalized after the grace period. A failing league is
// reported in the result and never stops the others.
func (s *FinalizationService) RunSweep(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinalizationService.RunSweep")
	defer span.End()

	dispatchID, err := s.idGen.NewID()
	if err != nil {
		return SweepResult{}, fmt.Errorf("generate dispatch id: %w", err)
	}

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return SweepResult{}, wrapRepoErr("list leagues", err)
	}

	result := SweepResult{DispatchID: dispatchID, Errors: []LeagueError{}}
	if len(leagues) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(min(s.cfg.MaxWorkers, len(leagues)))
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, item := range leagues {
		leagueID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			outcome, err := s.sweepLeague(ctx, leagueID)
			s.recordDispatch(ctx, dispatchID, leagueID, outcome, err)

			mu.Lock()
			defer mu.Unlock()
			result.LeaguesProcessed++
			if err != nil {
				result.Errors = append(result.Errors, LeagueError{LeagueID: leagueID, TourID: outcome.tourID, Message: err.Error()})
				return
			}
			if outcome.started {
				result.Started++
			}
			if outcome.finalized {
				result.Finalized++
			}
			result.Created += outcome.created
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].LeagueID < result.Errors[j].LeagueID
	})

	s.logger.InfoContext(ctx, "finalization sweep done",
		"dispatch_id", dispatchID,
		"leagues_processed", result.LeaguesProcessed,
		"started", result.Started,
		"finalized", result.Finalized,
		"created", result.Created,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (s *FinalizationService) sweepLeague(ctx context.Context, leagueID string) (out leagueOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sweeping league %s: %v", leagueID, r)
		}
	}()

	if s.cfg.LeagueTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LeagueTimeout)
		defer cancel()
	}

	tours, err := s.tourRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return out, wrapRepoErr("list tours by league", err)
	}
	_, current, next := tour.Neighbours(tours)
	if current == nil {
		out.status, out.reason = jobscheduler.StatusSkipped, "no open tour"
		return out, nil
	}
	out.tourID = current.ID

	state, err := s.lifecycle.TourStatus(ctx, current.ID)
	if err != nil {
		return out, err
	}

	if state.Status >= tour.StatusStarted && !current.Started {
		if _, err := s.lifecycle.StartTour(ctx, current.ID); err != nil {
			return out, err
		}
		out.started = true
	}

	if state.Status != tour.StatusFinished {
		out.status, out.reason = jobscheduler.StatusCompleted, "tour "+state.Status.String()
		if !out.started {
			out.status = jobscheduler.StatusSkipped
		}
		return out, nil
	}
	if next == nil {
		out.status, out.reason = jobscheduler.StatusSkipped, "last tour of league"
		return out, nil
	}
	if wait := s.cfg.Grace - s.now().Sub(state.Summary.LastFinishedAt); wait > 0 {
		out.status, out.reason = jobscheduler.StatusSkipped, "grace period, "+wait.Round(time.Second).String()+" left"
		return out, nil
	}

	finalized, err := s.lifecycle.FinalizeRound(ctx, FinalizeRoundInput{TourID: current.ID, NextTourID: next.ID})
	if err != nil {
		if errors.Is(err, tour.ErrAlreadyFinalized) {
			out.status, out.reason = jobscheduler.StatusSkipped, "already finalized"
			return out, nil
		}
		return out, err
	}
	out.status = jobscheduler.StatusCompleted
	out.finalized = true
	out.created = finalized.Created
	return out, nil
}

func (s *FinalizationService) recordDispatch(ctx context.Context, dispatchID, leagueID string, outcome leagueOutcome, err error) {
	if s.dispatchRepo == nil || strings.TrimSpace(dispatchID) == "" {
		return
	}

	event := jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    jobscheduler.JobFinalizationSweep,
		LeagueID:   leagueID,
		TourID:     outcome.tourID,
		Status:     outcome.status,
		Payload: map[string]any{
			"reason":    outcome.reason,
			"started":   outcome.started,
			"finalized": outcome.finalized,
			"created":   outcome.created,
		},
		OccurredAt: s.now().UTC(),
	}
	if err != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		s.logger.WarnContext(ctx, "league sweep failed", "league_id", leagueID, "tour_id", outcome.tourID, "error", err)
	}
	event.TraceID, event.SpanID = traceMetaFromContext(ctx)

	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", dispatchID,
			"league_id", leagueID,
			"status", event.Status,
			"error", err,
		)
	}
}

// ListDispatches returns the latest sweep outcomes, newest first.
func (s *FinalizationService) ListDispatches(ctx context.Context, limit int) ([]jobscheduler.DispatchEvent, error) {
	if s.dispatchRepo == nil {
		return []jobscheduler.DispatchEvent{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := s.dispatchRepo.ListRecent(ctx, jobscheduler.JobFinalizationSweep, limit)
	if err != nil {
		return nil, wrapRepoErr("list job dispatch events", err)
	}
	return items, nil
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
