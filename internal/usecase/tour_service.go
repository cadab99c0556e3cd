package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
	idgen "github.com/riskibarqy/fantasy-tour/internal/platform/id"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

type FinalizeRoundInput struct {
	TourID     string `validate:"required"`
	NextTourID string `validate:"required,nefield=TourID"`
}

type StartTourResult struct {
	TourID string
	Locked int
}

type FinalizeRoundResult struct {
	TourID     string
	NextTourID string
	Squads     int
	Created    int
	Skipped    int
	GoldBonus  int
}

type TourService struct {
	tourRepo   tour.Repository
	matchRepo  match.Repository
	squadTours fantasy.SquadTourRepository
	tx         uow.Transactor
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTourService(
	tourRepo tour.Repository,
	matchRepo match.Repository,
	squadTours fantasy.SquadTourRepository,
	tx uow.Transactor,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TourService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TourService{
		tourRepo:   tourRepo,
		matchRepo:  matchRepo,
		squadTours: squadTours,
		tx:         tx,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TourService) TourStatus(ctx context.Context, tourID string) (TourState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourService.TourStatus")
	defer span.End()

	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return TourState{}, fmt.Errorf("%w: tour id is required", ErrInvalidInput)
	}

	t, err := getTour(ctx, s.tourRepo, tourID)
	if err != nil {
		return TourState{}, err
	}
	return resolveTourState(ctx, s.matchRepo, t, s.now().UTC())
}

// StartTour persists the started flag and locks every snapshot of the tour.
// Calling it again is a no-op apart from locking snapshots created since.
func (s *TourService) StartTour(ctx context.Context, tourID string) (StartTourResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourService.StartTour")
	defer span.End()

	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return StartTourResult{}, fmt.Errorf("%w: tour id is required", ErrInvalidInput)
	}

	t, err := getTour(ctx, s.tourRepo, tourID)
	if err != nil {
		return StartTourResult{}, err
	}
	if t.Finalized {
		return StartTourResult{}, conflict(fmt.Errorf("%w: tour=%s", tour.ErrAlreadyFinalized, tourID))
	}

	now := s.now().UTC()
	result := StartTourResult{TourID: tourID}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Tours.MarkStarted(ctx, tourID, now); err != nil {
			return wrapRepoErr("mark tour started", err)
		}
		locked, err := repos.SquadTours.LockByTour(ctx, tourID)
		if err != nil {
			return wrapRepoErr("lock squad tours", err)
		}
		result.Locked = locked
		return nil
	})
	if err != nil {
		return StartTourResult{}, err
	}

	s.logger.InfoContext(ctx, "tour started",
		"tour_id", tourID,
		"league_id", t.LeagueID,
		"already_started", t.Started,
		"locked", result.Locked,
	)
	return result, nil
}

// FinalizeRound closes a finished tour. Every squad gets its next snapshot
// carried forward, each in its own transaction, so a retry after a partial
// failure only creates what is still missing. The tour is marked finalized
// once every squad went through.
func (s *TourService) FinalizeRound(ctx context.Context, input FinalizeRoundInput) (FinalizeRoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourService.FinalizeRound")
	defer span.End()

	input.TourID = strings.TrimSpace(input.TourID)
	input.NextTourID = strings.TrimSpace(input.NextTourID)
	if err := validateInput(input); err != nil {
		return FinalizeRoundResult{}, err
	}

	current, err := getTour(ctx, s.tourRepo, input.TourID)
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	next, err := getTour(ctx, s.tourRepo, input.NextTourID)
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	if next.LeagueID != current.LeagueID || next.Number <= current.Number {
		return FinalizeRoundResult{}, fmt.Errorf("%w: tour %s cannot follow tour %s", ErrInvalidInput, next.ID, current.ID)
	}
	if current.Finalized {
		return FinalizeRoundResult{}, conflict(fmt.Errorf("%w: tour=%s", tour.ErrAlreadyFinalized, current.ID))
	}

	now := s.now().UTC()
	state, err := resolveTourState(ctx, s.matchRepo, current, now)
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	if state.Status != tour.StatusFinished {
		return FinalizeRoundResult{}, conflict(fmt.Errorf("%w: tour %s is %s", tour.ErrInvalidTransition, current.ID, state.Status))
	}

	snapshots, err := s.squadTours.ListByTour(ctx, current.ID)
	if err != nil {
		return FinalizeRoundResult{}, wrapRepoErr("list squad tours by tour", err)
	}

	result := FinalizeRoundResult{TourID: current.ID, NextTourID: next.ID, Squads: len(snapshots)}
	var errs []error
	for _, snapshot := range snapshots {
		outcome, err := s.finalizeSquad(ctx, snapshot, next.ID, now)
		if err != nil {
			s.logger.WarnContext(ctx, "finalize squad failed",
				"tour_id", current.ID,
				"squad_id", snapshot.SquadID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("squad %s: %w", snapshot.SquadID, err))
			continue
		}
		switch outcome {
		case squadCarried:
			result.Created++
		case squadCarriedWithBonus:
			result.Created++
			result.GoldBonus++
		case squadAlreadyCarried:
			result.Skipped++
		}
	}
	if len(errs) > 0 {
		return result, fmt.Errorf("finalize tour %s: %w", current.ID, errors.Join(errs...))
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		return wrapRepoErr("mark tour finalized", repos.Tours.MarkFinalized(ctx, current.ID, now))
	})
	if err != nil {
		return result, err
	}

	s.logger.InfoContext(ctx, "tour finalized",
		"tour_id", current.ID,
		"next_tour_id", next.ID,
		"league_id", current.LeagueID,
		"squads", result.Squads,
		"created", result.Created,
		"skipped", result.Skipped,
		"gold_bonus", result.GoldBonus,
	)
	return result, nil
}

type squadOutcome int

const (
	squadAlreadyCarried squadOutcome = iota
	squadCarried
	squadCarriedWithBonus
)

func (s *TourService) finalizeSquad(ctx context.Context, snapshot fantasy.SquadTour, nextTourID string, now time.Time) (squadOutcome, error) {
	nextID, err := s.idGen.NewID()
	if err != nil {
		return squadAlreadyCarried, fmt.Errorf("generate squad tour id: %w", err)
	}

	outcome := squadAlreadyCarried
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if _, exists, err := repos.SquadTours.GetBySquadAndTour(ctx, snapshot.SquadID, nextTourID); err != nil {
			return wrapRepoErr("get next squad tour", err)
		} else if exists {
			return nil
		}

		current, ok, err := repos.SquadTours.GetByIDForUpdate(ctx, snapshot.ID)
		if err != nil {
			return wrapRepoErr("lock squad tour", err)
		}
		if !ok {
			return fmt.Errorf("%w: squad tour=%s", ErrNotFound, snapshot.ID)
		}

		next, ok, err := repos.Tours.GetByID(ctx, nextTourID)
		if err != nil {
			return wrapRepoErr("get next tour", err)
		}
		if !ok {
			return fmt.Errorf("%w: tour=%s", ErrNotFound, nextTourID)
		}

		carried := fantasy.CarryForward(current, nextID, nextTourID, s.rules, now)
		// A next tour that already started locks its snapshots on arrival.
		carried.Finalized = next.Started || next.Finalized
		if err := repos.SquadTours.Create(ctx, carried); err != nil {
			if errors.Is(err, fantasy.ErrSnapshotExists) {
				return nil
			}
			return wrapRepoErr("create next squad tour", err)
		}

		outcome = squadCarried
		if boost.EffectOf(current.ActiveBoost).FinalizationBonus {
			current.Points += s.rules.GoldTourBonus
			outcome = squadCarriedWithBonus
		}
		current.Finalized = true
		current.UpdatedAt = now
		if err := repos.SquadTours.Update(ctx, current); err != nil {
			return wrapRepoErr("update squad tour", err)
		}
		return nil
	})
	if err != nil {
		return squadAlreadyCarried, err
	}
	return outcome, nil
}
