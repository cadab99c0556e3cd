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

type ApplyBoostInput struct {
	UserID  string `validate:"required"`
	SquadID string `validate:"required"`
	TourID  string `validate:"required"`
	Kind    string `validate:"required"`
}

type RemoveBoostInput struct {
	UserID  string `validate:"required"`
	SquadID string `validate:"required"`
	TourID  string `validate:"required"`
}

type BoostService struct {
	boostRepo boost.Repository
	tourRepo  tour.Repository
	matchRepo match.Repository
	squadRepo fantasy.SquadRepository
	tx        uow.Transactor
	rules     fantasy.Rules
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewBoostService(
	boostRepo boost.Repository,
	tourRepo tour.Repository,
	matchRepo match.Repository,
	squadRepo fantasy.SquadRepository,
	tx uow.Transactor,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *BoostService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BoostService{
		boostRepo: boostRepo,
		tourRepo:  tourRepo,
		matchRepo: matchRepo,
		squadRepo: squadRepo,
		tx:        tx,
		rules:     rules,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

// ListUsage returns every boost a squad has spent, oldest first.
func (s *BoostService) ListUsage(ctx context.Context, squadID string) ([]boost.Usage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoostService.ListUsage")
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	if squadID == "" {
		return nil, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	items, err := s.boostRepo.ListBySquad(ctx, squadID)
	if err != nil {
		return nil, wrapRepoErr("list boosts by squad", err)
	}
	return items, nil
}

// ApplyBoost activates a boost on the squad's snapshot for an open tour.
// Each kind is usable once per squad and a tour takes at most one boost.
func (s *BoostService) ApplyBoost(ctx context.Context, input ApplyBoostInput) (fantasy.SquadTour, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoostService.ApplyBoost")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SquadID = strings.TrimSpace(input.SquadID)
	input.TourID = strings.TrimSpace(input.TourID)
	if err := validateInput(input); err != nil {
		return fantasy.SquadTour{}, err
	}
	kind, err := boost.ParseKind(input.Kind)
	if err != nil {
		return fantasy.SquadTour{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	squad, err := s.checkOpen(ctx, input.UserID, input.SquadID, input.TourID, now)
	if err != nil {
		return fantasy.SquadTour{}, err
	}

	usageID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.SquadTour{}, fmt.Errorf("generate boost usage id: %w", err)
	}

	var out fantasy.SquadTour
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		snapshot, err := lockOpenSnapshot(ctx, repos, squad.ID, input.TourID)
		if err != nil {
			return err
		}

		history, err := repos.Boosts.ListBySquad(ctx, squad.ID)
		if err != nil {
			return wrapRepoErr("list boosts by squad", err)
		}
		if err := boost.CheckApply(kind, input.TourID, history); err != nil {
			return conflict(err)
		}

		usage := boost.Usage{
			ID:      usageID,
			SquadID: squad.ID,
			TourID:  input.TourID,
			Kind:    kind,
			UsedAt:  now,
		}
		if err := repos.Boosts.Create(ctx, usage); err != nil {
			if errors.Is(err, boost.ErrKindAlreadyUsed) || errors.Is(err, boost.ErrTourAlreadyBoosted) {
				return conflict(err)
			}
			return wrapRepoErr("create boost usage", err)
		}

		snapshot.ActiveBoost = kind
		if boost.EffectOf(kind).ExtraFreeReplacements {
			snapshot = fantasy.GrantExtraReplacements(snapshot, s.rules.TransfersPlusExtra)
		}
		snapshot.UpdatedAt = now
		if err := repos.SquadTours.Update(ctx, snapshot); err != nil {
			return wrapRepoErr("update squad tour", err)
		}

		out = snapshot
		return nil
	})
	if err != nil {
		return fantasy.SquadTour{}, err
	}

	s.logger.InfoContext(ctx, "boost applied",
		"squad_id", squad.ID,
		"tour_id", input.TourID,
		"kind", kind,
		"free_replacements", out.FreeReplacements,
	)
	return out, nil
}

// RemoveBoost frees the tour's boost so the kind can be used again. A
// transfers_plus grant that was partly spent cannot be taken back.
func (s *BoostService) RemoveBoost(ctx context.Context, input RemoveBoostInput) (fantasy.SquadTour, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoostService.RemoveBoost")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SquadID = strings.TrimSpace(input.SquadID)
	input.TourID = strings.TrimSpace(input.TourID)
	if err := validateInput(input); err != nil {
		return fantasy.SquadTour{}, err
	}

	now := s.now().UTC()
	squad, err := s.checkOpen(ctx, input.UserID, input.SquadID, input.TourID, now)
	if err != nil {
		return fantasy.SquadTour{}, err
	}

	var (
		out     fantasy.SquadTour
		removed boost.Kind
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		snapshot, err := lockOpenSnapshot(ctx, repos, squad.ID, input.TourID)
		if err != nil {
			return err
		}

		history, err := repos.Boosts.ListBySquad(ctx, squad.ID)
		if err != nil {
			return wrapRepoErr("list boosts by squad", err)
		}
		usage, ok := boost.FindByTour(history, input.TourID)
		if !ok {
			return fmt.Errorf("%w: %w: squad=%s tour=%s", ErrNotFound, boost.ErrUsageNotFound, squad.ID, input.TourID)
		}

		if boost.EffectOf(usage.Kind).ExtraFreeReplacements {
			snapshot, err = fantasy.RevokeExtraReplacements(snapshot)
			if err != nil {
				return conflict(err)
			}
		}

		if err := repos.Boosts.DeleteBySquadAndTour(ctx, squad.ID, input.TourID); err != nil {
			if errors.Is(err, boost.ErrUsageNotFound) {
				return fmt.Errorf("%w: %w", ErrNotFound, err)
			}
			return wrapRepoErr("delete boost usage", err)
		}

		snapshot.ActiveBoost = boost.KindNone
		snapshot.UpdatedAt = now
		if err := repos.SquadTours.Update(ctx, snapshot); err != nil {
			return wrapRepoErr("update squad tour", err)
		}

		out = snapshot
		removed = usage.Kind
		return nil
	})
	if err != nil {
		return fantasy.SquadTour{}, err
	}

	s.logger.InfoContext(ctx, "boost removed",
		"squad_id", squad.ID,
		"tour_id", input.TourID,
		"kind", removed,
	)
	return out, nil
}

func (s *BoostService) checkOpen(ctx context.Context, userID, squadID, tourID string, now time.Time) (fantasy.Squad, error) {
	squad, err := getOwnedSquad(ctx, s.squadRepo, userID, squadID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	t, err := getTour(ctx, s.tourRepo, tourID)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if t.LeagueID != squad.LeagueID {
		return fantasy.Squad{}, fmt.Errorf("%w: tour %s is not in league %s", ErrInvalidInput, tourID, squad.LeagueID)
	}

	state, err := resolveTourState(ctx, s.matchRepo, t, now)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if !state.Status.Open() {
		return fantasy.Squad{}, fmt.Errorf("%w: tour %s is %s", ErrConflict, tourID, state.Status)
	}
	return squad, nil
}

func lockOpenSnapshot(ctx context.Context, repos uow.Repositories, squadID, tourID string) (fantasy.SquadTour, error) {
	snapshot, ok, err := repos.SquadTours.GetBySquadAndTourForUpdate(ctx, squadID, tourID)
	if err != nil {
		return fantasy.SquadTour{}, wrapRepoErr("lock squad tour", err)
	}
	if !ok {
		return fantasy.SquadTour{}, fmt.Errorf("%w: squad=%s has no snapshot for tour=%s", ErrNotFound, squadID, tourID)
	}
	if snapshot.Finalized {
		return fantasy.SquadTour{}, conflict(fmt.Errorf("%w: squad tour=%s", fantasy.ErrSnapshotLocked, snapshot.ID))
	}
	return snapshot, nil
}
