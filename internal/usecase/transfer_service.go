package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

type ReplacePlayersInput struct {
	UserID         string   `validate:"required"`
	SquadTourID    string   `validate:"required"`
	MainPlayerIDs  []string `validate:"required,dive,required"`
	BenchPlayerIDs []string `validate:"dive,required"`
	CaptainID      string   `validate:"required"`
	ViceCaptainID  string   `validate:"required"`
}

type TransferResult struct {
	Snapshot fantasy.SquadTour
	Plan     fantasy.ReplacementPlan
}

type TransferService struct {
	playerRepo player.Repository
	matchRepo  match.Repository
	tourRepo   tour.Repository
	squadRepo  fantasy.SquadRepository
	squadTours fantasy.SquadTourRepository
	tx         uow.Transactor
	rules      fantasy.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewTransferService(
	playerRepo player.Repository,
	matchRepo match.Repository,
	tourRepo tour.Repository,
	squadRepo fantasy.SquadRepository,
	squadTours fantasy.SquadTourRepository,
	tx uow.Transactor,
	rules fantasy.Rules,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TransferService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		tourRepo:   tourRepo,
		squadRepo:  squadRepo,
		squadTours: squadTours,
		tx:         tx,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

// ReplacePlayers swaps a snapshot's roster and captaincy. Players beyond the
// free allowance cost PenaltyPerTransfer points each and the budget is
// re-derived from what the current roster is worth.
func (s *TransferService) ReplacePlayers(ctx context.Context, input ReplacePlayersInput) (TransferResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ReplacePlayers")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SquadTourID = strings.TrimSpace(input.SquadTourID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)
	input.MainPlayerIDs = trimIDs(input.MainPlayerIDs)
	input.BenchPlayerIDs = trimIDs(input.BenchPlayerIDs)
	if err := validateInput(input); err != nil {
		return TransferResult{}, err
	}
	if err := fantasy.CheckCaptaincy(input.CaptainID, input.ViceCaptainID, input.MainPlayerIDs, input.BenchPlayerIDs); err != nil {
		return TransferResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	snapshot, ok, err := s.squadTours.GetByID(ctx, input.SquadTourID)
	if err != nil {
		return TransferResult{}, wrapRepoErr("get squad tour", err)
	}
	if !ok {
		return TransferResult{}, fmt.Errorf("%w: squad tour=%s", ErrNotFound, input.SquadTourID)
	}
	squad, err := getOwnedSquad(ctx, s.squadRepo, input.UserID, snapshot.SquadID)
	if err != nil {
		return TransferResult{}, err
	}

	now := s.now().UTC()
	if err := s.requireOpenTour(ctx, snapshot.TourID, now); err != nil {
		return TransferResult{}, err
	}

	prices := playerIndex{}
	mainPicks, benchPicks, err := resolvePicks(ctx, s.playerRepo, prices, input.MainPlayerIDs, input.BenchPlayerIDs)
	if err != nil {
		return TransferResult{}, err
	}
	if err := prices.load(ctx, s.playerRepo, snapshot.PlayerIDs()); err != nil {
		return TransferResult{}, err
	}

	var result TransferResult
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		current, ok, err := repos.SquadTours.GetByIDForUpdate(ctx, input.SquadTourID)
		if err != nil {
			return wrapRepoErr("lock squad tour", err)
		}
		if !ok {
			return fmt.Errorf("%w: squad tour=%s", ErrNotFound, input.SquadTourID)
		}
		if current.Finalized {
			return conflict(fmt.Errorf("%w: squad tour=%s", fantasy.ErrSnapshotLocked, current.ID))
		}

		// the roster may have changed since the read above
		if err := prices.load(ctx, s.playerRepo, current.PlayerIDs()); err != nil {
			return err
		}
		currentCost, err := prices.cost(current.PlayerIDs())
		if err != nil {
			return err
		}

		proposed := make([]string, 0, len(input.MainPlayerIDs)+len(input.BenchPlayerIDs))
		proposed = append(proposed, input.MainPlayerIDs...)
		proposed = append(proposed, input.BenchPlayerIDs...)
		plan := fantasy.PlanReplacement(current, proposed, currentCost, fantasy.RosterCost(mainPicks, benchPicks), s.rules)

		if err := fantasy.ValidateRoster(mainPicks, benchPicks, plan.BudgetBaseline, squad.LeagueID, s.rules); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		next := fantasy.ApplyReplacement(current, plan, input.MainPlayerIDs, input.BenchPlayerIDs, input.CaptainID, input.ViceCaptainID, now)
		if err := repos.SquadTours.Update(ctx, next); err != nil {
			return wrapRepoErr("update squad tour", err)
		}

		result = TransferResult{Snapshot: next, Plan: plan}
		return nil
	})
	if err != nil {
		return TransferResult{}, err
	}

	s.logger.InfoContext(ctx, "players replaced",
		"squad_id", squad.ID,
		"squad_tour_id", result.Snapshot.ID,
		"tour_id", result.Snapshot.TourID,
		"differing", result.Plan.Differing,
		"free_used", result.Plan.FreeUsed,
		"paid", result.Plan.Paid,
		"penalty", result.Plan.Penalty,
		"budget_left", result.Snapshot.Budget,
	)

	return result, nil
}

func (s *TransferService) requireOpenTour(ctx context.Context, tourID string, now time.Time) error {
	t, err := getTour(ctx, s.tourRepo, tourID)
	if err != nil {
		return err
	}
	state, err := resolveTourState(ctx, s.matchRepo, t, now)
	if err != nil {
		return err
	}
	if !state.Status.Open() {
		return fmt.Errorf("%w: tour %s is %s", ErrConflict, tourID, state.Status)
	}
	return nil
}
