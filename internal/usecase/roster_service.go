package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

// ValidateRosterInput checks a roster against Budget, or against the initial
// budget when Budget is nil.
type ValidateRosterInput struct {
	LeagueID       string   `validate:"required"`
	MainPlayerIDs  []string `validate:"required,dive,required"`
	BenchPlayerIDs []string `validate:"dive,required"`
	Budget         *int64   `validate:"omitempty,gte=0"`
}

// RosterCheck is the outcome of a dry-run validation. Violation is nil when
// the roster is valid.
type RosterCheck struct {
	Valid     bool
	Cost      int64
	Budget    int64
	Remaining int64
	Violation *fantasy.Violation
}

type RosterService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	rules      fantasy.Rules
	logger     *logging.Logger
}

func NewRosterService(leagueRepo league.Repository, playerRepo player.Repository, rules fantasy.Rules, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		rules:      rules,
		logger:     logger,
	}
}

// ValidateRoster runs the roster rules without persisting anything. A rule
// violation is reported on the result, not as an error.
func (s *RosterService) ValidateRoster(ctx context.Context, input ValidateRosterInput) (RosterCheck, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ValidateRoster")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.MainPlayerIDs = trimIDs(input.MainPlayerIDs)
	input.BenchPlayerIDs = trimIDs(input.BenchPlayerIDs)
	if err := validateInput(input); err != nil {
		return RosterCheck{}, err
	}

	if _, ok, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return RosterCheck{}, wrapRepoErr("get league", err)
	} else if !ok {
		return RosterCheck{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	budget := s.rules.InitialBudget
	if input.Budget != nil {
		budget = *input.Budget
	}

	mainPicks, benchPicks, err := resolvePicks(ctx, s.playerRepo, playerIndex{}, input.MainPlayerIDs, input.BenchPlayerIDs)
	if err != nil {
		return RosterCheck{}, err
	}

	cost := fantasy.RosterCost(mainPicks, benchPicks)
	out := RosterCheck{
		Valid:     true,
		Cost:      cost,
		Budget:    budget,
		Remaining: budget - cost,
	}

	err = fantasy.ValidateRoster(mainPicks, benchPicks, budget, input.LeagueID, s.rules)
	if err == nil {
		return out, nil
	}

	var violation *fantasy.Violation
	if !errors.As(err, &violation) {
		return RosterCheck{}, fmt.Errorf("validate roster: %w", err)
	}
	out.Valid = false
	out.Violation = violation

	s.logger.DebugContext(ctx, "roster rejected",
		"league_id", input.LeagueID,
		"reason", violation.Reason,
		"cost", cost,
		"budget", budget,
	)
	return out, nil
}
