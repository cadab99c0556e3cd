package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
	idgen "github.com/riskibarqy/fantasy-tour/internal/platform/id"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

// CreateSquadInput is the incoming payload for squad registration.
type CreateSquadInput struct {
	UserID         string   `validate:"required"`
	LeagueID       string   `validate:"required"`
	Name           string   `validate:"required,max=64"`
	FavoriteTeamID string   `validate:"required"`
	MainPlayerIDs  []string `validate:"required,dive,required"`
	BenchPlayerIDs []string `validate:"dive,required"`
	CaptainID      string   `validate:"required"`
	ViceCaptainID  string   `validate:"required"`
}

type RenameSquadInput struct {
	UserID  string `validate:"required"`
	SquadID string `validate:"required"`
	Name    string `validate:"required,max=64"`
}

// SquadWithTour is a squad plus the snapshot it was created with.
type SquadWithTour struct {
	Squad   fantasy.Squad
	Current fantasy.SquadTour
}

type SquadService struct {
	catalog    Catalog
	tourRepo   tour.Repository
	squadRepo  fantasy.SquadRepository
	squadTours fantasy.SquadTourRepository
	tx         uow.Transactor
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	catalog Catalog,
	tourRepo tour.Repository,
	squadRepo fantasy.SquadRepository,
	squadTours fantasy.SquadTourRepository,
	tx uow.Transactor,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		catalog:    catalog,
		tourRepo:   tourRepo,
		squadRepo:  squadRepo,
		squadTours: squadTours,
		tx:         tx,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSquad registers a squad and its first snapshot in the next tour that
// has not started yet.
func (s *SquadService) CreateSquad(ctx context.Context, input CreateSquadInput) (SquadWithTour, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CreateSquad")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	input.FavoriteTeamID = strings.TrimSpace(input.FavoriteTeamID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)
	input.MainPlayerIDs = trimIDs(input.MainPlayerIDs)
	input.BenchPlayerIDs = trimIDs(input.BenchPlayerIDs)
	if err := validateInput(input); err != nil {
		return SquadWithTour{}, err
	}

	if _, ok, err := s.catalog.Leagues.GetByID(ctx, input.LeagueID); err != nil {
		return SquadWithTour{}, wrapRepoErr("get league", err)
	} else if !ok {
		return SquadWithTour{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	favorite, ok, err := s.catalog.Teams.GetByID(ctx, input.FavoriteTeamID)
	if err != nil {
		return SquadWithTour{}, wrapRepoErr("get favorite team", err)
	}
	if !ok || favorite.LeagueID != input.LeagueID {
		return SquadWithTour{}, fmt.Errorf("%w: favorite team %s is not in league %s", ErrInvalidInput, input.FavoriteTeamID, input.LeagueID)
	}

	if err := fantasy.CheckCaptaincy(input.CaptainID, input.ViceCaptainID, input.MainPlayerIDs, input.BenchPlayerIDs); err != nil {
		return SquadWithTour{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	mainPicks, benchPicks, err := resolvePicks(ctx, s.catalog.Players, playerIndex{}, input.MainPlayerIDs, input.BenchPlayerIDs)
	if err != nil {
		return SquadWithTour{}, err
	}
	if err := fantasy.ValidateRoster(mainPicks, benchPicks, s.rules.InitialBudget, input.LeagueID, s.rules); err != nil {
		return SquadWithTour{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	upcoming, err := s.firstUpcomingTour(ctx, input.LeagueID, now)
	if err != nil {
		return SquadWithTour{}, err
	}

	if _, exists, err := s.squadRepo.GetByUserAndLeague(ctx, input.UserID, input.LeagueID); err != nil {
		return SquadWithTour{}, wrapRepoErr("get existing squad", err)
	} else if exists {
		return SquadWithTour{}, conflict(fmt.Errorf("%w: user=%s league=%s", fantasy.ErrSquadExists, input.UserID, input.LeagueID))
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return SquadWithTour{}, fmt.Errorf("generate squad id: %w", err)
	}
	snapshotID, err := s.idGen.NewID()
	if err != nil {
		return SquadWithTour{}, fmt.Errorf("generate squad tour id: %w", err)
	}

	squad := fantasy.Squad{
		ID:             squadID,
		UserID:         input.UserID,
		LeagueID:       input.LeagueID,
		FavoriteTeamID: input.FavoriteTeamID,
		Name:           input.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	snapshot := fantasy.SquadTour{
		ID:               snapshotID,
		SquadID:          squadID,
		TourID:           upcoming.ID,
		Budget:           s.rules.InitialBudget - fantasy.RosterCost(mainPicks, benchPicks),
		FreeReplacements: s.rules.InitialFreeReplacements,
		CaptainID:        input.CaptainID,
		ViceCaptainID:    input.ViceCaptainID,
		MainLineup:       append([]string(nil), input.MainPlayerIDs...),
		Bench:            append([]string(nil), input.BenchPlayerIDs...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Squads.Create(ctx, squad); err != nil {
			if errors.Is(err, fantasy.ErrSquadExists) {
				return conflict(err)
			}
			return wrapRepoErr("create squad", err)
		}
		if err := repos.SquadTours.Create(ctx, snapshot); err != nil {
			if errors.Is(err, fantasy.ErrSnapshotExists) {
				return conflict(err)
			}
			return wrapRepoErr("create squad tour", err)
		}
		return nil
	})
	if err != nil {
		return SquadWithTour{}, err
	}

	s.logger.InfoContext(ctx, "squad created",
		"squad_id", squad.ID,
		"user_id", squad.UserID,
		"league_id", squad.LeagueID,
		"tour_id", snapshot.TourID,
		"budget_left", snapshot.Budget,
	)

	return SquadWithTour{Squad: squad, Current: snapshot}, nil
}

func (s *SquadService) firstUpcomingTour(ctx context.Context, leagueID string, now time.Time) (tour.Tour, error) {
	tours, err := s.tourRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return tour.Tour{}, wrapRepoErr("list tours by league", err)
	}
	for _, t := range tour.SortByNumber(tours) {
		if t.Started || t.Finalized {
			continue
		}
		state, err := resolveTourState(ctx, s.catalog.Matches, t, now)
		if err != nil {
			return tour.Tour{}, err
		}
		if state.Status == tour.StatusNotStarted {
			return t, nil
		}
	}
	return tour.Tour{}, fmt.Errorf("%w: league %s has no upcoming tour", ErrConflict, leagueID)
}

// RenameSquad is the only change allowed on squad identity.
func (s *SquadService) RenameSquad(ctx context.Context, input RenameSquadInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.RenameSquad")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SquadID = strings.TrimSpace(input.SquadID)
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return fantasy.Squad{}, err
	}

	squad, err := getOwnedSquad(ctx, s.squadRepo, input.UserID, input.SquadID)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if squad.Name == input.Name {
		return squad, nil
	}

	if err := s.squadRepo.UpdateName(ctx, squad.ID, input.Name); err != nil {
		return fantasy.Squad{}, wrapRepoErr("update squad name", err)
	}
	squad.Name = input.Name
	squad.UpdatedAt = s.now().UTC()
	return squad, nil
}

func (s *SquadService) GetSquad(ctx context.Context, squadID string) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	if squadID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	squad, ok, err := s.squadRepo.GetByID(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get squad", err)
	}
	if !ok {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return squad, nil
}

// ListSquadTours returns every snapshot of a squad ordered by tour number.
func (s *SquadService) ListSquadTours(ctx context.Context, squadID string) ([]fantasy.SquadTour, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ListSquadTours")
	defer span.End()

	squad, err := s.GetSquad(ctx, squadID)
	if err != nil {
		return nil, err
	}

	tours, err := s.tourRepo.ListByLeague(ctx, squad.LeagueID)
	if err != nil {
		return nil, wrapRepoErr("list tours by league", err)
	}
	numberByTour := make(map[string]int, len(tours))
	for _, t := range tours {
		numberByTour[t.ID] = t.Number
	}

	snapshots, err := s.squadTours.ListBySquad(ctx, squad.ID)
	if err != nil {
		return nil, wrapRepoErr("list squad tours", err)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return numberByTour[snapshots[i].TourID] < numberByTour[snapshots[j].TourID]
	})
	return snapshots, nil
}

// GetSquadTour fails with ErrInvariantViolation when storage holds more than
// one snapshot for the pair.
func (s *SquadService) GetSquadTour(ctx context.Context, squadID, tourID string) (fantasy.SquadTour, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquadTour")
	defer span.End()

	squadID = strings.TrimSpace(squadID)
	tourID = strings.TrimSpace(tourID)
	if squadID == "" || tourID == "" {
		return fantasy.SquadTour{}, fmt.Errorf("%w: squad id and tour id are required", ErrInvalidInput)
	}

	snapshot, ok, err := s.squadTours.GetBySquadAndTour(ctx, squadID, tourID)
	if err != nil {
		if errors.Is(err, fantasy.ErrDuplicateSnapshot) {
			s.logger.ErrorContext(ctx, "duplicate squad tour snapshot", "squad_id", squadID, "tour_id", tourID, "error", err)
		}
		return fantasy.SquadTour{}, wrapRepoErr("get squad tour", err)
	}
	if !ok {
		return fantasy.SquadTour{}, fmt.Errorf("%w: squad=%s tour=%s", ErrNotFound, squadID, tourID)
	}
	return snapshot, nil
}
