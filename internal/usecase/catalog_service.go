package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

// CatalogService serves the read-only browse endpoints: leagues, their clubs,
// their player pool and their tour calendar.
type CatalogService struct {
	catalog Catalog
	tours   tour.Repository
	now     func() time.Time
}

func NewCatalogService(catalog Catalog, tours tour.Repository) *CatalogService {
	return &CatalogService{catalog: catalog, tours: tours, now: time.Now}
}

func (s *CatalogService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.catalog.Leagues.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list leagues", err)
	}
	return leagues, nil
}

func (s *CatalogService) ListTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	leagueID, err := s.league(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	teams, err := s.catalog.Teams.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, wrapRepoErr("list teams by league", err)
	}
	return teams, nil
}

func (s *CatalogService) ListPlayers(ctx context.Context, leagueID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	leagueID, err := s.league(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	players, err := s.catalog.Players.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, wrapRepoErr("list players by league", err)
	}
	return players, nil
}

// GetPlayer reports a player listed under another league as not found.
func (s *CatalogService) GetPlayer(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	leagueID, playerID = strings.TrimSpace(leagueID), strings.TrimSpace(playerID)
	if leagueID == "" || playerID == "" {
		return player.Player{}, fmt.Errorf("%w: league id and player id are required", ErrInvalidInput)
	}

	found, err := s.catalog.Players.GetByIDs(ctx, []string{playerID})
	if err != nil {
		return player.Player{}, wrapRepoErr("get player by id", err)
	}
	for _, p := range found {
		if p.ID == playerID && p.LeagueID == leagueID {
			return p, nil
		}
	}
	return player.Player{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, playerID, leagueID)
}

// ListTours returns the league calendar in tour number order, each with its
// status derived from the fixtures at call time.
func (s *CatalogService) ListTours(ctx context.Context, leagueID string) ([]TourState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTours")
	defer span.End()

	leagueID, err := s.league(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	tours, err := s.tours.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, wrapRepoErr("list tours by league", err)
	}

	now := s.now().UTC()
	out := make([]TourState, 0, len(tours))
	for _, t := range tour.SortByNumber(tours) {
		state, err := resolveTourState(ctx, s.catalog.Matches, t, now)
		if err != nil {
			return nil, err
		}
		out = append(out, state)
	}
	return out, nil
}

// league trims leagueID and checks it exists.
func (s *CatalogService) league(ctx context.Context, leagueID string) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, exists, err := s.catalog.Leagues.GetByID(ctx, leagueID); err != nil {
		return "", wrapRepoErr("get league", err)
	} else if !exists {
		return "", fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return leagueID, nil
}
