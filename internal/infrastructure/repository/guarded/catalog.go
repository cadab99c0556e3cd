// Package guarded runs catalog reads through a circuit breaker and a per-call
// timeout. Failures come back marked with resilience.ErrUnavailable.
package guarded

import (
	"context"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
)

type LeagueRepository struct {
	next  league.Repository
	guard *resilience.Guard
}

func NewLeagueRepository(next league.Repository, guard *resilience.Guard) *LeagueRepository {
	return &LeagueRepository{next: next, guard: guard}
}

func (r *LeagueRepository) List(ctx context.Context) (items []league.League, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.List(ctx)
		return err
	})
	return items, err
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (item league.League, exists bool, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, leagueID)
		return err
	})
	return item, exists, err
}

type TeamRepository struct {
	next  team.Repository
	guard *resilience.Guard
}

func NewTeamRepository(next team.Repository, guard *resilience.Guard) *TeamRepository {
	return &TeamRepository{next: next, guard: guard}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) (items []team.Team, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.ListByLeague(ctx, leagueID)
		return err
	})
	return items, err
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (item team.Team, exists bool, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, teamID)
		return err
	})
	return item, exists, err
}

type PlayerRepository struct {
	next  player.Repository
	guard *resilience.Guard
}

func NewPlayerRepository(next player.Repository, guard *resilience.Guard) *PlayerRepository {
	return &PlayerRepository{next: next, guard: guard}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) (items []player.Player, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.ListByLeague(ctx, leagueID)
		return err
	})
	return items, err
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) (items []player.Player, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.GetByIDs(ctx, playerIDs)
		return err
	})
	return items, err
}

type MatchRepository struct {
	next  match.Repository
	guard *resilience.Guard
}

func NewMatchRepository(next match.Repository, guard *resilience.Guard) *MatchRepository {
	return &MatchRepository{next: next, guard: guard}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (item match.Match, exists bool, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		item, exists, err = r.next.GetByID(ctx, matchID)
		return err
	})
	return item, exists, err
}

func (r *MatchRepository) ListByTour(ctx context.Context, tourID string) (items []match.Match, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.ListByTour(ctx, tourID)
		return err
	})
	return items, err
}

func (r *MatchRepository) ListStatsByMatch(ctx context.Context, matchID string) (items []match.PlayerStat, err error) {
	err = r.guard.Do(ctx, func(ctx context.Context) error {
		items, err = r.next.ListStatsByMatch(ctx, matchID)
		return err
	})
	return items, err
}
