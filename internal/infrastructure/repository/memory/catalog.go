package memory

import (
	"context"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
)

// catalog is an immutable index built once at startup, so reads need no lock.
// Lists come back as copies in insertion order.
type catalog[T any] struct {
	byID    map[string]T
	byGroup map[string][]T
	all     []T
}

func newCatalog[T any](items []T, id, group func(T) string) catalog[T] {
	c := catalog[T]{
		byID:    make(map[string]T, len(items)),
		byGroup: make(map[string][]T),
		all:     append([]T(nil), items...),
	}
	for _, item := range items {
		c.byID[id(item)] = item
		if group != nil {
			key := group(item)
			c.byGroup[key] = append(c.byGroup[key], item)
		}
	}
	return c
}

func (c catalog[T]) get(id string) (T, bool) {
	item, ok := c.byID[id]
	return item, ok
}

func (c catalog[T]) group(key string) []T {
	return append(make([]T, 0, len(c.byGroup[key])), c.byGroup[key]...)
}

type LeagueRepository struct {
	leagues catalog[league.League]
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	return &LeagueRepository{leagues: newCatalog(leagues, func(l league.League) string { return l.ID }, nil)}
}

func (r *LeagueRepository) List(context.Context) ([]league.League, error) {
	return append(make([]league.League, 0, len(r.leagues.all)), r.leagues.all...), nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	l, ok := r.leagues.get(leagueID)
	return l, ok, nil
}

type TeamRepository struct {
	teams catalog[team.Team]
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	return &TeamRepository{teams: newCatalog(teams,
		func(t team.Team) string { return t.ID },
		func(t team.Team) string { return t.LeagueID })}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	return r.teams.group(leagueID), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	t, ok := r.teams.get(teamID)
	return t, ok, nil
}

type PlayerRepository struct {
	players catalog[player.Player]
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	return &PlayerRepository{players: newCatalog(players,
		func(p player.Player) string { return p.ID },
		func(p player.Player) string { return p.LeagueID })}
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	return r.players.group(leagueID), nil
}

// GetByIDs skips unknown and repeated ids.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.players.get(id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}
