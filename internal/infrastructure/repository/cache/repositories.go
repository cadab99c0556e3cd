package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-tour/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (lookup[league.League], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return lookup[league.League]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:league:"+leagueID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

// PlayerRepository caches league lists only. GetByIDs feeds budget math and
// always reads through so a price change is seen by the next transfer.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, "player:league:"+leagueID, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, playerIDs)
}

type lookup[T any] struct {
	value  T
	exists bool
}
