package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

// Catalog groups the reference data services read but never write.
type Catalog struct {
	Leagues league.Repository
	Teams   team.Repository
	Players player.Repository
	Matches match.Repository
}

func trimIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strings.TrimSpace(id)
	}
	return out
}

// playerIndex caches catalog players by id for the duration of one call.
type playerIndex map[string]player.Player

// load fetches every id not yet indexed.
func (idx playerIndex) load(ctx context.Context, repo player.Repository, ids []string) error {
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := idx[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	players, err := repo.GetByIDs(ctx, missing)
	if err != nil {
		return wrapRepoErr("get players by ids", err)
	}
	for _, p := range players {
		idx[p.ID] = p
	}
	return nil
}

func (idx playerIndex) picks(ids []string) ([]fantasy.Pick, error) {
	out := make([]fantasy.Pick, 0, len(ids))
	for _, id := range ids {
		p, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, id)
		}
		out = append(out, fantasy.PickFromPlayer(p))
	}
	return out, nil
}

// cost prices a stored roster. A stored player missing from the catalog
// means the snapshot references data that no longer exists.
func (idx playerIndex) cost(ids []string) (int64, error) {
	var total int64
	for _, id := range ids {
		p, ok := idx[id]
		if !ok {
			return 0, fmt.Errorf("%w: stored player %s missing from catalog", ErrInvariantViolation, id)
		}
		total += p.Price
	}
	return total, nil
}

// resolvePicks turns a proposed lineup into priced picks.
func resolvePicks(ctx context.Context, repo player.Repository, idx playerIndex, mainIDs, benchIDs []string) ([]fantasy.Pick, []fantasy.Pick, error) {
	all := make([]string, 0, len(mainIDs)+len(benchIDs))
	all = append(all, mainIDs...)
	all = append(all, benchIDs...)
	if err := idx.load(ctx, repo, all); err != nil {
		return nil, nil, err
	}

	mainPicks, err := idx.picks(mainIDs)
	if err != nil {
		return nil, nil, err
	}
	benchPicks, err := idx.picks(benchIDs)
	if err != nil {
		return nil, nil, err
	}
	return mainPicks, benchPicks, nil
}

// TourState is a tour together with its derived lifecycle status.
type TourState struct {
	Tour    tour.Tour
	Status  tour.Status
	Summary match.Summary
}

func resolveTourState(ctx context.Context, matches match.Repository, t tour.Tour, now time.Time) (TourState, error) {
	fixtures, err := matches.ListByTour(ctx, t.ID)
	if err != nil {
		return TourState{}, wrapRepoErr("list matches by tour", err)
	}
	summary := match.Summarize(fixtures)
	return TourState{
		Tour:    t,
		Status:  tour.Resolve(t, summary, now),
		Summary: summary,
	}, nil
}

func getTour(ctx context.Context, tours tour.Repository, tourID string) (tour.Tour, error) {
	t, ok, err := tours.GetByID(ctx, tourID)
	if err != nil {
		return tour.Tour{}, wrapRepoErr("get tour", err)
	}
	if !ok {
		return tour.Tour{}, fmt.Errorf("%w: tour=%s", ErrNotFound, tourID)
	}
	return t, nil
}

func getOwnedSquad(ctx context.Context, squads fantasy.SquadRepository, userID, squadID string) (fantasy.Squad, error) {
	squad, ok, err := squads.GetByID(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, wrapRepoErr("get squad", err)
	}
	if !ok {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	if squad.UserID != userID {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s is owned by another user", ErrForbidden, squadID)
	}
	return squad, nil
}

func conflict(err error) error {
	return fmt.Errorf("%w: %w", ErrConflict, err)
}
