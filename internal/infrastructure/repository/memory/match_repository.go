package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	stats   map[string][]match.PlayerStat
}

func NewMatchRepository(matches []match.Match, stats []match.PlayerStat) *MatchRepository {
	r := &MatchRepository{
		matches: make(map[string]match.Match, len(matches)),
		stats:   make(map[string][]match.PlayerStat),
	}
	for _, m := range matches {
		r.matches[m.ID] = cloneMatch(m)
	}
	for _, s := range stats {
		r.stats[s.MatchID] = append(r.stats[s.MatchID], s)
	}
	return r
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListByTour(_ context.Context, tourID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.TourID == tourID {
			out = append(out, cloneMatch(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})
	return out, nil
}

func (r *MatchRepository) ListStatsByMatch(_ context.Context, matchID string) ([]match.PlayerStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.stats[matchID]
	out := make([]match.PlayerStat, 0, len(rows))
	out = append(out, rows...)
	return out, nil
}

// RecordResult marks a match finished and replaces its stat rows. Feeds
// provide the data; the engine only reads it. FinishedAt keeps the first
// recorded time.
func (r *MatchRepository) RecordResult(_ context.Context, matchID string, finishedAt time.Time, stats []match.PlayerStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	if m.FinishedAt == nil {
		at := finishedAt
		m.FinishedAt = &at
	}
	m.Finished = true
	r.matches[matchID] = m

	rows := make([]match.PlayerStat, 0, len(stats))
	for _, s := range stats {
		s.MatchID = matchID
		rows = append(rows, s)
	}
	r.stats[matchID] = rows
	return nil
}

func cloneMatch(m match.Match) match.Match {
	out := m
	if m.FinishedAt != nil {
		at := *m.FinishedAt
		out.FinishedAt = &at
	}
	return out
}
