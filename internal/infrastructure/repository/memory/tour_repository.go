package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

type TourRepository struct {
	db access
}

func (r *TourRepository) GetByID(_ context.Context, tourID string) (tour.Tour, bool, error) {
	var (
		out tour.Tour
		ok  bool
	)
	r.db.view(func(st *state) {
		out, ok = st.tours[tourID]
		out = cloneTour(out)
	})
	return out, ok, nil
}

func (r *TourRepository) ListByLeague(_ context.Context, leagueID string) ([]tour.Tour, error) {
	out := make([]tour.Tour, 0)
	r.db.view(func(st *state) {
		for _, t := range st.tours {
			if t.LeagueID == leagueID {
				out = append(out, cloneTour(t))
			}
		}
	})
	return tour.SortByNumber(out), nil
}

func (r *TourRepository) MarkStarted(_ context.Context, tourID string, at time.Time) error {
	return r.db.update(func(st *state) error {
		t, ok := st.tours[tourID]
		if !ok {
			return fmt.Errorf("tour %s not found", tourID)
		}
		if t.Started {
			return nil
		}
		started := at
		t.Started = true
		t.StartedAt = &started
		st.tours[tourID] = t
		return nil
	})
}

func (r *TourRepository) MarkFinalized(_ context.Context, tourID string, at time.Time) error {
	return r.db.update(func(st *state) error {
		t, ok := st.tours[tourID]
		if !ok {
			return fmt.Errorf("tour %s not found", tourID)
		}
		if t.Finalized {
			return nil
		}
		finalized := at
		t.Finalized = true
		t.FinalizedAt = &finalized
		st.tours[tourID] = t
		return nil
	})
}

func cloneTour(t tour.Tour) tour.Tour {
	out := t
	if t.StartedAt != nil {
		at := *t.StartedAt
		out.StartedAt = &at
	}
	if t.FinalizedAt != nil {
		at := *t.FinalizedAt
		out.FinalizedAt = &at
	}
	return out
}
