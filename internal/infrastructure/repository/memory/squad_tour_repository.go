package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
)

type SquadTourRepository struct {
	db access
}

func (r *SquadTourRepository) GetByID(_ context.Context, squadTourID string) (fantasy.SquadTour, bool, error) {
	var (
		out fantasy.SquadTour
		ok  bool
	)
	r.db.view(func(st *state) {
		out, ok = st.squadTours[squadTourID]
		out = out.Clone()
	})
	return out, ok, nil
}

// GetByIDForUpdate needs no row lock here: transactions are serialized.
func (r *SquadTourRepository) GetByIDForUpdate(ctx context.Context, squadTourID string) (fantasy.SquadTour, bool, error) {
	return r.GetByID(ctx, squadTourID)
}

func (r *SquadTourRepository) GetBySquadAndTour(_ context.Context, squadID, tourID string) (fantasy.SquadTour, bool, error) {
	var matches []fantasy.SquadTour
	r.db.view(func(st *state) {
		for _, item := range st.squadTours {
			if item.SquadID == squadID && item.TourID == tourID {
				matches = append(matches, item.Clone())
			}
		}
	})

	switch len(matches) {
	case 0:
		return fantasy.SquadTour{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return fantasy.SquadTour{}, false, errors.WithAssertionFailure(
			fmt.Errorf("%w: squad=%s tour=%s count=%d", fantasy.ErrDuplicateSnapshot, squadID, tourID, len(matches)),
		)
	}
}

func (r *SquadTourRepository) GetBySquadAndTourForUpdate(ctx context.Context, squadID, tourID string) (fantasy.SquadTour, bool, error) {
	return r.GetBySquadAndTour(ctx, squadID, tourID)
}

func (r *SquadTourRepository) ListBySquad(_ context.Context, squadID string) ([]fantasy.SquadTour, error) {
	return r.list(func(item fantasy.SquadTour) bool { return item.SquadID == squadID }), nil
}

func (r *SquadTourRepository) ListByTour(_ context.Context, tourID string) ([]fantasy.SquadTour, error) {
	return r.list(func(item fantasy.SquadTour) bool { return item.TourID == tourID }), nil
}

func (r *SquadTourRepository) list(keep func(fantasy.SquadTour) bool) []fantasy.SquadTour {
	out := make([]fantasy.SquadTour, 0)
	r.db.view(func(st *state) {
		for _, item := range st.squadTours {
			if keep(item) {
				out = append(out, item.Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *SquadTourRepository) Create(_ context.Context, snapshot fantasy.SquadTour) error {
	return r.db.update(func(st *state) error {
		if _, exists := st.squadTours[snapshot.ID]; exists {
			return fmt.Errorf("%w: id=%s", fantasy.ErrSnapshotExists, snapshot.ID)
		}
		for _, item := range st.squadTours {
			if item.SquadID == snapshot.SquadID && item.TourID == snapshot.TourID {
				return fmt.Errorf("%w: squad=%s tour=%s", fantasy.ErrSnapshotExists, snapshot.SquadID, snapshot.TourID)
			}
		}
		st.squadTours[snapshot.ID] = snapshot.Clone()
		return nil
	})
}

func (r *SquadTourRepository) Update(_ context.Context, snapshot fantasy.SquadTour) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.squadTours[snapshot.ID]; !ok {
			return fmt.Errorf("squad tour %s not found", snapshot.ID)
		}
		st.squadTours[snapshot.ID] = snapshot.Clone()
		return nil
	})
}

func (r *SquadTourRepository) AddPoints(_ context.Context, squadTourID string, delta int) error {
	return r.db.update(func(st *state) error {
		item, ok := st.squadTours[squadTourID]
		if !ok {
			return fmt.Errorf("squad tour %s not found", squadTourID)
		}
		item.Points += delta
		st.squadTours[squadTourID] = item
		return nil
	})
}

func (r *SquadTourRepository) LockByTour(_ context.Context, tourID string) (int, error) {
	locked := 0
	err := r.db.update(func(st *state) error {
		for id, item := range st.squadTours {
			if item.TourID != tourID || item.Finalized {
				continue
			}
			item.Finalized = true
			st.squadTours[id] = item
			locked++
		}
		return nil
	})
	return locked, err
}
