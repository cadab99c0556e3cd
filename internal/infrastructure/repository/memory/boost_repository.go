package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
)

type BoostRepository struct {
	db access
}

func (r *BoostRepository) ListBySquad(_ context.Context, squadID string) ([]boost.Usage, error) {
	out := make([]boost.Usage, 0)
	r.db.view(func(st *state) {
		for _, usage := range st.boosts {
			if usage.SquadID == squadID {
				out = append(out, usage)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsedAt.Before(out[j].UsedAt)
	})
	return out, nil
}

func (r *BoostRepository) Create(_ context.Context, usage boost.Usage) error {
	return r.db.update(func(st *state) error {
		for _, existing := range st.boosts {
			if existing.SquadID != usage.SquadID {
				continue
			}
			if existing.Kind == usage.Kind {
				return fmt.Errorf("%w: squad=%s kind=%s", boost.ErrKindAlreadyUsed, usage.SquadID, usage.Kind)
			}
			if existing.TourID == usage.TourID {
				return fmt.Errorf("%w: squad=%s tour=%s", boost.ErrTourAlreadyBoosted, usage.SquadID, usage.TourID)
			}
		}
		st.boosts[usage.ID] = usage
		return nil
	})
}

func (r *BoostRepository) DeleteBySquadAndTour(_ context.Context, squadID, tourID string) error {
	return r.db.update(func(st *state) error {
		for id, usage := range st.boosts {
			if usage.SquadID == squadID && usage.TourID == tourID {
				delete(st.boosts, id)
				return nil
			}
		}
		return fmt.Errorf("%w: squad=%s tour=%s", boost.ErrUsageNotFound, squadID, tourID)
	})
}
