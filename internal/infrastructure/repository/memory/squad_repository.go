package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
)

type SquadRepository struct {
	db access
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (fantasy.Squad, bool, error) {
	var (
		out fantasy.Squad
		ok  bool
	)
	r.db.view(func(st *state) {
		out, ok = st.squads[squadID]
	})
	return out, ok, nil
}

func (r *SquadRepository) GetByUserAndLeague(_ context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	var (
		out fantasy.Squad
		ok  bool
	)
	r.db.view(func(st *state) {
		for _, squad := range st.squads {
			if squad.UserID == userID && squad.LeagueID == leagueID {
				out, ok = squad, true
				return
			}
		}
	})
	return out, ok, nil
}

func (r *SquadRepository) Create(_ context.Context, squad fantasy.Squad) error {
	return r.db.update(func(st *state) error {
		if _, exists := st.squads[squad.ID]; exists {
			return fmt.Errorf("%w: id=%s", fantasy.ErrSquadExists, squad.ID)
		}
		for _, existing := range st.squads {
			if existing.UserID == squad.UserID && existing.LeagueID == squad.LeagueID {
				return fmt.Errorf("%w: user=%s league=%s", fantasy.ErrSquadExists, squad.UserID, squad.LeagueID)
			}
		}
		st.squads[squad.ID] = squad
		return nil
	})
}

func (r *SquadRepository) UpdateName(_ context.Context, squadID, name string) error {
	return r.db.update(func(st *state) error {
		squad, ok := st.squads[squadID]
		if !ok {
			return fmt.Errorf("squad %s not found", squadID)
		}
		squad.Name = name
		st.squads[squadID] = squad
		return nil
	})
}
