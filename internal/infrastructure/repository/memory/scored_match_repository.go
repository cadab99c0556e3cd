package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
)

type ScoredMatchRepository struct {
	db access
}

func (r *ScoredMatchRepository) GetByMatchID(_ context.Context, matchID string) (scoring.ScoredMatch, bool, error) {
	var (
		out scoring.ScoredMatch
		ok  bool
	)
	r.db.view(func(st *state) {
		out, ok = st.scored[matchID]
	})
	return out, ok, nil
}

func (r *ScoredMatchRepository) Create(_ context.Context, scored scoring.ScoredMatch) error {
	return r.db.update(func(st *state) error {
		if _, exists := st.scored[scored.MatchID]; exists {
			return fmt.Errorf("%w: match=%s", scoring.ErrMatchAlreadyScored, scored.MatchID)
		}
		st.scored[scored.MatchID] = scored
		return nil
	})
}
