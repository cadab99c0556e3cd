package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
)

// state is everything a unit of work may change.
type state struct {
	squads     map[string]fantasy.Squad
	squadTours map[string]fantasy.SquadTour
	boosts     map[string]boost.Usage
	scored     map[string]scoring.ScoredMatch
	tours      map[string]tour.Tour
}

func newState() *state {
	return &state{
		squads:     make(map[string]fantasy.Squad),
		squadTours: make(map[string]fantasy.SquadTour),
		boosts:     make(map[string]boost.Usage),
		scored:     make(map[string]scoring.ScoredMatch),
		tours:      make(map[string]tour.Tour),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.squads {
		out.squads[k] = v
	}
	for k, v := range s.squadTours {
		out.squadTours[k] = v.Clone()
	}
	for k, v := range s.boosts {
		out.boosts[k] = v
	}
	for k, v := range s.scored {
		out.scored[k] = v
	}
	for k, v := range s.tours {
		out.tours[k] = cloneTour(v)
	}
	return out
}

// access abstracts committed state from a transaction's private copy.
type access interface {
	view(fn func(st *state))
	update(fn func(st *state) error) error
}

// Store is the in-memory persistence for squads, snapshots, boosts, the
// scored-match ledger and tour flags. Transactions run one at a time on a
// private copy that replaces the committed state on success.
type Store struct {
	txMu    sync.Mutex
	mu      sync.RWMutex
	current *state
}

func NewStore(tours []tour.Tour) *Store {
	st := newState()
	for _, t := range tours {
		st.tours[t.ID] = cloneTour(t)
	}
	return &Store{current: st}
}

func (s *Store) view(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.current)
}

func (s *Store) update(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.current)
}

func (s *Store) Squads() *SquadRepository {
	return &SquadRepository{db: s}
}

func (s *Store) SquadTours() *SquadTourRepository {
	return &SquadTourRepository{db: s}
}

func (s *Store) Boosts() *BoostRepository {
	return &BoostRepository{db: s}
}

func (s *Store) ScoredMatches() *ScoredMatchRepository {
	return &ScoredMatchRepository{db: s}
}

func (s *Store) Tours() *TourRepository {
	return &TourRepository{db: s}
}

// WithinTx must not be re-entered from fn, and fn must only use the
// repositories it is handed.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := &txState{st: s.current.clone()}
	s.mu.RUnlock()

	repos := uow.Repositories{
		Squads:        &SquadRepository{db: work},
		SquadTours:    &SquadTourRepository{db: work},
		Boosts:        &BoostRepository{db: work},
		ScoredMatches: &ScoredMatchRepository{db: work},
		Tours:         &TourRepository{db: work},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = work.st
	s.mu.Unlock()
	return nil
}

type txState struct {
	st *state
}

func (t *txState) view(fn func(st *state)) {
	fn(t.st)
}

func (t *txState) update(fn func(st *state) error) error {
	return fn(t.st)
}
