package scoring

import "context"

// Repository is the scored-match ledger. Create fails with
// ErrMatchAlreadyScored for a match that already has a row.
type Repository interface {
	GetByMatchID(ctx context.Context, matchID string) (ScoredMatch, bool, error)
	Create(ctx context.Context, scored ScoredMatch) error
}
