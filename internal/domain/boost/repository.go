package boost

import "context"

// Repository stores boost usage records. Create must fail with
// ErrKindAlreadyUsed or ErrTourAlreadyBoosted when a uniqueness rule is hit.
type Repository interface {
	ListBySquad(ctx context.Context, squadID string) ([]Usage, error)
	Create(ctx context.Context, usage Usage) error
	DeleteBySquadAndTour(ctx context.Context, squadID, tourID string) error
}
