package tour

import (
	"context"
	"time"
)

// Repository persists tour lifecycle flags. Mark* calls are idempotent.
type Repository interface {
	GetByID(ctx context.Context, tourID string) (Tour, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Tour, error)
	MarkStarted(ctx context.Context, tourID string, at time.Time) error
	MarkFinalized(ctx context.Context, tourID string, at time.Time) error
}
