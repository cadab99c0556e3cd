package match

import "context"

// Repository exposes match and statistics reads from the catalog.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByTour(ctx context.Context, tourID string) ([]Match, error)
	ListStatsByMatch(ctx context.Context, matchID string) ([]PlayerStat, error)
}
