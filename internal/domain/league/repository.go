package league

import "context"

// Repository describes league catalog reads. The finalization sweep walks List.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
}
