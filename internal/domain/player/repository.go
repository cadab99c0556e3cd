package player

import "context"

// Repository describes player catalog reads needed by use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	// GetByIDs returns the players that exist, in no particular order. League
	// membership is not filtered so callers can report wrong-league picks.
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
