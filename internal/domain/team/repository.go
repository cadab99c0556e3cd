package team

import "context"

// Repository describes team catalog reads needed by use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
