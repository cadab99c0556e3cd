package fantasy

import "context"

// SquadRepository persists squad identity.
type SquadRepository interface {
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	GetByUserAndLeague(ctx context.Context, userID, leagueID string) (Squad, bool, error)
	// Create fails with ErrSquadExists when the user already has a squad in the league.
	Create(ctx context.Context, squad Squad) error
	UpdateName(ctx context.Context, squadID, name string) error
}

// SquadTourRepository persists per-tour snapshots. Lookups by (squad, tour)
// return ErrDuplicateSnapshot when more than one row is found.
type SquadTourRepository interface {
	GetByID(ctx context.Context, squadTourID string) (SquadTour, bool, error)
	// GetByIDForUpdate locks the snapshot until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, squadTourID string) (SquadTour, bool, error)
	GetBySquadAndTour(ctx context.Context, squadID, tourID string) (SquadTour, bool, error)
	GetBySquadAndTourForUpdate(ctx context.Context, squadID, tourID string) (SquadTour, bool, error)
	ListBySquad(ctx context.Context, squadID string) ([]SquadTour, error)
	ListByTour(ctx context.Context, tourID string) ([]SquadTour, error)
	// Create fails with ErrSnapshotExists when (squad, tour) is already taken.
	Create(ctx context.Context, snapshot SquadTour) error
	Update(ctx context.Context, snapshot SquadTour) error
	AddPoints(ctx context.Context, squadTourID string, delta int) error
	LockByTour(ctx context.Context, tourID string) (int, error)
}
