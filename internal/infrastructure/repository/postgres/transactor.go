package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
)

// Transactor binds the write-side repositories to one *sqlx.Tx.
type Transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repos := uow.Repositories{
		Squads:        &SquadRepository{db: tx},
		SquadTours:    &SquadTourRepository{db: tx},
		Boosts:        &BoostRepository{db: tx},
		ScoredMatches: &ScoredMatchRepository{db: tx},
		Tours:         &TourRepository{db: tx},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
