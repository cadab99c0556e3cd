package postgres

import (
	"database/sql"
	"time"
)

type tourTableModel struct {
	ID          int64        `db:"id"`
	PublicID    string       `db:"public_id"`
	LeagueID    string       `db:"league_public_id"`
	TourNumber  int          `db:"tour_number"`
	DeadlineAt  time.Time    `db:"deadline_at"`
	Started     bool         `db:"started"`
	StartedAt   sql.NullTime `db:"started_at"`
	Finalized   bool         `db:"finalized"`
	FinalizedAt sql.NullTime `db:"finalized_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
