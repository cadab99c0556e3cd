package postgres

import "time"

type boostUsageTableModel struct {
	ID       int64     `db:"id"`
	PublicID string    `db:"public_id"`
	SquadID  string    `db:"squad_public_id"`
	TourID   string    `db:"tour_public_id"`
	Kind     string    `db:"kind"`
	UsedAt   time.Time `db:"used_at"`
}

type boostUsageInsertModel struct {
	PublicID string    `db:"public_id"`
	SquadID  string    `db:"squad_public_id"`
	TourID   string    `db:"tour_public_id"`
	Kind     string    `db:"kind"`
	UsedAt   time.Time `db:"used_at"`
}
