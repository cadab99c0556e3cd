package postgres

import "time"

type scoredMatchTableModel struct {
	MatchID          string    `db:"match_public_id"`
	TourID           string    `db:"tour_public_id"`
	UpdatedSnapshots int       `db:"updated_snapshots"`
	PointsAdded      int       `db:"points_added"`
	ScoredAt         time.Time `db:"scored_at"`
}
