package postgres

import (
	"database/sql"
	"time"
)

type jobDispatchInsertModel struct {
	DispatchID   string         `db:"dispatch_id"`
	JobName      string         `db:"job_name"`
	LeagueID     string         `db:"league_public_id"`
	TourID       sql.NullString `db:"tour_public_id"`
	Status       string         `db:"status"`
	Payload      string         `db:"payload"`
	ErrorMessage sql.NullString `db:"error_message"`
	OccurredAt   time.Time      `db:"occurred_at"`
	TraceID      sql.NullString `db:"trace_id"`
	SpanID       sql.NullString `db:"span_id"`
}

type jobDispatchTableModel struct {
	ID int64 `db:"id"`
	jobDispatchInsertModel
}
