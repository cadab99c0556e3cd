package jobscheduler

import "time"

const JobFinalizationSweep = "finalization_sweep"

type DispatchStatus string

const (
	StatusStarted   DispatchStatus = "started"
	StatusCompleted DispatchStatus = "completed"
	StatusSkipped   DispatchStatus = "skipped"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is one league outcome of a scheduled job run.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	LeagueID     string
	TourID       string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
