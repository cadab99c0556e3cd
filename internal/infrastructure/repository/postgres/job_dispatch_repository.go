package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

// UpsertEvent keeps one row per (dispatch, league); a later status for the
// same league overwrites the earlier one.
func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}

	jobName := strings.TrimSpace(event.JobName)
	if jobName == "" {
		jobName = "unknown"
	}
	leagueID := strings.TrimSpace(event.LeagueID)
	if leagueID == "" {
		leagueID = "unknown"
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	query, args, err := qb.InsertModel("job_dispatches", jobDispatchInsertModel{
		DispatchID:   dispatchID,
		JobName:      jobName,
		LeagueID:     leagueID,
		TourID:       optionalString(event.TourID),
		Status:       string(event.Status),
		Payload:      payloadJSON,
		ErrorMessage: optionalString(event.ErrorMessage),
		OccurredAt:   occurredAt,
		TraceID:      optionalString(event.TraceID),
		SpanID:       optionalString(event.SpanID),
	}, `ON CONFLICT (dispatch_id, league_public_id)
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    tour_public_id = COALESCE(EXCLUDED.tour_public_id, job_dispatches.tour_public_id),
    status = EXCLUDED.status,
    payload = EXCLUDED.payload,
    error_message = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.error_message
        ELSE NULL
    END,
    occurred_at = EXCLUDED.occurred_at,
    trace_id = EXCLUDED.trace_id,
    span_id = EXCLUDED.span_id`)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", dispatchID, event.Status, err)
	}
	return nil
}

func (r *JobDispatchRepository) ListRecent(ctx context.Context, jobName string, limit int) ([]jobscheduler.DispatchEvent, error) {
	builder := qb.Select("*").From("job_dispatches")
	if jobName = strings.TrimSpace(jobName); jobName != "" {
		builder = builder.Where(qb.Eq("job_name", jobName))
	}
	query, args, err := builder.
		OrderBy("occurred_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select job dispatches query: %w", err)
	}

	var rows []jobDispatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select job dispatches: %w", err)
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(rows))
	for _, row := range rows {
		payload := map[string]any{}
		if row.Payload != "" {
			if err := sonic.UnmarshalString(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode job dispatch payload dispatch_id=%s: %w", row.DispatchID, err)
			}
		}
		out = append(out, jobscheduler.DispatchEvent{
			DispatchID:   row.DispatchID,
			JobName:      row.JobName,
			LeagueID:     row.LeagueID,
			TourID:       row.TourID.String,
			Status:       jobscheduler.DispatchStatus(row.Status),
			Payload:      payload,
			ErrorMessage: row.ErrorMessage.String,
			OccurredAt:   row.OccurredAt.UTC(),
			TraceID:      row.TraceID.String,
			SpanID:       row.SpanID.String,
		})
	}
	return out, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	return sonic.MarshalString(payload)
}
