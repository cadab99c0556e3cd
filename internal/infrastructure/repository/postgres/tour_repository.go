package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

type TourRepository struct {
	db queryer
}

func NewTourRepository(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) GetByID(ctx context.Context, tourID string) (tour.Tour, bool, error) {
	query, args, err := qb.Select("*").From("tours").
		Where(qb.Eq("public_id", tourID)).
		ToSQL()
	if err != nil {
		return tour.Tour{}, false, fmt.Errorf("build get tour by id query: %w", err)
	}

	var row tourTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tour.Tour{}, false, nil
		}
		return tour.Tour{}, false, fmt.Errorf("get tour by id: %w", err)
	}
	return tourFromRow(row), true, nil
}

func (r *TourRepository) ListByLeague(ctx context.Context, leagueID string) ([]tour.Tour, error) {
	query, args, err := qb.Select("*").From("tours").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("tour_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tours by league query: %w", err)
	}

	var rows []tourTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tours by league: %w", err)
	}

	out := make([]tour.Tour, 0, len(rows))
	for _, row := range rows {
		out = append(out, tourFromRow(row))
	}
	return out, nil
}

func (r *TourRepository) MarkStarted(ctx context.Context, tourID string, at time.Time) error {
	query, args, err := qb.Update("tours").
		Set("started", true).
		Set("started_at", at.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", tourID),
			qb.Eq("started", false),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark tour started query: %w", err)
	}
	return r.mark(ctx, tourID, "started", query, args)
}

func (r *TourRepository) MarkFinalized(ctx context.Context, tourID string, at time.Time) error {
	query, args, err := qb.Update("tours").
		Set("finalized", true).
		Set("finalized_at", at.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", tourID),
			qb.Eq("finalized", false),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark tour finalized query: %w", err)
	}
	return r.mark(ctx, tourID, "finalized", query, args)
}

// mark treats zero affected rows as already flagged, unless the tour is gone.
func (r *TourRepository) mark(ctx context.Context, tourID, flag, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark tour %s %s: %w", tourID, flag, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected marking tour %s %s: %w", tourID, flag, err)
	}
	if affected > 0 {
		return nil
	}

	if _, ok, err := r.GetByID(ctx, tourID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("tour %s not found", tourID)
	}
	return nil
}

func tourFromRow(row tourTableModel) tour.Tour {
	return tour.Tour{
		ID:          row.PublicID,
		LeagueID:    row.LeagueID,
		Number:      row.TourNumber,
		DeadlineAt:  row.DeadlineAt.UTC(),
		Started:     row.Started,
		Finalized:   row.Finalized,
		StartedAt:   timePtr(row.StartedAt),
		FinalizedAt: timePtr(row.FinalizedAt),
	}
}
