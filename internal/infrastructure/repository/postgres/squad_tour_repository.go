package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

const squadTourTable = "fantasy_squad_tours"

type SquadTourRepository struct {
	db queryer
}

func NewSquadTourRepository(db *sqlx.DB) *SquadTourRepository {
	return &SquadTourRepository{db: db}
}

func (r *SquadTourRepository) GetByID(ctx context.Context, squadTourID string) (fantasy.SquadTour, bool, error) {
	return r.getByID(ctx, squadTourID, false)
}

func (r *SquadTourRepository) GetByIDForUpdate(ctx context.Context, squadTourID string) (fantasy.SquadTour, bool, error) {
	return r.getByID(ctx, squadTourID, true)
}

func (r *SquadTourRepository) getByID(ctx context.Context, squadTourID string, lock bool) (fantasy.SquadTour, bool, error) {
	builder := qb.Select("*").From(squadTourTable).Where(qb.Eq("public_id", squadTourID))
	if lock {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fantasy.SquadTour{}, false, fmt.Errorf("build get squad tour by id query: %w", err)
	}

	var row squadTourTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.SquadTour{}, false, nil
		}
		return fantasy.SquadTour{}, false, fmt.Errorf("get squad tour by id: %w", err)
	}
	return squadTourFromRow(row), true, nil
}

func (r *SquadTourRepository) GetBySquadAndTour(ctx context.Context, squadID, tourID string) (fantasy.SquadTour, bool, error) {
	return r.getBySquadAndTour(ctx, squadID, tourID, false)
}

func (r *SquadTourRepository) GetBySquadAndTourForUpdate(ctx context.Context, squadID, tourID string) (fantasy.SquadTour, bool, error) {
	return r.getBySquadAndTour(ctx, squadID, tourID, true)
}

// getBySquadAndTour fetches up to two rows so a broken unique index shows up
// as an assertion failure instead of an arbitrary pick.
func (r *SquadTourRepository) getBySquadAndTour(ctx context.Context, squadID, tourID string, lock bool) (fantasy.SquadTour, bool, error) {
	builder := qb.Select("*").From(squadTourTable).
		Where(
			qb.Eq("squad_public_id", squadID),
			qb.Eq("tour_public_id", tourID),
		).
		OrderBy("id").
		Limit(2)
	if lock {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fantasy.SquadTour{}, false, fmt.Errorf("build get squad tour by squad and tour query: %w", err)
	}

	var rows []squadTourTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fantasy.SquadTour{}, false, fmt.Errorf("get squad tour by squad and tour: %w", err)
	}

	switch len(rows) {
	case 0:
		return fantasy.SquadTour{}, false, nil
	case 1:
		return squadTourFromRow(rows[0]), true, nil
	default:
		return fantasy.SquadTour{}, false, crerr.WithAssertionFailure(
			fmt.Errorf("%w: squad=%s tour=%s", fantasy.ErrDuplicateSnapshot, squadID, tourID),
		)
	}
}

func (r *SquadTourRepository) ListBySquad(ctx context.Context, squadID string) ([]fantasy.SquadTour, error) {
	return r.list(ctx, "squad", qb.Eq("squad_public_id", squadID))
}

func (r *SquadTourRepository) ListByTour(ctx context.Context, tourID string) ([]fantasy.SquadTour, error) {
	return r.list(ctx, "tour", qb.Eq("tour_public_id", tourID))
}

func (r *SquadTourRepository) list(ctx context.Context, by string, where qb.Condition) ([]fantasy.SquadTour, error) {
	query, args, err := qb.Select("*").From(squadTourTable).
		Where(where).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squad tours by %s query: %w", by, err)
	}

	var rows []squadTourTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squad tours by %s: %w", by, err)
	}

	out := make([]fantasy.SquadTour, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadTourFromRow(row))
	}
	return out, nil
}

// Create inserts without raising on conflict: a failed statement would abort
// the surrounding transaction, and callers treat ErrSnapshotExists as a skip.
func (r *SquadTourRepository) Create(ctx context.Context, snapshot fantasy.SquadTour) error {
	query, args, err := qb.InsertModel(squadTourTable, squadTourInsertModel{
		PublicID:            snapshot.ID,
		SquadID:             snapshot.SquadID,
		TourID:              snapshot.TourID,
		Budget:              snapshot.Budget,
		FreeReplacements:    snapshot.FreeReplacements,
		GrantedReplacements: snapshot.GrantedReplacements,
		Points:              snapshot.Points,
		PenaltyPoints:       snapshot.PenaltyPoints,
		CaptainID:           snapshot.CaptainID,
		ViceCaptainID:       snapshot.ViceCaptainID,
		ActiveBoost:         string(snapshot.ActiveBoost),
		Finalized:           snapshot.Finalized,
		MainLineup:          pq.StringArray(snapshot.MainLineup),
		Bench:               pq.StringArray(snapshot.Bench),
		CreatedAt:           snapshot.CreatedAt.UTC(),
		UpdatedAt:           snapshot.UpdatedAt.UTC(),
	}, "ON CONFLICT DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert squad tour query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert squad tour: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected inserting squad tour: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: squad=%s tour=%s", fantasy.ErrSnapshotExists, snapshot.SquadID, snapshot.TourID)
	}
	return nil
}

func (r *SquadTourRepository) Update(ctx context.Context, snapshot fantasy.SquadTour) error {
	updatedAt := snapshot.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := qb.Update(squadTourTable).
		Set("budget", snapshot.Budget).
		Set("free_replacements", snapshot.FreeReplacements).
		Set("granted_replacements", snapshot.GrantedReplacements).
		Set("points", snapshot.Points).
		Set("penalty_points", snapshot.PenaltyPoints).
		Set("captain_player_id", snapshot.CaptainID).
		Set("vice_captain_player_id", snapshot.ViceCaptainID).
		Set("active_boost", string(snapshot.ActiveBoost)).
		Set("finalized", snapshot.Finalized).
		Set("main_lineup", pq.StringArray(snapshot.MainLineup)).
		Set("bench", pq.StringArray(snapshot.Bench)).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", snapshot.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update squad tour query: %w", err)
	}
	return r.execOne(ctx, snapshot.ID, "update", query, args)
}

func (r *SquadTourRepository) AddPoints(ctx context.Context, squadTourID string, delta int) error {
	query, args, err := qb.Update(squadTourTable).
		SetExpr("points", "points + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", squadTourID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add squad tour points query: %w", err)
	}
	return r.execOne(ctx, squadTourID, "add points to", query, args)
}

func (r *SquadTourRepository) LockByTour(ctx context.Context, tourID string) (int, error) {
	query, args, err := qb.Update(squadTourTable).
		Set("finalized", true).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("tour_public_id", tourID),
			qb.Eq("finalized", false),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build lock squad tours query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("lock squad tours tour=%s: %w", tourID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected locking squad tours tour=%s: %w", tourID, err)
	}
	return int(affected), nil
}

func (r *SquadTourRepository) execOne(ctx context.Context, squadTourID, op, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s squad tour %s: %w", op, squadTourID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %s squad tour %s: %w", op, squadTourID, err)
	}
	if affected == 0 {
		return fmt.Errorf("squad tour %s not found", squadTourID)
	}
	return nil
}

func squadTourFromRow(row squadTourTableModel) fantasy.SquadTour {
	return fantasy.SquadTour{
		ID:                  row.PublicID,
		SquadID:             row.SquadID,
		TourID:              row.TourID,
		Budget:              row.Budget,
		FreeReplacements:    row.FreeReplacements,
		GrantedReplacements: row.GrantedReplacements,
		Points:              row.Points,
		PenaltyPoints:       row.PenaltyPoints,
		CaptainID:           row.CaptainID,
		ViceCaptainID:       row.ViceCaptainID,
		ActiveBoost:         boost.Kind(row.ActiveBoost),
		Finalized:           row.Finalized,
		MainLineup:          []string(row.MainLineup),
		Bench:               []string(row.Bench),
		CreatedAt:           row.CreatedAt.UTC(),
		UpdatedAt:           row.UpdatedAt.UTC(),
	}
}
