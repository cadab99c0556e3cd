package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

const (
	boostSquadKindConstraint = "boost_usages_squad_kind_key"
	boostSquadTourConstraint = "boost_usages_squad_tour_key"
)

type BoostRepository struct {
	db queryer
}

func NewBoostRepository(db *sqlx.DB) *BoostRepository {
	return &BoostRepository{db: db}
}

func (r *BoostRepository) ListBySquad(ctx context.Context, squadID string) ([]boost.Usage, error) {
	query, args, err := qb.Select("*").From("boost_usages").
		Where(qb.Eq("squad_public_id", squadID)).
		OrderBy("used_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select boost usages query: %w", err)
	}

	var rows []boostUsageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select boost usages: %w", err)
	}

	out := make([]boost.Usage, 0, len(rows))
	for _, row := range rows {
		out = append(out, boost.Usage{
			ID:      row.PublicID,
			SquadID: row.SquadID,
			TourID:  row.TourID,
			Kind:    boost.Kind(row.Kind),
			UsedAt:  row.UsedAt.UTC(),
		})
	}
	return out, nil
}

func (r *BoostRepository) Create(ctx context.Context, usage boost.Usage) error {
	query, args, err := qb.InsertModel("boost_usages", boostUsageInsertModel{
		PublicID: usage.ID,
		SquadID:  usage.SquadID,
		TourID:   usage.TourID,
		Kind:     string(usage.Kind),
		UsedAt:   usage.UsedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert boost usage query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch constraint, _ := uniqueConstraint(err); constraint {
		case boostSquadKindConstraint:
			return fmt.Errorf("%w: squad=%s kind=%s", boost.ErrKindAlreadyUsed, usage.SquadID, usage.Kind)
		case boostSquadTourConstraint:
			return fmt.Errorf("%w: squad=%s tour=%s", boost.ErrTourAlreadyBoosted, usage.SquadID, usage.TourID)
		}
		return fmt.Errorf("insert boost usage: %w", err)
	}
	return nil
}

func (r *BoostRepository) DeleteBySquadAndTour(ctx context.Context, squadID, tourID string) error {
	query, args, err := qb.DeleteFrom("boost_usages").
		Where(
			qb.Eq("squad_public_id", squadID),
			qb.Eq("tour_public_id", tourID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete boost usage query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete boost usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected deleting boost usage: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: squad=%s tour=%s", boost.ErrUsageNotFound, squadID, tourID)
	}
	return nil
}
