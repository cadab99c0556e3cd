package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

// ScoredMatchRepository is the once-per-match scoring ledger.
type ScoredMatchRepository struct {
	db queryer
}

func NewScoredMatchRepository(db *sqlx.DB) *ScoredMatchRepository {
	return &ScoredMatchRepository{db: db}
}

func (r *ScoredMatchRepository) GetByMatchID(ctx context.Context, matchID string) (scoring.ScoredMatch, bool, error) {
	query, args, err := qb.Select("*").From("scored_matches").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return scoring.ScoredMatch{}, false, fmt.Errorf("build get scored match query: %w", err)
	}

	var row scoredMatchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.ScoredMatch{}, false, nil
		}
		return scoring.ScoredMatch{}, false, fmt.Errorf("get scored match: %w", err)
	}

	return scoring.ScoredMatch{
		MatchID:          row.MatchID,
		TourID:           row.TourID,
		UpdatedSnapshots: row.UpdatedSnapshots,
		PointsAdded:      row.PointsAdded,
		ScoredAt:         row.ScoredAt.UTC(),
	}, true, nil
}

func (r *ScoredMatchRepository) Create(ctx context.Context, scored scoring.ScoredMatch) error {
	query, args, err := qb.InsertModel("scored_matches", scoredMatchTableModel{
		MatchID:          scored.MatchID,
		TourID:           scored.TourID,
		UpdatedSnapshots: scored.UpdatedSnapshots,
		PointsAdded:      scored.PointsAdded,
		ScoredAt:         scored.ScoredAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert scored match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return fmt.Errorf("%w: match=%s", scoring.ErrMatchAlreadyScored, scored.MatchID)
		}
		return fmt.Errorf("insert scored match: %w", err)
	}
	return nil
}
