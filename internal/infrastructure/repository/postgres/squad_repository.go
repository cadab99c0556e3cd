package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

const squadUserLeagueConstraint = "fantasy_squads_user_league_key"

type SquadRepository struct {
	db queryer
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (fantasy.Squad, bool, error) {
	return r.getOne(ctx, "get squad by id", qb.Eq("public_id", squadID))
}

func (r *SquadRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	return r.getOne(ctx, "get squad by user and league",
		qb.Eq("user_id", userID),
		qb.Eq("league_public_id", leagueID),
	)
}

func (r *SquadRepository) getOne(ctx context.Context, op string, where ...qb.Condition) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_squads").Where(where...).ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return fantasy.Squad{
		ID:             row.PublicID,
		UserID:         row.UserID,
		LeagueID:       row.LeagueID,
		FavoriteTeamID: row.FavoriteTeamID.String,
		Name:           row.Name,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}, true, nil
}

func (r *SquadRepository) Create(ctx context.Context, squad fantasy.Squad) error {
	query, args, err := qb.InsertModel("fantasy_squads", squadInsertModel{
		PublicID:       squad.ID,
		UserID:         squad.UserID,
		LeagueID:       squad.LeagueID,
		FavoriteTeamID: optionalString(squad.FavoriteTeamID),
		Name:           squad.Name,
		CreatedAt:      squad.CreatedAt.UTC(),
		UpdatedAt:      squad.UpdatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert squad query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == squadUserLeagueConstraint {
			return fmt.Errorf("%w: user=%s league=%s", fantasy.ErrSquadExists, squad.UserID, squad.LeagueID)
		}
		return fmt.Errorf("insert squad: %w", err)
	}
	return nil
}

func (r *SquadRepository) UpdateName(ctx context.Context, squadID, name string) error {
	query, args, err := qb.Update("fantasy_squads").
		Set("name", name).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", squadID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build rename squad query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("rename squad: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("squad %s not found", squadID)
	}
	return nil
}
