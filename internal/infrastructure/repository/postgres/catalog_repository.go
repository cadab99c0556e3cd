package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

// Catalog tables are soft-deleted; every read filters deleted_at.

func selectAll[R, T any](ctx context.Context, db queryer, what string, query *qb.SelectBuilder, convert func(R) T) ([]T, error) {
	sqlQuery, args, err := query.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", what, err)
	}

	var rows []R
	if err := db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", what, err)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}
	return out, nil
}

func selectOne[R, T any](ctx context.Context, db queryer, what string, query *qb.SelectBuilder, convert func(R) T) (T, bool, error) {
	var zero T
	sqlQuery, args, err := query.ToSQL()
	if err != nil {
		return zero, false, fmt.Errorf("build get %s query: %w", what, err)
	}

	var row R
	if err := db.GetContext(ctx, &row, sqlQuery, args...); err != nil {
		if isNotFound(err) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("get %s: %w", what, err)
	}
	return convert(row), true, nil
}

type LeagueRepository struct {
	db queryer
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return selectAll(ctx, r.db, "leagues",
		qb.Select("*").From("leagues").Where(qb.IsNull("deleted_at")).OrderBy("id"),
		leagueFromRow)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return selectOne(ctx, r.db, "league "+leagueID,
		qb.Select("*").From("leagues").Where(qb.Eq("public_id", leagueID), qb.IsNull("deleted_at")),
		leagueFromRow)
}

type TeamRepository struct {
	db queryer
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	return selectAll(ctx, r.db, "teams of league "+leagueID,
		qb.Select("*").From("teams").
			Where(qb.Eq("league_public_id", leagueID), qb.IsNull("deleted_at")).
			OrderBy("name", "id"),
		teamFromRow)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return selectOne(ctx, r.db, "team "+teamID,
		qb.Select("*").From("teams").Where(qb.Eq("public_id", teamID), qb.IsNull("deleted_at")),
		teamFromRow)
}

type PlayerRepository struct {
	db queryer
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListByLeague returns the selectable pool, so inactive players are left out.
func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	return selectAll(ctx, r.db, "players of league "+leagueID,
		qb.Select("*").From("players").
			Where(qb.Eq("league_public_id", leagueID), qb.Eq("is_active", true), qb.IsNull("deleted_at")).
			OrderBy("id"),
		playerFromRow)
}

// GetByIDs includes inactive players: a stored roster keeps its price even
// after the player leaves the pool.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}
	return selectAll(ctx, r.db, "players by ids",
		qb.Select("*").From("players").Where(qb.InStrings("public_id", playerIDs), qb.IsNull("deleted_at")),
		playerFromRow)
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		CountryCode: row.CountryCode,
		Season:      row.Season,
		IsDefault:   row.IsDefault,
	}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{ID: row.PublicID, LeagueID: row.LeagueID, Name: row.Name, Short: row.Short}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		LeagueID: row.LeagueID,
		TeamID:   row.TeamID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Price:    row.Price,
	}
}
