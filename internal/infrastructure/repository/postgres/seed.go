package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

type tourSeedModel struct {
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	TourNumber int       `db:"tour_number"`
	DeadlineAt time.Time `db:"deadline_at"`
}

type matchSeedModel struct {
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	TourID     string    `db:"tour_public_id"`
	HomeTeamID string    `db:"home_team_public_id"`
	AwayTeamID string    `db:"away_team_public_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
}

type seedRow struct {
	table string
	key   string
	model any
}

// seedRows flattens the memory catalog into insert rows, parents first.
// Catalog entries are validated so a broken fixture fails before any write.
func seedRows(now time.Time) ([]seedRow, error) {
	var rows []seedRow
	for _, l := range memory.SeedLeagues() {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, seedRow{"leagues", l.ID, leagueInsertModel{
			PublicID:    l.ID,
			Name:        l.Name,
			CountryCode: l.CountryCode,
			Season:      l.Season,
			IsDefault:   l.IsDefault,
		}})
	}
	for _, t := range memory.SeedTeams() {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, seedRow{"teams", t.ID, teamInsertModel{PublicID: t.ID, LeagueID: t.LeagueID, Name: t.Name, Short: t.Short}})
	}
	for _, p := range memory.SeedPlayers() {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		rows = append(rows, seedRow{"players", p.ID, playerInsertModel{
			PublicID: p.ID,
			LeagueID: p.LeagueID,
			TeamID:   p.TeamID,
			Name:     p.Name,
			Position: string(p.Position),
			Price:    p.Price,
			IsActive: true,
		}})
	}
	for _, t := range memory.SeedTours(now) {
		rows = append(rows, seedRow{"tours", t.ID, tourSeedModel{
			PublicID:   t.ID,
			LeagueID:   t.LeagueID,
			TourNumber: t.Number,
			DeadlineAt: t.DeadlineAt.UTC(),
		}})
	}
	for _, m := range memory.SeedMatches(now) {
		rows = append(rows, seedRow{"matches", m.ID, matchSeedModel{
			PublicID:   m.ID,
			LeagueID:   m.LeagueID,
			TourID:     m.TourID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			KickoffAt:  m.KickoffAt.UTC(),
		}})
	}
	return rows, nil
}

// BootstrapSeed loads the memory catalog into a database with no leagues.
// Tours and matches are scheduled relative to now.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows, err := seedRows(now)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		query, args, err := qb.InsertModel(row.table, row.model, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed %s %s: %w", row.table, row.key, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s %s: %w", row.table, row.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
