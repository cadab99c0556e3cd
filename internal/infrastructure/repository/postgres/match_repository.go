package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	qb "github.com/riskibarqy/fantasy-tour/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var playerStatSelectColumns = []string{
	"match_public_id",
	"player_public_id",
	"team_public_id",
	"minutes_played",
	"goals",
	"assists",
	"clean_sheet",
	"yellow_cards",
	"red_cards",
	"fantasy_points",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByTour(ctx context.Context, tourID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("tour_public_id", tourID)).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by tour query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by tour: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListStatsByMatch(ctx context.Context, matchID string) ([]match.PlayerStat, error) {
	query, args, err := qb.Select(playerStatSelectColumns...).From("match_player_stats").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match stats query: %w", err)
	}

	var rows []playerStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match stats: %w", err)
	}

	out := make([]match.PlayerStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.PlayerStat{
			MatchID:     row.MatchID,
			PlayerID:    row.PlayerID,
			TeamID:      row.TeamID,
			Minutes:     row.Minutes,
			Goals:       row.Goals,
			Assists:     row.Assists,
			CleanSheet:  row.CleanSheet,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
			Points:      row.Points,
		})
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		TourID:     row.TourID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt.UTC(),
		Finished:   row.Finished,
		FinishedAt: timePtr(row.FinishedAt),
	}
}
