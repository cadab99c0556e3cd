package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID         int64        `db:"id"`
	PublicID   string       `db:"public_id"`
	LeagueID   string       `db:"league_public_id"`
	TourID     string       `db:"tour_public_id"`
	HomeTeamID string       `db:"home_team_public_id"`
	AwayTeamID string       `db:"away_team_public_id"`
	KickoffAt  time.Time    `db:"kickoff_at"`
	Finished   bool         `db:"finished"`
	FinishedAt sql.NullTime `db:"finished_at"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

type playerStatTableModel struct {
	MatchID     string `db:"match_public_id"`
	PlayerID    string `db:"player_public_id"`
	TeamID      string `db:"team_public_id"`
	Minutes     int    `db:"minutes_played"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	CleanSheet  bool   `db:"clean_sheet"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
	Points      int    `db:"fantasy_points"`
}
