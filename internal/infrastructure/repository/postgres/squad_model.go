package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type squadTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	UserID         string         `db:"user_id"`
	LeagueID       string         `db:"league_public_id"`
	FavoriteTeamID sql.NullString `db:"favorite_team_public_id"`
	Name           string         `db:"name"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type squadInsertModel struct {
	PublicID       string         `db:"public_id"`
	UserID         string         `db:"user_id"`
	LeagueID       string         `db:"league_public_id"`
	FavoriteTeamID sql.NullString `db:"favorite_team_public_id"`
	Name           string         `db:"name"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type squadTourTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	SquadID             string         `db:"squad_public_id"`
	TourID              string         `db:"tour_public_id"`
	Budget              int64          `db:"budget"`
	FreeReplacements    int            `db:"free_replacements"`
	GrantedReplacements int            `db:"granted_replacements"`
	Points              int            `db:"points"`
	PenaltyPoints       int            `db:"penalty_points"`
	CaptainID           string         `db:"captain_player_id"`
	ViceCaptainID       string         `db:"vice_captain_player_id"`
	ActiveBoost         string         `db:"active_boost"`
	Finalized           bool           `db:"finalized"`
	MainLineup          pq.StringArray `db:"main_lineup"`
	Bench               pq.StringArray `db:"bench"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type squadTourInsertModel struct {
	PublicID            string         `db:"public_id"`
	SquadID             string         `db:"squad_public_id"`
	TourID              string         `db:"tour_public_id"`
	Budget              int64          `db:"budget"`
	FreeReplacements    int            `db:"free_replacements"`
	GrantedReplacements int            `db:"granted_replacements"`
	Points              int            `db:"points"`
	PenaltyPoints       int            `db:"penalty_points"`
	CaptainID           string         `db:"captain_player_id"`
	ViceCaptainID       string         `db:"vice_captain_player_id"`
	ActiveBoost         string         `db:"active_boost"`
	Finalized           bool           `db:"finalized"`
	MainLineup          pq.StringArray `db:"main_lineup"`
	Bench               pq.StringArray `db:"bench"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
