package postgres

import "time"

type leagueInsertModel struct {
	PublicID    string `db:"public_id"`
	Name        string `db:"name"`
	CountryCode string `db:"country_code"`
	Season      string `db:"season"`
	IsDefault   bool   `db:"is_default"`
}

type leagueTableModel struct {
	ID int64 `db:"id"`
	leagueInsertModel
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID string `db:"public_id"`
	LeagueID string `db:"league_public_id"`
	Name     string `db:"name"`
	Short    string `db:"short"`
}

type teamTableModel struct {
	ID int64 `db:"id"`
	teamInsertModel
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	LeagueID string `db:"league_public_id"`
	TeamID   string `db:"team_public_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Price    int64  `db:"price"`
	IsActive bool   `db:"is_active"`
}

type playerTableModel struct {
	ID int64 `db:"id"`
	playerInsertModel
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
