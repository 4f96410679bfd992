package postgres

import "time"

type leagueTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	CountryCode string    `db:"country_code"`
	Tier        int       `db:"tier"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	Name        string `db:"name"`
	CountryCode string `db:"country_code"`
	Tier        int    `db:"tier"`
}
