package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          int64         `db:"id"`
	TeamID      sql.NullInt64 `db:"team_id"`
	FirstName   string        `db:"first_name"`
	LastName    string        `db:"last_name"`
	Nationality string        `db:"nationality"`
	Age         sql.NullInt32 `db:"age"`
	ShirtNumber sql.NullInt32 `db:"shirt_number"`
	Position    string        `db:"position"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type playerInsertModel struct {
	TeamID      *int64 `db:"team_id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Nationality string `db:"nationality"`
	Age         *int   `db:"age"`
	ShirtNumber *int   `db:"shirt_number"`
	Position    string `db:"position"`
}
