package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-registry/internal/domain/player"
	qb "github.com/riskibarqy/league-registry/internal/platform/querybuilder"
)

var playerSelectColumns = []string{
	"id",
	"team_id",
	"first_name",
	"last_name",
	"nationality",
	"age",
	"shirt_number",
	"position",
	"created_at",
	"updated_at",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetOrCreate(ctx context.Context, item player.Player) (player.Player, bool, error) {
	found, exists, err := r.GetByName(ctx, item.FirstName, item.LastName)
	if err != nil {
		return player.Player{}, false, err
	}
	if exists {
		return found, false, nil
	}

	query, args, err := qb.InsertRow("players", playerInsertModel{
		TeamID:      item.TeamID,
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		Nationality: item.Nationality,
		Age:         item.Age,
		ShirtNumber: item.ShirtNumber,
		Position:    string(item.Position),
	}, playerSelectColumns...)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isUniqueViolation(err) {
			return player.Player{}, false, fmt.Errorf("insert player: %w", err)
		}
		found, exists, getErr := r.GetByName(ctx, item.FirstName, item.LastName)
		if getErr != nil {
			return player.Player{}, false, getErr
		}
		if exists {
			return found, false, nil
		}
		return player.Player{}, false, fmt.Errorf("%w: %s violates %s", player.ErrConflict, item, violatedConstraint(err))
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, firstName, lastName string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("first_name", firstName),
			qb.Eq("last_name", lastName),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.ID,
		TeamID:      nullInt64ToPtr(row.TeamID),
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Nationality: row.Nationality,
		Age:         nullInt32ToIntPtr(row.Age),
		ShirtNumber: nullInt32ToIntPtr(row.ShirtNumber),
		Position:    player.Position(row.Position),
	}
}
