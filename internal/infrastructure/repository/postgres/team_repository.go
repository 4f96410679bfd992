package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-registry/internal/domain/team"
	qb "github.com/riskibarqy/league-registry/internal/platform/querybuilder"
)

var teamSelectColumns = []string{
	"id",
	"league_id",
	"name",
	"created_at",
	"updated_at",
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetOrCreate(ctx context.Context, item team.Team) (team.Team, bool, error) {
	found, exists, err := r.getByLeagueAndName(ctx, item.LeagueID, item.Name)
	if err != nil {
		return team.Team{}, false, err
	}
	if exists {
		return found, false, nil
	}

	query, args, err := qb.InsertRow("teams", teamInsertModel{
		LeagueID: item.LeagueID,
		Name:     item.Name,
	}, teamSelectColumns...)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isUniqueViolation(err) {
			return team.Team{}, false, fmt.Errorf("insert team: %w", err)
		}
		found, exists, getErr := r.getByLeagueAndName(ctx, item.LeagueID, item.Name)
		if getErr != nil {
			return team.Team{}, false, getErr
		}
		if exists {
			return found, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%w: %s violates %s", team.ErrConflict, item.Name, violatedConstraint(err))
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) getByLeagueAndName(ctx context.Context, leagueID int64, name string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("name", name),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
	}
}
