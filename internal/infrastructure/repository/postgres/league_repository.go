package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-registry/internal/domain/league"
	qb "github.com/riskibarqy/league-registry/internal/platform/querybuilder"
)

var leagueSelectColumns = []string{
	"id",
	"name",
	"country_code",
	"tier",
	"created_at",
	"updated_at",
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetOrCreate(ctx context.Context, item league.League) (league.League, bool, error) {
	found, exists, err := r.getByIdentity(ctx, item)
	if err != nil {
		return league.League{}, false, err
	}
	if exists {
		return found, false, nil
	}

	query, args, err := qb.InsertRow("leagues", leagueInsertModel{
		Name:        item.Name,
		CountryCode: item.CountryCode,
		Tier:        item.Tier,
	}, leagueSelectColumns...)
	if err != nil {
		return league.League{}, false, fmt.Errorf("build insert league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isUniqueViolation(err) {
			return league.League{}, false, fmt.Errorf("insert league: %w", err)
		}
		found, exists, getErr := r.getByIdentity(ctx, item)
		if getErr != nil {
			return league.League{}, false, getErr
		}
		if exists {
			return found, false, nil
		}
		return league.League{}, false, fmt.Errorf("%w: %s violates %s", league.ErrConflict, item, violatedConstraint(err))
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) getByIdentity(ctx context.Context, item league.League) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(
			qb.Eq("name", item.Name),
			qb.Eq("country_code", item.CountryCode),
			qb.Eq("tier", item.Tier),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		CountryCode: row.CountryCode,
		Tier:        row.Tier,
	}
}
