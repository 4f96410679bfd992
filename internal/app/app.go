package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/league-registry/internal/config"
	"github.com/riskibarqy/league-registry/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-registry/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-registry/internal/interfaces/cli"
	"github.com/riskibarqy/league-registry/internal/platform/logging"
	"github.com/riskibarqy/league-registry/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// OpenDB connects to the registry database with query tracing enabled and
// fails fast when it cannot be reached within the configured timeout.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		NormalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(compactStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// NewImporterFactory wires the import service to PostgreSQL, or to an empty
// in-memory registry for dry runs.
func NewImporterFactory(cfg config.Config, logger *logging.Logger) cli.ImporterFactory {
	if logger == nil {
		logger = logging.Default()
	}

	return func(ctx context.Context, dryRun bool) (cli.Importer, func() error, error) {
		if dryRun {
			logger.InfoContext(ctx, "dry run enabled, database will not be touched")
			return NewMemoryImportService(logger), func() error { return nil }, nil
		}

		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "database connected", "db_name", dbNameFromURL(cfg.DBURL))

		svc := usecase.NewImportService(
			postgres.NewLeagueRepository(db),
			postgres.NewTeamRepository(db),
			postgres.NewPlayerRepository(db),
			logger,
		)
		return svc, db.Close, nil
	}
}

func NewMemoryImportService(logger *logging.Logger) *usecase.ImportService {
	return usecase.NewImportService(
		memory.NewLeagueRepository(nil),
		memory.NewTeamRepository(nil),
		memory.NewPlayerRepository(nil),
		logger,
	)
}
