package main

import (
	"context"
	"fmt"

	"github.com/maxviazov/cricket-stats-service/internal/config"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/internal/repository/migrate"
	"github.com/maxviazov/cricket-stats-service/internal/repository/postgres"
	"github.com/maxviazov/cricket-stats-service/internal/repository/sqlite"
	"github.com/rs/zerolog"
)

// storage bundles the repositories of the configured driver with its teardown.
type storage struct {
	schema  repository.SchemaInitializer
	players repository.PlayerRepository
	matches repository.MatchRepository
	pinger  repository.Pinger
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		repo, err := postgres.New(ctx, cfg.Postgres, &logger)
		if err != nil {
			return nil, err
		}
		db := repo.SQLDB()
		return &storage{
			schema:  migrate.NewPostgres(db, logger),
			players: postgres.NewPlayerRepository(repo.Pool()),
			matches: postgres.NewMatchRepository(repo.Pool()),
			pinger:  postgres.NewPinger(repo.Pool()),
			close: func() {
				_ = db.Close()
				repo.Close()
			},
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		return &storage{
			schema:  migrate.NewSQLite(db, logger),
			players: sqlite.NewPlayerRepository(db, logger),
			matches: sqlite.NewMatchRepository(db, logger),
			pinger:  sqlite.NewPinger(db),
			close:   func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
