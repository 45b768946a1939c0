// Package migrate is the schema initializer: it brings the players and matches
// tables into existence with goose, once per process start.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrations embed.FS

type initializer struct {
	db      *sql.DB
	dialect goose.Dialect
	dir     string
	log     zerolog.Logger
}

// NewSQLite returns the schema initializer for the SQLite store.
func NewSQLite(db *sql.DB, logger zerolog.Logger) repository.SchemaInitializer {
	return newInitializer(db, goose.DialectSQLite3, "sqlite", logger)
}

// NewPostgres returns the schema initializer for a Postgres database opened through pgx's stdlib adapter.
func NewPostgres(db *sql.DB, logger zerolog.Logger) repository.SchemaInitializer {
	return newInitializer(db, goose.DialectPostgres, "postgres", logger)
}

func newInitializer(db *sql.DB, dialect goose.Dialect, dir string, logger zerolog.Logger) *initializer {
	l := logger.With().Str("module", "repository").Str("component", "migrate").Str("dialect", dir).Logger()
	return &initializer{db: db, dialect: dialect, dir: dir, log: l}
}

// Init applies pending migrations. Calling it again is a no-op; tables that already
// exist (for example in a store file created before versioning) are adopted as is.
func (i *initializer) Init(ctx context.Context) error {
	if i.db == nil {
		return errors.New("migrate: db is nil")
	}
	fsys, err := fs.Sub(migrations, i.dir)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	provider, err := goose.NewProvider(i.dialect, i.db, fsys)
	if err != nil {
		return fmt.Errorf("migrate: new provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return repository.Unavailable("migrate up", err)
	}
	for _, res := range results {
		i.log.Info().
			Int64("version", res.Source.Version).
			Str("file", res.Source.Path).
			Dur("took", res.Duration).
			Msg("migration applied")
	}
	if len(results) == 0 {
		i.log.Debug().Msg("schema up to date")
	}
	return nil
}

var _ repository.SchemaInitializer = (*initializer)(nil)
