// Package sqlite implements the repositories on top of a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/config"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Open opens the store file and verifies it can be reached.
// Idle connections are not kept: every repository call opens and closes its own.
func Open(ctx context.Context, cfg config.SQLiteConfig, logger zerolog.Logger) (*sql.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := filepath.Clean(path)
	if cfg.BusyTimeoutMS > 0 {
		dsn += fmt.Sprintf("?_pragma=busy_timeout(%d)", cfg.BusyTimeoutMS)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, repository.Unavailable("open sqlite", err)
	}
	db.SetMaxIdleConns(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, repository.Unavailable("ping sqlite", err)
	}

	logger.Info().Str("component", "sqlite").Str("path", path).Msg("SQLite store opened")
	return db, nil
}

// withConn runs fn on a dedicated connection and releases it on every exit path.
func withConn(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	if db == nil {
		return errors.New("sqlite db is nil")
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// mapError translates SQLite result codes to domain errors.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT {
		return fmt.Errorf("%s: %w: %s", op, repository.ErrConflict, sqliteErr.Error())
	}
	return repository.Unavailable(op, err)
}

// logQuery traces one statement at the most verbose level.
func logQuery(l zerolog.Logger, op string, start time.Time, err error) {
	ev := l.Trace()
	if err != nil {
		ev = l.Debug().Err(err)
	}
	ev.Str("op", op).Dur("took", time.Since(start)).Msg("sqlite query")
}

type pinger struct{ db *sql.DB }

// NewPinger adapts *sql.DB to the repository.Pinger interface.
func NewPinger(db *sql.DB) repository.Pinger { return &pinger{db: db} }

func (p *pinger) Ping(ctx context.Context) error {
	err := withConn(ctx, p.db, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
	return mapError("ping", err)
}
