package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

const matchColumns = `id, COALESCE(team1, ''), COALESCE(team2, ''), COALESCE(winner, ''),
	COALESCE(venue, ''), COALESCE(date, '')`

type matchRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) repository.MatchRepository {
	l := logger.With().Str("module", "repository").Str("component", "sqlite_match").Logger()
	return &matchRepository{db: db, log: l}
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	start := time.Now()
	var out model.Match
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			`INSERT INTO matches (team1, team2, winner, venue, date) VALUES (?, ?, ?, ?, ?)
			 RETURNING `+matchColumns,
			m.Team1, m.Team2, m.Winner, m.Venue, m.Date,
		)
		return row.Scan(&out.ID, &out.Team1, &out.Team2, &out.Winner, &out.Venue, &out.Date)
	})
	logQuery(r.log, "insert_match", start, err)
	if err != nil {
		return model.Match{}, mapError("insert match", err)
	}
	return out, nil
}

func (r *matchRepository) List(ctx context.Context) ([]model.Match, error) {
	start := time.Now()
	res := make([]model.Match, 0, 16)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it model.Match
			if err := rows.Scan(&it.ID, &it.Team1, &it.Team2, &it.Winner, &it.Venue, &it.Date); err != nil {
				return err
			}
			res = append(res, it)
		}
		return rows.Err()
	})
	logQuery(r.log, "list_matches", start, err)
	if err != nil {
		return nil, mapError("list matches", err)
	}
	return res, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
