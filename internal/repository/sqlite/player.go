package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

// Columns may hold NULLs in stores written by older tooling, hence the COALESCE.
const playerColumns = `id, COALESCE(name, ''), COALESCE(role, ''), COALESCE(team, ''),
	COALESCE(runs, 0), COALESCE(wickets, 0), COALESCE(matches, 0)`

type playerRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewPlayerRepository(db *sql.DB, logger zerolog.Logger) repository.PlayerRepository {
	l := logger.With().Str("module", "repository").Str("component", "sqlite_player").Logger()
	return &playerRepository{db: db, log: l}
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	start := time.Now()
	var out model.Player
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			`INSERT INTO players (name, role, team) VALUES (?, ?, ?)
			 RETURNING `+playerColumns,
			p.Name, string(p.Role), p.Team,
		)
		return scanPlayer(row, &out)
	})
	logQuery(r.log, "insert_player", start, err)
	if err != nil {
		return model.Player{}, mapError("insert player", err)
	}
	return out, nil
}

func (r *playerRepository) RecordPerformance(ctx context.Context, perf model.Performance) (bool, error) {
	if err := repository.CheckPerformance(perf); err != nil {
		return false, err
	}
	start := time.Now()
	var affected int64
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			`UPDATE players
			 SET runs = runs + ?, wickets = wickets + ?, matches = matches + 1
			 WHERE id = ?`,
			perf.Runs, perf.Wickets, perf.PlayerID,
		)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	logQuery(r.log, "update_player_stats", start, err)
	if err != nil {
		return false, mapError("update player stats", err)
	}
	return affected > 0, nil
}

func (r *playerRepository) List(ctx context.Context, team *string) ([]model.Player, error) {
	start := time.Now()
	query := `SELECT ` + playerColumns + ` FROM players`
	var args []any
	if team != nil {
		query += ` WHERE team = ?`
		args = append(args, *team)
	}
	query += ` ORDER BY id`

	res := make([]model.Player, 0, 16)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it model.Player
			if err := scanPlayer(rows, &it); err != nil {
				return err
			}
			res = append(res, it)
		}
		return rows.Err()
	})
	logQuery(r.log, "list_players", start, err)
	if err != nil {
		return nil, mapError("list players", err)
	}
	return res, nil
}

func (r *playerRepository) TopScorers(ctx context.Context, limit int) ([]model.ScorerEntry, error) {
	start := time.Now()
	limit = repository.SanitizeLimit(limit)
	res := make([]model.ScorerEntry, 0, limit)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT COALESCE(name, ''), COALESCE(team, ''), COALESCE(runs, 0)
			 FROM players
			 ORDER BY runs DESC, id ASC
			 LIMIT ?`, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it model.ScorerEntry
			if err := rows.Scan(&it.Name, &it.Team, &it.Runs); err != nil {
				return err
			}
			res = append(res, it)
		}
		return rows.Err()
	})
	logQuery(r.log, "top_scorers", start, err)
	if err != nil {
		return nil, mapError("top scorers", err)
	}
	return res, nil
}

func (r *playerRepository) TopWicketTakers(ctx context.Context, limit int) ([]model.WicketTakerEntry, error) {
	start := time.Now()
	limit = repository.SanitizeLimit(limit)
	res := make([]model.WicketTakerEntry, 0, limit)
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT COALESCE(name, ''), COALESCE(team, ''), COALESCE(wickets, 0)
			 FROM players
			 ORDER BY wickets DESC, id ASC
			 LIMIT ?`, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var it model.WicketTakerEntry
			if err := rows.Scan(&it.Name, &it.Team, &it.Wickets); err != nil {
				return err
			}
			res = append(res, it)
		}
		return rows.Err()
	})
	logQuery(r.log, "top_wicket_takers", start, err)
	if err != nil {
		return nil, mapError("top wicket takers", err)
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner, p *model.Player) error {
	var role string
	if err := row.Scan(&p.ID, &p.Name, &role, &p.Team, &p.Runs, &p.Wickets, &p.Matches); err != nil {
		return err
	}
	p.Role = model.Role(role)
	return nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
