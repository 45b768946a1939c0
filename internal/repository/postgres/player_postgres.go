package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
)

const playerColumns = `id, COALESCE(name, ''), COALESCE(role, ''), COALESCE(team, ''),
	COALESCE(runs, 0), COALESCE(wickets, 0), COALESCE(matches, 0)`

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	var out model.Player
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		row := conn.QueryRow(ctx,
			`INSERT INTO players (name, role, team) VALUES ($1, $2, $3)
			 RETURNING `+playerColumns,
			p.Name, string(p.Role), p.Team,
		)
		return scanPlayer(row, &out)
	})
	if err != nil {
		return model.Player{}, repository.MapPgError("insert player", err)
	}
	return out, nil
}

func (r *playerRepository) RecordPerformance(ctx context.Context, perf model.Performance) (bool, error) {
	if err := repository.CheckPerformance(perf); err != nil {
		return false, err
	}
	var affected int64
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx,
			`UPDATE players
			 SET runs = runs + $1, wickets = wickets + $2, matches = matches + 1
			 WHERE id = $3`,
			perf.Runs, perf.Wickets, perf.PlayerID,
		)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return false, repository.MapPgError("update player stats", err)
	}
	return affected > 0, nil
}

func (r *playerRepository) List(ctx context.Context, team *string) ([]model.Player, error) {
	res := make([]model.Player, 0, 16)
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+playerColumns+`
			 FROM players
			 WHERE $1::TEXT IS NULL OR team = $1
			 ORDER BY id`, team,
		)
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
	if err != nil {
		return nil, repository.MapPgError("list players", err)
	}
	return res, nil
}

// TopScorers orders by runs, breaking ties by insertion order.
func (r *playerRepository) TopScorers(ctx context.Context, limit int) ([]model.ScorerEntry, error) {
	limit = repository.SanitizeLimit(limit)
	res := make([]model.ScorerEntry, 0, limit)
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT COALESCE(name, ''), COALESCE(team, ''), COALESCE(runs, 0)
			 FROM players
			 ORDER BY runs DESC NULLS LAST, id ASC
			 LIMIT $1`, limit,
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
	if err != nil {
		return nil, repository.MapPgError("top scorers", err)
	}
	return res, nil
}

// TopWicketTakers orders by wickets, breaking ties by insertion order.
func (r *playerRepository) TopWicketTakers(ctx context.Context, limit int) ([]model.WicketTakerEntry, error) {
	limit = repository.SanitizeLimit(limit)
	res := make([]model.WicketTakerEntry, 0, limit)
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT COALESCE(name, ''), COALESCE(team, ''), COALESCE(wickets, 0)
			 FROM players
			 ORDER BY wickets DESC NULLS LAST, id ASC
			 LIMIT $1`, limit,
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
	if err != nil {
		return nil, repository.MapPgError("top wicket takers", err)
	}
	return res, nil
}

func scanPlayer(row pgx.Row, p *model.Player) error {
	var role string
	if err := row.Scan(&p.ID, &p.Name, &role, &p.Team, &p.Runs, &p.Wickets, &p.Matches); err != nil {
		return err
	}
	p.Role = model.Role(role)
	return nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
