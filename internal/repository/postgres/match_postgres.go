package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
)

const matchColumns = `id, COALESCE(team1, ''), COALESCE(team2, ''), COALESCE(winner, ''),
	COALESCE(venue, ''), COALESCE(date, '')`

type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	var out model.Match
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		row := conn.QueryRow(ctx,
			`INSERT INTO matches (team1, team2, winner, venue, date)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+matchColumns,
			m.Team1, m.Team2, m.Winner, m.Venue, m.Date,
		)
		return row.Scan(&out.ID, &out.Team1, &out.Team2, &out.Winner, &out.Venue, &out.Date)
	})
	if err != nil {
		return model.Match{}, repository.MapPgError("insert match", err)
	}
	return out, nil
}

func (r *matchRepository) List(ctx context.Context) ([]model.Match, error) {
	res := make([]model.Match, 0, 16)
	err := withConn(ctx, r.pool, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY id`)
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
	if err != nil {
		return nil, repository.MapPgError("list matches", err)
	}
	return res, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
