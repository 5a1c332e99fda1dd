package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

// Create inserts a game. A zero StartTime lets the database default to NOW().
func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	var start any
	if !g.StartTime.IsZero() {
		start = g.StartTime
	}
	status := g.Status
	if status == "" {
		status = model.GameStatusLive
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (season_id, home_team_id, away_team_id, start_time, status)
		 VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()), $5::game_status)
		 RETURNING id, season_id, home_team_id, away_team_id, start_time, status::text`,
		g.SeasonID, g.HomeTeamID, g.AwayTeamID, start, status,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.SeasonID, &out.HomeTeamID, &out.AwayTeamID, &out.StartTime, &out.Status); err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, season_id, home_team_id, away_team_id, start_time, status::text
		 FROM games WHERE id = $1`, id,
	)
	var out model.Game
	if err := row.Scan(&out.ID, &out.SeasonID, &out.HomeTeamID, &out.AwayTeamID, &out.StartTime, &out.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Game], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Game]{}, err
	}
	p = p.Normalize()
	limit, offset := p.Limit, p.Offset
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, season_id, home_team_id, away_team_id, start_time, status::text, COUNT(*) OVER() AS total
		 FROM games
		 ORDER BY start_time DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Game]{Items: make([]model.Game, 0, limit)}
	for rows.Next() {
		var it model.Game
		var total int
		if err := rows.Scan(&it.ID, &it.SeasonID, &it.HomeTeamID, &it.AwayTeamID, &it.StartTime, &it.Status, &total); err != nil {
			return repository.PageResult[model.Game]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Game]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
