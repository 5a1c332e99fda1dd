package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO teams (season_id, name) VALUES ($1, $2)
		 RETURNING id, season_id, name`,
		t.SeasonID, t.Name,
	)
	var out model.Team
	if err := row.Scan(&out.ID, &out.SeasonID, &out.Name); err != nil {
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, season_id, name FROM teams WHERE id = $1`, id,
	)
	var out model.Team
	if err := row.Scan(&out.ID, &out.SeasonID, &out.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, repository.ErrNotFound
		}
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *teamRepository) ListBySeason(ctx context.Context, seasonID int64, p repository.Page) (repository.PageResult[model.Team], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Team]{}, err
	}
	p = p.Normalize()
	limit, offset := p.Limit, p.Offset
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, season_id, name, COUNT(*) OVER() AS total
		 FROM teams
		 WHERE season_id = $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		seasonID, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Team]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Team]{Items: make([]model.Team, 0, limit)}
	for rows.Next() {
		var t model.Team
		var total int
		if err := rows.Scan(&t.ID, &t.SeasonID, &t.Name, &total); err != nil {
			return repository.PageResult[model.Team]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, t)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Team]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.TeamRepository = (*teamRepository)(nil)
