package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type seasonRepository struct{ pool *pgxpool.Pool }

func NewSeasonRepository(pool *pgxpool.Pool) repository.SeasonRepository {
	return &seasonRepository{pool: pool}
}

func (r *seasonRepository) Create(ctx context.Context, s model.Season) (model.Season, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Season{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO seasons (name, year) VALUES ($1, $2)
		 RETURNING id, name, year, created_at`,
		s.Name, s.Year,
	)
	var out model.Season
	if err := row.Scan(&out.ID, &out.Name, &out.Year, &out.CreatedAt); err != nil {
		return model.Season{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *seasonRepository) GetByID(ctx context.Context, id int64) (model.Season, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Season{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, name, year, created_at FROM seasons WHERE id = $1`, id,
	)
	var out model.Season
	if err := row.Scan(&out.ID, &out.Name, &out.Year, &out.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Season{}, repository.ErrNotFound
		}
		return model.Season{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *seasonRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Season], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Season]{}, err
	}
	p = p.Normalize()
	limit, offset := p.Limit, p.Offset
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, name, year, created_at, COUNT(*) OVER() AS total
		 FROM seasons
		 ORDER BY year DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Season]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Season]{Items: make([]model.Season, 0, limit)}
	for rows.Next() {
		var it model.Season
		var total int
		if err := rows.Scan(&it.ID, &it.Name, &it.Year, &it.CreatedAt, &total); err != nil {
			return repository.PageResult[model.Season]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Season]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.SeasonRepository = (*seasonRepository)(nil)
