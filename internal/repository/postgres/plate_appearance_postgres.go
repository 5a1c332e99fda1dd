package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
)

type plateAppearanceRepository struct{ pool *pgxpool.Pool }

func NewPlateAppearanceRepository(pool *pgxpool.Pool) repository.PlateAppearanceRepository {
	return &plateAppearanceRepository{pool: pool}
}

const paColumns = `id, game_id, inning, half::text, batter_id, pitcher_id, result::text, rbis, notes, client_event_id, created_at`

func scanPA(row pgx.Row, extra ...any) (model.PlateAppearance, error) {
	var pa model.PlateAppearance
	var half, result string
	dest := []any{
		&pa.ID, &pa.GameID, &pa.Inning, &half, &pa.BatterID, &pa.PitcherID,
		&result, &pa.RBIs, &pa.Notes, &pa.ClientEventID, &pa.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.PlateAppearance{}, err
	}
	pa.Half = stats.Half(half)
	pa.Result = stats.Result(result)
	return pa, nil
}

// Create inserts a plate appearance. A duplicate (game_id, client_event_id)
// surfaces as repository.ErrAlreadyExists.
func (r *plateAppearanceRepository) Create(ctx context.Context, pa model.PlateAppearance) (model.PlateAppearance, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlateAppearance{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO plate_appearances
		   (game_id, inning, half, batter_id, pitcher_id, result, rbis, notes, client_event_id)
		 VALUES ($1, $2, $3::half_inning, $4, $5, $6::pa_result, $7, $8, $9)
		 RETURNING `+paColumns,
		pa.GameID, pa.Inning, string(pa.Half), pa.BatterID, pa.PitcherID,
		string(pa.Result), pa.RBIs, pa.Notes, pa.ClientEventID,
	)
	out, err := scanPA(row)
	if err != nil {
		return model.PlateAppearance{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *plateAppearanceRepository) GetByClientEventID(ctx context.Context, gameID int64, clientEventID string) (model.PlateAppearance, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlateAppearance{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+paColumns+` FROM plate_appearances
		 WHERE game_id = $1 AND client_event_id = $2`,
		gameID, clientEventID,
	)
	out, err := scanPA(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PlateAppearance{}, repository.ErrNotFound
		}
		return model.PlateAppearance{}, repository.MapPgError(err)
	}
	return out, nil
}

// rowsSelect joins batter and pitcher names plus the owning season. Pitcher
// columns come back NULL when the record has no pitcher.
const rowsSelect = `SELECT pa.id, pa.game_id, pa.inning, pa.half::text, pa.batter_id, pa.pitcher_id,
	       pa.result::text, pa.rbis, pa.notes, pa.client_event_id, pa.created_at,
	       g.season_id, b.first_name, b.last_name,
	       COALESCE(p.first_name, ''), COALESCE(p.last_name, '')
	FROM plate_appearances pa
	JOIN games g ON g.id = pa.game_id
	JOIN players b ON b.id = pa.batter_id
	LEFT JOIN players p ON p.id = pa.pitcher_id`

func (r *plateAppearanceRepository) ListByGame(ctx context.Context, gameID int64) ([]model.PlateAppearanceRow, error) {
	return r.listRows(ctx, rowsSelect+` WHERE pa.game_id = $1 ORDER BY pa.id`, gameID)
}

func (r *plateAppearanceRepository) ListBySeason(ctx context.Context, seasonID int64) ([]model.PlateAppearanceRow, error) {
	return r.listRows(ctx, rowsSelect+` WHERE g.season_id = $1 ORDER BY pa.id`, seasonID)
}

func (r *plateAppearanceRepository) listRows(ctx context.Context, sql string, arg int64) ([]model.PlateAppearanceRow, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, sql, arg)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.PlateAppearanceRow, 0)
	for rows.Next() {
		var row model.PlateAppearanceRow
		pa, err := scanPA(rows, &row.SeasonID, &row.BatterFirstName, &row.BatterLastName,
			&row.PitcherFirstName, &row.PitcherLastName)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		row.PlateAppearance = pa
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.PlateAppearanceRepository = (*plateAppearanceRepository)(nil)
