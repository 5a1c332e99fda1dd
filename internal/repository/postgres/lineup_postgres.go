package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
)

type lineupRepository struct{ pool *pgxpool.Pool }

func NewLineupRepository(pool *pgxpool.Pool) repository.LineupRepository {
	return &lineupRepository{pool: pool}
}

// ReplaceForGame deletes the game's lineup and inserts entries in one batch.
// Callers wrap it in WithinTx so a failed insert leaves the old lineup intact.
func (r *lineupRepository) ReplaceForGame(ctx context.Context, gameID int64, entries []model.LineupEntry) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM lineups WHERE game_id = $1`, gameID); err != nil {
		return repository.MapPgError(err)
	}
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO lineups (game_id, team_id, batting_order, player_id, defensive_position)
			 VALUES ($1, $2, $3, $4, $5)`,
			gameID, e.TeamID, e.BattingOrder, e.PlayerID, e.DefensivePosition,
		)
	}
	br := exec.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return repository.MapPgError(err)
		}
	}
	return nil
}

func (r *lineupRepository) ListByGame(ctx context.Context, gameID int64) ([]model.LineupEntry, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT game_id, team_id, batting_order, player_id, defensive_position
		 FROM lineups WHERE game_id = $1
		 ORDER BY team_id, batting_order`,
		gameID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.LineupEntry, 0, 18)
	for rows.Next() {
		var e model.LineupEntry
		if err := rows.Scan(&e.GameID, &e.TeamID, &e.BattingOrder, &e.PlayerID, &e.DefensivePosition); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.LineupRepository = (*lineupRepository)(nil)
