package repository

import (
	"context"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SeasonRepository declares persistence operations for seasons.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type SeasonRepository interface {
	Create(ctx context.Context, s model.Season) (model.Season, error)
	GetByID(ctx context.Context, id int64) (model.Season, error)
	List(ctx context.Context, p Page) (PageResult[model.Season], error)
}

// TeamRepository declares persistence operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id int64) (model.Team, error)
	ListBySeason(ctx context.Context, seasonID int64, p Page) (PageResult[model.Team], error)
}

// PlayerRepository declares persistence operations for players.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	ListByTeam(ctx context.Context, teamID int64, p Page) (PageResult[model.Player], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// GameRepository declares persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	List(ctx context.Context, p Page) (PageResult[model.Game], error)
}

// LineupRepository stores batting orders. A game's lineup is always replaced
// as a whole, never patched slot by slot.
type LineupRepository interface {
	ReplaceForGame(ctx context.Context, gameID int64, entries []model.LineupEntry) error
	ListByGame(ctx context.Context, gameID int64) ([]model.LineupEntry, error)
}

// PlateAppearanceRepository stores plate appearances and serves the snapshots
// the stats engine folds over. List methods return rows in insertion order.
type PlateAppearanceRepository interface {
	Create(ctx context.Context, pa model.PlateAppearance) (model.PlateAppearance, error)
	// GetByClientEventID returns ErrNotFound when no record carries the id within the game.
	GetByClientEventID(ctx context.Context, gameID int64, clientEventID string) (model.PlateAppearance, error)
	ListByGame(ctx context.Context, gameID int64) ([]model.PlateAppearanceRow, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]model.PlateAppearanceRow, error)
}
