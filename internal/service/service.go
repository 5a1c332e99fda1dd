// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
// Handlers use it for malformed path and query parameters.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

func newInvalidInput(fe []FieldError) error { return NewInvalidInputError(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SeasonService defines season-oriented use cases.
type SeasonService interface {
	CreateSeason(ctx context.Context, name string, year int) (model.Season, error)
	GetSeason(ctx context.Context, id int64) (model.Season, error)
	ListSeasons(ctx context.Context, page repository.Page) (repository.PageResult[model.Season], error)
}

// TeamService defines team-oriented use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, seasonID int64, name string) (model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	ListTeamsBySeason(ctx context.Context, seasonID int64, page repository.Page) (repository.PageResult[model.Team], error)
}

// PlayerService defines player-oriented use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, teamID int64, firstName, lastName string, handedness *string) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error)
}

// GameService defines game and lineup use cases.
type GameService interface {
	CreateGame(ctx context.Context, seasonID, homeID, awayID int64, start time.Time, status string) (model.Game, error)
	GetGame(ctx context.Context, id int64) (model.Game, error)
	ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error)
	SetLineup(ctx context.Context, gameID int64, entries []model.LineupEntry) ([]model.LineupEntry, error)
	GetLineup(ctx context.Context, gameID int64) ([]model.LineupEntry, error)
}

// PlateAppearanceService records plate appearances. created is false when an
// earlier record with the same client event id was returned instead.
type PlateAppearanceService interface {
	RecordPlateAppearance(ctx context.Context, in model.PlateAppearance) (out model.PlateAppearance, created bool, err error)
}

// LeaderboardQuery carries optional leaderboard parameters; nil fields fall
// back to the configured defaults.
type LeaderboardQuery struct {
	Metric     string
	MinAtBats  *int
	MinInnings *float64
	Limit      *int
}

// StatsService computes batting and pitching lines from recorded plate appearances.
type StatsService interface {
	BoxScore(ctx context.Context, gameID int64) (model.BoxScore, error)
	GamePitching(ctx context.Context, gameID int64) (model.GamePitching, error)
	SeasonBatting(ctx context.Context, seasonID int64) ([]stats.PlayerStats, error)
	SeasonPitching(ctx context.Context, seasonID int64) ([]stats.PitcherStats, error)
	BattingLeaderboard(ctx context.Context, seasonID int64, q LeaderboardQuery) ([]stats.PlayerStats, error)
	PitchingLeaderboard(ctx context.Context, seasonID int64, q LeaderboardQuery) ([]stats.PitcherStats, error)
}
