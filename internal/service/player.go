package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, teams repository.TeamRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, teams: teams, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, teamID int64, firstName, lastName string, handedness *string) (model.Player, error) {
	start := time.Now()
	rawFirst, rawLast := firstName, lastName

	ferrs := checkID("team_id", teamID, nil)
	ferrs = checkName("first_name", &firstName, maxPlayerName, ferrs)
	ferrs = checkName("last_name", &lastName, maxPlayerName, ferrs)
	hand, ok := normalizeHandedness(handedness)
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "handedness", Message: "must be one of R, L, S"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Str("fn_raw", rawFirst).Str("ln_raw", rawLast).Msg("player validation failed")
		return model.Player{}, err
	}

	// Existence check improves client UX vs deferring to FK violation.
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Player{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "team does not exist"}})
		}
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{TeamID: teamID, FirstName: firstName, LastName: lastName, Handedness: hand})
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Str("fn", firstName).Str("ln", lastName).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.players.GetByID(ctx, id)
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int64, page repository.Page) (repository.PageResult[model.Player], error) {
	if teamID <= 0 {
		return repository.PageResult[model.Player]{}, newInvalidInput([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p := page.Normalize()
	res, err := s.players.ListByTeam(ctx, teamID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}
