package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/rs/zerolog"
)

type gameService struct {
	games   repository.GameRepository
	seasons repository.SeasonRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	lineups repository.LineupRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

// GameDeps groups the repositories the game service coordinates.
type GameDeps struct {
	Games   repository.GameRepository
	Seasons repository.SeasonRepository
	Teams   repository.TeamRepository
	Players repository.PlayerRepository
	Lineups repository.LineupRepository
	Tx      repository.TxManager
}

func NewGameService(d GameDeps, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{
		games:   d.Games,
		seasons: d.Seasons,
		teams:   d.Teams,
		players: d.Players,
		lineups: d.Lineups,
		tx:      d.Tx,
		log:     l,
	}
}

// CreateGame validates the matchup and stores it. A zero start time means "now".
func (s *gameService) CreateGame(ctx context.Context, seasonID, homeID, awayID int64, start time.Time, status string) (model.Game, error) {
	ferrs := checkID("season_id", seasonID, nil)
	ferrs = checkID("home_team_id", homeID, ferrs)
	ferrs = checkID("away_team_id", awayID, ferrs)
	if homeID > 0 && awayID > 0 && homeID == awayID {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "home and away must differ"})
	}
	statusNorm, ok := normalizeGameStatus(status)
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of live|final"})
	}

	// Early exit if basic structure is invalid, before touching the database.
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed (structure)")
		return model.Game{}, err
	}

	// Existence checks before attempting persistence.
	var existenceErrs []FieldError
	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return model.Game{}, err
		}
		existenceErrs = append(existenceErrs, FieldError{Field: "season_id", Message: "season does not exist"})
	}
	for _, side := range []struct {
		field string
		id    int64
	}{{"home_team_id", homeID}, {"away_team_id", awayID}} {
		team, err := s.teams.GetByID(ctx, side.id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			existenceErrs = append(existenceErrs, FieldError{Field: side.field, Message: "team does not exist"})
		case err != nil:
			return model.Game{}, err
		case team.SeasonID != seasonID:
			existenceErrs = append(existenceErrs, FieldError{Field: side.field, Message: "team belongs to another season"})
		}
	}
	if err := newInvalidInput(existenceErrs); err != nil {
		s.log.Debug().Interface("field_errors", existenceErrs).Msg("game validation failed (existence)")
		return model.Game{}, err
	}

	out, err := s.games.Create(ctx, model.Game{
		SeasonID:   seasonID,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		StartTime:  start,
		Status:     statusNorm,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("home_id", homeID).Int64("away_id", awayID).Msg("create game failed")
		return model.Game{}, err
	}
	s.log.Info().Int64("game_id", out.ID).Int64("season_id", seasonID).Msg("game created")
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	if id <= 0 {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error) {
	p := page.Normalize()
	res, err := s.games.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list games failed")
		return repository.PageResult[model.Game]{}, err
	}
	return res, nil
}

type lineupSlot struct {
	team  int64
	order int
}

// SetLineup replaces the whole lineup of a game. Entries may only reference
// the game's two teams; batting orders run 1..9 and are unique per team.
func (s *gameService) SetLineup(ctx context.Context, gameID int64, entries []model.LineupEntry) ([]model.LineupEntry, error) {
	if gameID <= 0 {
		return nil, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var ferrs []FieldError
	seen := make(map[lineupSlot]struct{}, len(entries))
	clean := make([]model.LineupEntry, 0, len(entries))
	for i, e := range entries {
		prefix := fmt.Sprintf("entries[%d].", i)
		if e.TeamID != game.HomeTeamID && e.TeamID != game.AwayTeamID {
			ferrs = append(ferrs, FieldError{Field: prefix + "team_id", Message: "team is not playing in this game"})
		}
		if e.BattingOrder < 1 || e.BattingOrder > maxBattingOrder {
			ferrs = append(ferrs, FieldError{Field: prefix + "batting_order", Message: "must be between 1 and 9"})
		} else {
			slot := lineupSlot{e.TeamID, e.BattingOrder}
			if _, dup := seen[slot]; dup {
				ferrs = append(ferrs, FieldError{Field: prefix + "batting_order", Message: "duplicate batting order for team"})
			}
			seen[slot] = struct{}{}
		}
		ferrs = checkID(prefix+"player_id", e.PlayerID, ferrs)
		if pos := trimOptional(e.DefensivePosition); pos != nil {
			up := strings.ToUpper(*pos)
			if runeLen(up) > maxPositionLen {
				ferrs = append(ferrs, FieldError{Field: prefix + "defensive_position", Message: "at most 3 characters"})
			}
			e.DefensivePosition = &up
		} else {
			e.DefensivePosition = nil
		}
		e.GameID = gameID
		clean = append(clean, e)
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Int64("game_id", gameID).Msg("lineup validation failed")
		return nil, err
	}

	for i, e := range clean {
		ok, err := s.players.Exists(ctx, e.PlayerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("entries[%d].player_id", i), Message: "player does not exist"})
		}
	}
	if err := newInvalidInput(ferrs); err != nil {
		return nil, err
	}

	var out []model.LineupEntry
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lineups.ReplaceForGame(ctx, gameID, clean); err != nil {
			return err
		}
		stored, err := s.lineups.ListByGame(ctx, gameID)
		if err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Msg("set lineup failed")
		return nil, err
	}
	s.log.Info().Int64("game_id", gameID).Int("entries", len(out)).Msg("lineup replaced")
	return out, nil
}

func (s *gameService) GetLineup(ctx context.Context, gameID int64) ([]model.LineupEntry, error) {
	if gameID <= 0 {
		return nil, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		return nil, err
	}
	return s.lineups.ListByGame(ctx, gameID)
}
