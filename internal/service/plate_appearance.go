package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/cache"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/rs/zerolog"
)

type plateAppearanceService struct {
	pas       repository.PlateAppearanceRepository
	games     repository.GameRepository
	players   repository.PlayerRepository
	cache     cache.StatsCache
	publisher cache.EventPublisher
	log       zerolog.Logger
}

// PlateAppearanceDeps groups the collaborators of the ingestion service.
// Nil Cache or Publisher fall back to no-ops.
type PlateAppearanceDeps struct {
	PlateAppearances repository.PlateAppearanceRepository
	Games            repository.GameRepository
	Players          repository.PlayerRepository
	Cache            cache.StatsCache
	Publisher        cache.EventPublisher
}

func NewPlateAppearanceService(d PlateAppearanceDeps, logger zerolog.Logger) PlateAppearanceService {
	l := logger.With().Str("module", "service").Str("component", "plate_appearance").Logger()
	s := &plateAppearanceService{
		pas:       d.PlateAppearances,
		games:     d.Games,
		players:   d.Players,
		cache:     d.Cache,
		publisher: d.Publisher,
		log:       l,
	}
	if s.cache == nil {
		s.cache = cache.NopStatsCache{}
	}
	if s.publisher == nil {
		s.publisher = cache.NopPublisher{}
	}
	return s
}

// normalizePlateAppearance canonicalizes free-form fields and collects structural errors.
func normalizePlateAppearance(in model.PlateAppearance) (model.PlateAppearance, []FieldError) {
	var ferrs []FieldError
	ferrs = checkID("game_id", in.GameID, ferrs)
	ferrs = checkID("batter_id", in.BatterID, ferrs)
	if in.PitcherID != nil && *in.PitcherID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "pitcher_id", Message: "must be > 0"})
	}
	if in.Inning < 1 {
		ferrs = append(ferrs, FieldError{Field: "inning", Message: "must be >= 1"})
	}
	in.Half = stats.Half(strings.ToLower(strings.TrimSpace(string(in.Half))))
	if !in.Half.Valid() {
		ferrs = append(ferrs, FieldError{Field: "half", Message: "must be one of top|bottom"})
	}
	if r, err := stats.ParseResult(string(in.Result)); err != nil {
		ferrs = append(ferrs, FieldError{Field: "result", Message: "must be one of 1B|2B|3B|HR|BB|HBP|K|SF|OUT"})
	} else {
		in.Result = r
	}
	if in.RBIs < 0 {
		ferrs = append(ferrs, FieldError{Field: "rbis", Message: "must be >= 0"})
	}
	in.Notes = trimOptional(in.Notes)
	if in.Notes != nil && runeLen(*in.Notes) > maxNotesLen {
		ferrs = append(ferrs, FieldError{Field: "notes", Message: "at most 250 characters"})
	}
	in.ClientEventID = trimOptional(in.ClientEventID)
	if in.ClientEventID != nil && len(*in.ClientEventID) > maxClientEventLen {
		ferrs = append(ferrs, FieldError{Field: "client_event_id", Message: "at most 64 characters"})
	}
	in.ID = 0
	in.CreatedAt = time.Time{}
	return in, ferrs
}

// RecordPlateAppearance stores one plate appearance. When a client event id is
// supplied and already recorded for the game, the stored record is returned
// with created=false, including when a concurrent insert wins the race.
func (s *plateAppearanceService) RecordPlateAppearance(ctx context.Context, in model.PlateAppearance) (model.PlateAppearance, bool, error) {
	start := time.Now()
	pa, ferrs := normalizePlateAppearance(in)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("plate appearance validation failed (structure)")
		return model.PlateAppearance{}, false, err
	}

	if pa.ClientEventID != nil {
		existing, err := s.pas.GetByClientEventID(ctx, pa.GameID, *pa.ClientEventID)
		switch {
		case err == nil:
			s.log.Debug().Int64("pa_id", existing.ID).Str("client_event_id", *pa.ClientEventID).Msg("plate appearance replayed")
			return existing, false, nil
		case !errors.Is(err, repository.ErrNotFound):
			return model.PlateAppearance{}, false, err
		}
	}

	game, err := s.checkReferences(ctx, pa)
	if err != nil {
		return model.PlateAppearance{}, false, err
	}

	out, err := s.pas.Create(ctx, pa)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) && pa.ClientEventID != nil {
			existing, getErr := s.pas.GetByClientEventID(ctx, pa.GameID, *pa.ClientEventID)
			if getErr == nil {
				s.log.Debug().Int64("pa_id", existing.ID).Msg("plate appearance insert lost race, returning stored record")
				return existing, false, nil
			}
		}
		s.log.Error().Err(err).Int64("game_id", pa.GameID).Msg("record plate appearance failed")
		return model.PlateAppearance{}, false, err
	}

	// Derived state is best-effort: the record is already durable.
	if err := s.cache.InvalidateSeason(ctx, game.SeasonID); err != nil {
		s.log.Warn().Err(err).Int64("season_id", game.SeasonID).Msg("stats cache invalidation failed")
	}
	ev := cache.PlateAppearanceEvent{Type: cache.EventPlateAppearanceRecorded, SeasonID: game.SeasonID, PlateAppearance: out}
	if err := s.publisher.PublishPlateAppearance(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int64("pa_id", out.ID).Msg("plate appearance event publish failed")
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Int64("pa_id", out.ID).
		Int64("game_id", out.GameID).
		Str("result", string(out.Result)).
		Msg("plate appearance recorded")
	return out, true, nil
}

func (s *plateAppearanceService) checkReferences(ctx context.Context, pa model.PlateAppearance) (model.Game, error) {
	var ferrs []FieldError
	game, err := s.games.GetByID(ctx, pa.GameID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return model.Game{}, err
		}
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "game does not exist"})
	}
	ok, err := s.players.Exists(ctx, pa.BatterID)
	if err != nil {
		return model.Game{}, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "batter_id", Message: "player does not exist"})
	}
	if pa.PitcherID != nil {
		ok, err := s.players.Exists(ctx, *pa.PitcherID)
		if err != nil {
			return model.Game{}, err
		}
		if !ok {
			ferrs = append(ferrs, FieldError{Field: "pitcher_id", Message: "player does not exist"})
		}
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("plate appearance validation failed (existence)")
		return model.Game{}, err
	}
	return game, nil
}
