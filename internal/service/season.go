package service

import (
	"context"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/rs/zerolog"
)

type seasonService struct {
	repo repository.SeasonRepository
	log  zerolog.Logger
}

func NewSeasonService(repo repository.SeasonRepository, logger zerolog.Logger) SeasonService {
	l := logger.With().Str("module", "service").Str("component", "season").Logger()
	return &seasonService{repo: repo, log: l}
}

func (s *seasonService) CreateSeason(ctx context.Context, name string, year int) (model.Season, error) {
	start := time.Now()
	ferrs := checkName("name", &name, maxSeasonName, nil)
	if year < minSeasonYear || year > maxSeasonYear {
		ferrs = append(ferrs, FieldError{Field: "year", Message: "must be between 1800 and 2200"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("season validation failed")
		return model.Season{}, err
	}

	out, err := s.repo.Create(ctx, model.Season{Name: name, Year: year})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create season failed")
		return model.Season{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("season_id", out.ID).Msg("season created")
	return out, nil
}

func (s *seasonService) GetSeason(ctx context.Context, id int64) (model.Season, error) {
	if id <= 0 {
		return model.Season{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *seasonService) ListSeasons(ctx context.Context, page repository.Page) (repository.PageResult[model.Season], error) {
	p := page.Normalize()
	res, err := s.repo.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list seasons failed")
		return repository.PageResult[model.Season]{}, err
	}
	return res, nil
}
