package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/rs/zerolog"
)

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	repo    repository.TeamRepository
	seasons repository.SeasonRepository
	log     zerolog.Logger
}

func NewTeamService(repo repository.TeamRepository, seasons repository.SeasonRepository, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{repo: repo, seasons: seasons, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, seasonID int64, name string) (model.Team, error) {
	start := time.Now()
	original := name
	ferrs := checkID("season_id", seasonID, nil)
	ferrs = checkName("name", &name, maxTeamName, ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", original).Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, err
	}

	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Team{}, newInvalidInput([]FieldError{{Field: "season_id", Message: "season does not exist"}})
		}
		return model.Team{}, err
	}

	out, err := s.repo.Create(ctx, model.Team{SeasonID: seasonID, Name: name})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("team_id", out.ID).Msg("team created")
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

// ListTeamsBySeason returns ErrNotFound for an unknown season rather than an empty page.
func (s *teamService) ListTeamsBySeason(ctx context.Context, seasonID int64, page repository.Page) (repository.PageResult[model.Team], error) {
	if seasonID <= 0 {
		return repository.PageResult[model.Team]{}, newInvalidInput([]FieldError{{Field: "season_id", Message: "must be > 0"}})
	}
	if _, err := s.seasons.GetByID(ctx, seasonID); err != nil {
		return repository.PageResult[model.Team]{}, err
	}
	p := page.Normalize()
	res, err := s.repo.ListBySeason(ctx, seasonID, p)
	if err != nil {
		s.log.Error().Err(err).Int64("season_id", seasonID).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list teams failed")
		return repository.PageResult[model.Team]{}, err
	}
	return res, nil
}
