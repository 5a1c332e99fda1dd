package service

import (
	"context"
	"math"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/cache"
	"github.com/maxviazov/baseball-scorecard-service/internal/config"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/rs/zerolog"
)

const (
	defaultQueryTimeout = 5 * time.Second
	defaultBoardLimit   = 10
	defaultMaxLimit     = 100
)

type statsService struct {
	pas     repository.PlateAppearanceRepository
	games   repository.GameRepository
	seasons repository.SeasonRepository
	cache   cache.StatsCache
	cfg     config.StatsConfig
	timeout time.Duration
	log     zerolog.Logger
}

// StatsDeps groups the collaborators of the stats service. A nil Cache
// disables caching.
type StatsDeps struct {
	PlateAppearances repository.PlateAppearanceRepository
	Games            repository.GameRepository
	Seasons          repository.SeasonRepository
	Cache            cache.StatsCache
}

func NewStatsService(d StatsDeps, cfg config.StatsConfig, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	c := d.Cache
	if c == nil {
		c = cache.NopStatsCache{}
	}
	timeout := cfg.QueryTimeoutDuration()
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultBoardLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaultMaxLimit
	}
	return &statsService{
		pas:     d.PlateAppearances,
		games:   d.Games,
		seasons: d.Seasons,
		cache:   c,
		cfg:     cfg,
		timeout: timeout,
		log:     l,
	}
}

// fetch bounds the record read with the query timeout; the fold itself runs
// on an already materialized slice.
func (s *statsService) fetch(ctx context.Context, list func(context.Context) ([]model.PlateAppearanceRow, error)) ([]stats.PlateAppearance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := list(ctx)
	if err != nil {
		return nil, err
	}
	return toEngineRecords(rows), nil
}

func (s *statsService) gameRecords(ctx context.Context, gameID int64) ([]stats.PlateAppearance, error) {
	if gameID <= 0 {
		return nil, newInvalidInput([]FieldError{{Field: "game_id", Message: "must be > 0"}})
	}
	if _, err := s.games.GetByID(ctx, gameID); err != nil {
		return nil, err
	}
	return s.fetch(ctx, func(ctx context.Context) ([]model.PlateAppearanceRow, error) {
		return s.pas.ListByGame(ctx, gameID)
	})
}

func (s *statsService) seasonRecords(ctx context.Context, seasonID int64) ([]stats.PlateAppearance, error) {
	return s.fetch(ctx, func(ctx context.Context) ([]model.PlateAppearanceRow, error) {
		return s.pas.ListBySeason(ctx, seasonID)
	})
}

func (s *statsService) checkSeason(ctx context.Context, seasonID int64) error {
	if seasonID <= 0 {
		return newInvalidInput([]FieldError{{Field: "season_id", Message: "must be > 0"}})
	}
	_, err := s.seasons.GetByID(ctx, seasonID)
	return err
}

func (s *statsService) BoxScore(ctx context.Context, gameID int64) (model.BoxScore, error) {
	records, err := s.gameRecords(ctx, gameID)
	if err != nil {
		return model.BoxScore{}, err
	}
	batting, err := stats.ComputeBatting(records)
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Msg("box score computation failed")
		return model.BoxScore{}, err
	}
	return model.BoxScore{GameID: gameID, Batting: batting}, nil
}

func (s *statsService) GamePitching(ctx context.Context, gameID int64) (model.GamePitching, error) {
	records, err := s.gameRecords(ctx, gameID)
	if err != nil {
		return model.GamePitching{}, err
	}
	pitching, err := stats.ComputePitching(records)
	if err != nil {
		s.log.Error().Err(err).Int64("game_id", gameID).Msg("game pitching computation failed")
		return model.GamePitching{}, err
	}
	return model.GamePitching{GameID: gameID, Pitching: pitching}, nil
}

func (s *statsService) SeasonBatting(ctx context.Context, seasonID int64) ([]stats.PlayerStats, error) {
	if err := s.checkSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	return cached(ctx, s, seasonID, cache.KindBatting, stats.ComputeBatting)
}

func (s *statsService) SeasonPitching(ctx context.Context, seasonID int64) ([]stats.PitcherStats, error) {
	if err := s.checkSeason(ctx, seasonID); err != nil {
		return nil, err
	}
	return cached(ctx, s, seasonID, cache.KindPitching, stats.ComputePitching)
}

// cached serves a season computation from the cache, computing and storing it
// on a miss. The entry is stored under the generation observed before the rows
// were read, so a plate appearance recorded in between leaves it unreachable.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *statsService, seasonID int64, kind cache.Kind, compute func([]stats.PlateAppearance) ([]T, error)) ([]T, error) {
	var out []T
	gen, hit, err := s.cache.Get(ctx, seasonID, kind, &out)
	store := err == nil
	if err != nil {
		s.log.Warn().Err(err).Int64("season_id", seasonID).Str("kind", string(kind)).Msg("stats cache read failed")
	}
	if hit && out != nil {
		return out, nil
	}

	records, err := s.seasonRecords(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	out, err = compute(records)
	if err != nil {
		s.log.Error().Err(err).Int64("season_id", seasonID).Str("kind", string(kind)).Msg("season computation failed")
		return nil, err
	}
	if !store {
		return out, nil
	}
	if err := s.cache.Set(ctx, seasonID, kind, gen, out); err != nil {
		s.log.Warn().Err(err).Int64("season_id", seasonID).Str("kind", string(kind)).Msg("stats cache write failed")
	}
	return out, nil
}

func (s *statsService) limit(q *int, ferrs []FieldError) (int, []FieldError) {
	limit := s.cfg.DefaultLimit
	if q != nil {
		limit = *q
	}
	if limit < 1 || limit > s.cfg.MaxLimit {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: "out of range"})
	}
	return limit, ferrs
}

func (s *statsService) BattingLeaderboard(ctx context.Context, seasonID int64, q LeaderboardQuery) ([]stats.PlayerStats, error) {
	var ferrs []FieldError
	metric := string(stats.DefaultMetric)
	if q.Metric != "" {
		metric = q.Metric
		if !stats.IsValidMetric(metric) {
			ferrs = append(ferrs, FieldError{Field: "metric", Message: "must be one of avg|obp|slg|ops"})
		}
	}
	minAB := s.cfg.DefaultMinAtBats
	if q.MinAtBats != nil {
		minAB = *q.MinAtBats
	}
	if minAB < 0 {
		ferrs = append(ferrs, FieldError{Field: "min_ab", Message: "must be >= 0"})
	}
	limit, ferrs := s.limit(q.Limit, ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		return nil, err
	}

	all, err := s.SeasonBatting(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return stats.RankBatting(all, metric, minAB, limit), nil
}

func (s *statsService) PitchingLeaderboard(ctx context.Context, seasonID int64, q LeaderboardQuery) ([]stats.PitcherStats, error) {
	var ferrs []FieldError
	minIP := s.cfg.DefaultMinInnings
	if q.MinInnings != nil {
		minIP = *q.MinInnings
	}
	switch {
	case math.IsNaN(minIP) || math.IsInf(minIP, 0):
		ferrs = append(ferrs, FieldError{Field: "min_ip", Message: "must be a finite number"})
	case minIP < 0:
		ferrs = append(ferrs, FieldError{Field: "min_ip", Message: "must be >= 0"})
	}
	limit, ferrs := s.limit(q.Limit, ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		return nil, err
	}

	all, err := s.SeasonPitching(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return stats.RankPitching(all, minIP, limit), nil
}
