package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/baseball-scorecard-service/internal/cache"
	"github.com/maxviazov/baseball-scorecard-service/internal/config"
	"github.com/maxviazov/baseball-scorecard-service/internal/handler"
	"github.com/maxviazov/baseball-scorecard-service/internal/logger"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository/memory"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository/postgres"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/migrations"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// storage is the set of repositories one backend provides.
type storage struct {
	seasons repository.SeasonRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	lineups repository.LineupRepository
	pas     repository.PlateAppearanceRepository
	tx      repository.TxManager
	pinger  repository.Pinger
	close   func()
}

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("APP_CONFIG"); p != "" {
		configPath = p
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger = appLogger.With().Str("service", cfg.App.Name).Str("version", cfg.App.Version).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("storage", cfg.App.Storage).Msg("❌ Storage initialization failed")
	}
	defer store.close()

	statsCache, publisher, closeRedis := openRedis(ctx, cfg.Redis, appLogger)
	defer closeRedis()

	services := handler.Services{
		Seasons: service.NewSeasonService(store.seasons, appLogger),
		Teams:   service.NewTeamService(store.teams, store.seasons, appLogger),
		Players: service.NewPlayerService(store.players, store.teams, appLogger),
		Games: service.NewGameService(service.GameDeps{
			Games:   store.games,
			Seasons: store.seasons,
			Teams:   store.teams,
			Players: store.players,
			Lineups: store.lineups,
			Tx:      store.tx,
		}, appLogger),
		PlateAppearances: service.NewPlateAppearanceService(service.PlateAppearanceDeps{
			PlateAppearances: store.pas,
			Games:            store.games,
			Players:          store.players,
			Cache:            statsCache,
			Publisher:        publisher,
		}, appLogger),
		Stats: service.NewStatsService(service.StatsDeps{
			PlateAppearances: store.pas,
			Games:            store.games,
			Seasons:          store.seasons,
			Cache:            statsCache,
		}, cfg.Stats, appLogger),
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(appLogger))
	handler.Register(engine, store.pinger, services)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           handler.WithCORS(engine, cfg.App.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("storage", cfg.App.Storage).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("✅ Service stopped")
}

func openStorage(ctx context.Context, cfg *config.Config, l *zerolog.Logger) (storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		m := memory.New()
		l.Warn().Msg("using in-memory storage, data is lost on restart")
		return storage{
			seasons: m.Seasons(),
			teams:   m.Teams(),
			players: m.Players(),
			games:   m.Games(),
			lineups: m.Lineups(),
			pas:     m.PlateAppearances(),
			tx:      m.TxManager(),
			pinger:  m.Pinger(),
			close:   func() {},
		}, nil
	}

	repo, err := repository.New(ctx, cfg, l)
	if err != nil {
		return storage{}, err
	}
	pool := repo.Pool()
	if cfg.Postgres.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		err := migrations.Up(db)
		_ = db.Close()
		if err != nil {
			repo.Close()
			return storage{}, err
		}
		l.Info().Msg("database migrations applied")
	}
	return storage{
		seasons: postgres.NewSeasonRepository(pool),
		teams:   postgres.NewTeamRepository(pool),
		players: postgres.NewPlayerRepository(pool),
		games:   postgres.NewGameRepository(pool),
		lineups: postgres.NewLineupRepository(pool),
		pas:     postgres.NewPlateAppearanceRepository(pool),
		tx:      postgres.NewTxManager(pool),
		pinger:  postgres.NewPinger(pool),
		close:   repo.Close,
	}, nil
}

// openRedis returns the season cache and the event publisher. Without Redis,
// or when it is unreachable at startup, both degrade to no-ops.
func openRedis(ctx context.Context, cfg config.RedisConfig, l zerolog.Logger) (cache.StatsCache, cache.EventPublisher, func()) {
	if !cfg.Enabled {
		return cache.NopStatsCache{}, cache.NopPublisher{}, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		l.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, stats cache and events disabled")
		_ = client.Close()
		return cache.NopStatsCache{}, cache.NopPublisher{}, func() {}
	}
	l.Info().Str("addr", cfg.Addr).Msg("connected to redis")

	var sc cache.StatsCache = cache.NopStatsCache{}
	if ttl := cfg.CacheTTLDuration(); ttl > 0 {
		sc = cache.NewRedisStatsCache(client, ttl)
	}
	var pub cache.EventPublisher = cache.NopPublisher{}
	if cfg.Stream != "" {
		pub = cache.NewRedisStreamPublisher(client, cfg.Stream, cfg.StreamMaxLen)
	}
	return sc, pub, func() { _ = client.Close() }
}
