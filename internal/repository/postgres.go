package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/maxviazov/baseball-scorecard-service/internal/config"
	"github.com/rs/zerolog"
)

const connectTimeout = 5 * time.Second

// Repository owns the pgx connection pool shared by all Postgres repositories.
type Repository struct {
	pool *pgxpool.Pool
}

// DSN builds a postgres:// URL from the config, escaping credentials properly.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// New creates the pool, wires the zerolog tracer and verifies connectivity.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Repository, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	pg := cfg.Postgres

	poolConfig, err := pgxpool.ParseConfig(DSN(pg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(*logger, pg.LogSQLArgs),
		LogLevel: traceLevel(*logger),
	}

	poolConfig.MaxConns = pg.MaxConns
	poolConfig.MinConns = pg.MinConns
	poolConfig.MaxConnLifetime = time.Duration(pg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(pg.MaxConnIdleTime) * time.Second
	poolConfig.HealthCheckPeriod = time.Duration(pg.HealthCheckPeriod) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	// bounded ping so startup doesn't hang on an unreachable database
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info().
		Str("host", pg.Host).
		Int("port", pg.Port).
		Str("user", pg.User).
		Str("db", pg.DBName).
		Msg("Successfully connected to PostgreSQL")

	return &Repository{pool: pool}, nil
}

// Pool exposes the underlying pool to the postgres repository constructors.
func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

// Close releases every connection held by the pool.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
