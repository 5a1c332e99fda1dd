package config

import (
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/logger"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres PostgresConfig      `mapstructure:"postgres" validate:"-"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Stats    StatsConfig         `mapstructure:"stats"`
}

type AppConfig struct {
	Name            string   `mapstructure:"name" validate:"required"`
	Version         string   `mapstructure:"version"`
	Env             string   `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int      `mapstructure:"port" validate:"min=1,max=65535"`
	Storage         string   `mapstructure:"storage" validate:"oneof=postgres memory"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout" validate:"min=1"` // seconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// ShutdownTimeoutDuration converts the configured seconds into a time.Duration.
func (a AppConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(a.ShutdownTimeout) * time.Second
}

type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"dbname" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
	MigrateOnStart    bool   `mapstructure:"migrate_on_start"`
	LogSQLArgs        bool   `mapstructure:"log_sql_args"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db" validate:"min=0"`
	CacheTTL     int    `mapstructure:"cache_ttl" validate:"min=0"` // seconds, 0 disables caching
	Stream       string `mapstructure:"stream"`
	StreamMaxLen int64  `mapstructure:"stream_max_len" validate:"min=0"`
}

// CacheTTLDuration converts the configured seconds into a time.Duration.
func (r RedisConfig) CacheTTLDuration() time.Duration {
	return time.Duration(r.CacheTTL) * time.Second
}

// StatsConfig holds leaderboard defaults and the time budget for fetching
// the records a computation folds over.
type StatsConfig struct {
	DefaultMinAtBats  int     `mapstructure:"default_min_at_bats" validate:"min=0"`
	DefaultMinInnings float64 `mapstructure:"default_min_innings" validate:"min=0"`
	DefaultLimit      int     `mapstructure:"default_limit" validate:"min=1"`
	MaxLimit          int     `mapstructure:"max_limit" validate:"min=1,gtefield=DefaultLimit"`
	QueryTimeout      int     `mapstructure:"query_timeout" validate:"min=1"` // seconds
}

// QueryTimeoutDuration converts the configured seconds into a time.Duration.
func (s StatsConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(s.QueryTimeout) * time.Second
}
