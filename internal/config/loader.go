package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, applies APP_* environment overrides and
// validates the result. Postgres credentials are usually supplied through the
// environment only, so they are bound explicitly with a few common aliases.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindSecrets(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "baseball-scorecard-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.storage", StoragePostgres)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)
	v.SetDefault("postgres.migrate_on_start", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache_ttl", 300)
	v.SetDefault("redis.stream", "plate_appearances.recorded")
	v.SetDefault("redis.stream_max_len", 10000)

	v.SetDefault("stats.default_min_at_bats", 1)
	v.SetDefault("stats.default_min_innings", 0.0)
	v.SetDefault("stats.default_limit", 10)
	v.SetDefault("stats.max_limit", 100)
	v.SetDefault("stats.query_timeout", 5)
}

func bindSecrets(v *viper.Viper) error {
	bindings := [][]string{
		{"postgres.user", "APP_POSTGRES_USER", "POSTGRES_USER", "DB_USER"},
		{"postgres.password", "APP_POSTGRES_PASSWORD", "POSTGRES_PASSWORD", "DB_PASSWORD"},
		{"postgres.dbname", "APP_POSTGRES_DB", "POSTGRES_DB", "DB_NAME"},
		{"redis.password", "APP_REDIS_PASSWORD", "REDIS_PASSWORD"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("bind env %s: %w", b[0], err)
		}
	}
	return nil
}

func validate(cfg *Config) error {
	val := validator.New()
	if err := val.Struct(cfg); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	// Postgres settings only matter when it is the selected backend.
	if cfg.App.Storage == StoragePostgres {
		if err := val.Struct(cfg.Postgres); err != nil {
			return fmt.Errorf("postgres config validation error: %w", err)
		}
	}
	return nil
}
