package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_POSTGRES_USER", "APP_POSTGRES_PASSWORD", "APP_POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DB_USER", "DB_PASSWORD", "DB_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	// Minimal YAML; secrets will come from ENV
	yaml := `
app:
  name: baseball-scorecard-service
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1

redis:
  enabled: true
  addr: 127.0.0.1:6379
  cache_ttl: 120

stats:
  default_min_at_bats: 3
  default_min_innings: 1.5
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)

	// Provide required secrets via ENV using the canonical APP_* names
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != 18080 || cfg.App.Storage != config.StoragePostgres {
		t.Fatalf("unexpected app section: port=%d storage=%q", cfg.App.Port, cfg.App.Storage)
	}
	if cfg.Postgres.User != "testuser" || cfg.Postgres.Password != "testpass" || cfg.Postgres.DBName != "testdb" {
		t.Fatalf("env overrides not applied: got user=%q pass=%q db=%q", cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	}
	if cfg.Postgres.Host != "127.0.0.1" || cfg.Postgres.MaxConns != 5 || !cfg.Postgres.MigrateOnStart {
		t.Fatalf("yaml values or defaults not loaded: host=%q max_conns=%d migrate=%v", cfg.Postgres.Host, cfg.Postgres.MaxConns, cfg.Postgres.MigrateOnStart)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTLDuration() != 2*time.Minute || cfg.Redis.Stream != "plate_appearances.recorded" {
		t.Fatalf("unexpected redis section: %+v", cfg.Redis)
	}
	if cfg.Stats.DefaultMinAtBats != 3 || cfg.Stats.DefaultMinInnings != 1.5 || cfg.Stats.DefaultLimit != 10 || cfg.Stats.QueryTimeoutDuration() != 5*time.Second {
		t.Fatalf("unexpected stats section: %+v", cfg.Stats)
	}
}

func TestConfigLoad_AliasEnv(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: dev\n")
	clearSecrets(t)
	t.Setenv("POSTGRES_USER", "alias")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "scores")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.User != "alias" || cfg.Postgres.Password != "secret" || cfg.Postgres.DBName != "scores" {
		t.Fatalf("aliases not applied: %+v", cfg.Postgres)
	}
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	yaml := `
app:
  name: abc
  env: test

postgres:
  host: localhost
`
	path := writeTempConfig(t, yaml)
	clearSecrets(t)

	_, err := config.Load(path)
	if err == nil {
		t.Fatalf("expected error when required env are missing, got nil")
	}
}

func TestConfigLoad_MemoryStorageSkipsPostgres(t *testing.T) {
	path := writeTempConfig(t, "app:\n  env: test\n  storage: memory\n")
	clearSecrets(t)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("memory storage should not require postgres secrets: %v", err)
	}
	if cfg.App.Storage != config.StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.App.Storage)
	}
}

func TestConfigLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad env":         "app:\n  env: qa\n  storage: memory\n",
		"bad storage":     "app:\n  env: test\n  storage: sqlite\n",
		"limit above max": "app:\n  env: test\n  storage: memory\nstats:\n  default_limit: 50\n  max_limit: 20\n",
		"missing file":    "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearSecrets(t)
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if content != "" {
				path = writeTempConfig(t, content)
			}
			if _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}
