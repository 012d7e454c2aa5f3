package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "TABLE_PREFIX", "DEBUG",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_POOL_SIZE", "DB_MAX_OVERFLOW", "DB_POOL_TIMEOUT",
		"DB_POOL_RECYCLE", "DB_SSL_MODE", "DB_CONNECT_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want dev", cfg.Environment)
	}
	if cfg.TablePrefix != "dev_" {
		t.Errorf("TablePrefix = %q, want dev_", cfg.TablePrefix)
	}
	db := cfg.Database
	if db.Host != "localhost" || db.Port != 5432 {
		t.Errorf("host/port = %s:%d, want localhost:5432", db.Host, db.Port)
	}
	if db.Database != "project_db" || db.Username != "postgres" {
		t.Errorf("db/user = %s/%s, want project_db/postgres", db.Database, db.Username)
	}
	if db.PoolSize != 10 || db.MaxOverflow != 20 {
		t.Errorf("pool size/overflow = %d/%d, want 10/20", db.PoolSize, db.MaxOverflow)
	}
	if db.PoolTimeout != 30*time.Second {
		t.Errorf("PoolTimeout = %v, want 30s", db.PoolTimeout)
	}
	if db.PoolRecycle != 3600*time.Second {
		t.Errorf("PoolRecycle = %v, want 1h", db.PoolRecycle)
	}
	if db.SSLMode != "prefer" {
		t.Errorf("SSLMode = %q, want prefer", db.SSLMode)
	}
	if db.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", db.ConnectTimeout)
	}
	if db.MaxConns() != 30 {
		t.Errorf("MaxConns() = %d, want 30", db.MaxConns())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_POOL_SIZE", "5")
	t.Setenv("TABLE_PREFIX", "")
	os.Unsetenv("TABLE_PREFIX")

	cfg := Load()

	if cfg.TablePrefix != "prod_" {
		t.Errorf("TablePrefix = %q, want prod_", cfg.TablePrefix)
	}
	if cfg.Debug {
		t.Error("Debug = true in prod by default")
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.PoolSize != 5 {
		t.Errorf("PoolSize = %d, want 5", cfg.Database.PoolSize)
	}
}

func TestTablePrefix(t *testing.T) {
	tests := []struct {
		env      string
		override string
		want     string
	}{
		{env: "dev", want: "dev_"},
		{env: "test", want: "test_"},
		{env: "prod", want: "prod_"},
		{env: "anything-else", want: "dev_"},
		{env: "prod", override: "custom_", want: "custom_"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.override, func(t *testing.T) {
			if tt.override != "" {
				t.Setenv("TABLE_PREFIX", tt.override)
			} else {
				t.Setenv("TABLE_PREFIX", "")
				os.Unsetenv("TABLE_PREFIX")
			}
			if got := getTablePrefix(tt.env); got != tt.want {
				t.Errorf("getTablePrefix(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
environment: test
database:
  host: pg.test
  port: 5433
  database: library_test
  username: tester
  pool_size: 3
  pool_timeout: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Environment != "test" || cfg.TablePrefix != "test_" {
		t.Errorf("env/prefix = %s/%s, want test/test_", cfg.Environment, cfg.TablePrefix)
	}
	db := cfg.Database
	if db.Host != "pg.test" || db.Port != 5433 {
		t.Errorf("host/port = %s:%d, want pg.test:5433", db.Host, db.Port)
	}
	if db.Database != "library_test" || db.Username != "tester" {
		t.Errorf("db/user = %s/%s", db.Database, db.Username)
	}
	if db.PoolSize != 3 || db.PoolTimeout != 5*time.Second {
		t.Errorf("pool size/timeout = %d/%v, want 3/5s", db.PoolSize, db.PoolTimeout)
	}
	// Unset fields fall back to the env defaults.
	if db.MaxOverflow != 20 || db.SSLMode != "prefer" {
		t.Errorf("overflow/sslmode = %d/%s, want 20/prefer", db.MaxOverflow, db.SSLMode)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() on a missing file returned nil error")
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	valid := DatabaseConfig{
		Host: "localhost", Port: 5432, Database: "d", Username: "u",
		PoolSize: 1, SSLMode: "prefer",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid config = %v", err)
	}

	bad := valid
	bad.SSLMode = "sometimes"
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted an unknown ssl mode")
	}

	noHost := valid
	noHost.Host = ""
	if err := noHost.Validate(); err == nil {
		t.Error("Validate() accepted an empty host")
	}
}

func TestConnString(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, Database: "library", Username: "postgres",
		Password: "secret", SSLMode: "prefer", ConnectTimeout: 10 * time.Second,
	}
	want := "host=localhost port=5432 dbname=library user=postgres password=secret sslmode=prefer connect_timeout=10"
	if got := c.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}
