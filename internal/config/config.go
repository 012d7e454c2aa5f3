package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds the connection and pool settings for PostgreSQL.
type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	// PoolSize is the steady-state pool size; MaxOverflow conns beyond it
	// may be opened under load. PoolTimeout bounds the wait for a free
	// connection before the operation fails with a pool-exhausted error.
	PoolSize    int
	MaxOverflow int
	PoolTimeout time.Duration

	// PoolRecycle bounds a connection's lifetime before it is replaced.
	PoolRecycle time.Duration

	SSLMode        string
	ConnectTimeout time.Duration
}

// Config is the full application configuration.
type Config struct {
	Environment string
	TablePrefix string
	Debug       bool
	Database    DatabaseConfig
}

// Validate checks the database settings.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.PoolSize, validation.Min(1)),
		validation.Field(&c.MaxOverflow, validation.Min(0)),
		validation.Field(&c.SSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
	)
}

// ConnString renders the settings as a keyword/value DSN understood by pgx.
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode,
		int(c.ConnectTimeout.Seconds()),
	)
}

// MaxConns is the hard pool ceiling: steady size plus overflow.
func (c *DatabaseConfig) MaxConns() int32 {
	return int32(c.PoolSize + c.MaxOverflow)
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment: env,
		TablePrefix: getTablePrefix(env),
		Debug:       getEnv("DEBUG", defaultDebug(env)) == "true",
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			Database:       getEnv("DB_NAME", "project_db"),
			Username:       getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			PoolSize:       getEnvInt("DB_POOL_SIZE", 10),
			MaxOverflow:    getEnvInt("DB_MAX_OVERFLOW", 20),
			PoolTimeout:    time.Duration(getEnvInt("DB_POOL_TIMEOUT", 30)) * time.Second,
			PoolRecycle:    time.Duration(getEnvInt("DB_POOL_RECYCLE", 3600)) * time.Second,
			SSLMode:        getEnv("DB_SSL_MODE", "prefer"),
			ConnectTimeout: time.Duration(getEnvInt("DB_CONNECT_TIMEOUT", 10)) * time.Second,
		},
	}
}

// fileConfig mirrors the YAML layout; durations are given in seconds.
type fileConfig struct {
	Environment string `yaml:"environment"`
	TablePrefix string `yaml:"table_prefix"`
	Debug       bool   `yaml:"debug"`
	Database    struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		Database       string `yaml:"database"`
		Username       string `yaml:"username"`
		Password       string `yaml:"password"`
		PoolSize       int    `yaml:"pool_size"`
		MaxOverflow    int    `yaml:"max_overflow"`
		PoolTimeout    int    `yaml:"pool_timeout"`
		PoolRecycle    int    `yaml:"pool_recycle"`
		SSLMode        string `yaml:"ssl_mode"`
		ConnectTimeout int    `yaml:"connect_timeout"`
	} `yaml:"database"`
}

// LoadFile reads configuration from a YAML file. Fields left empty fall back
// to the same defaults as Load.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	env := fc.Environment
	if env == "" {
		env = "dev"
	}
	prefix := fc.TablePrefix
	if prefix == "" {
		prefix = getTablePrefix(env)
	}

	cfg := &Config{
		Environment: env,
		TablePrefix: prefix,
		Debug:       fc.Debug,
		Database: DatabaseConfig{
			Host:           orDefault(fc.Database.Host, "localhost"),
			Port:           orDefaultInt(fc.Database.Port, 5432),
			Database:       orDefault(fc.Database.Database, "project_db"),
			Username:       orDefault(fc.Database.Username, "postgres"),
			Password:       fc.Database.Password,
			PoolSize:       orDefaultInt(fc.Database.PoolSize, 10),
			MaxOverflow:    orDefaultInt(fc.Database.MaxOverflow, 20),
			PoolTimeout:    time.Duration(orDefaultInt(fc.Database.PoolTimeout, 30)) * time.Second,
			PoolRecycle:    time.Duration(orDefaultInt(fc.Database.PoolRecycle, 3600)) * time.Second,
			SSLMode:        orDefault(fc.Database.SSLMode, "prefer"),
			ConnectTimeout: time.Duration(orDefaultInt(fc.Database.ConnectTimeout, 10)) * time.Second,
		},
	}

	return cfg, nil
}

func defaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix for the environment.
// TABLE_PREFIX overrides the derived value.
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
