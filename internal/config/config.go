// Package config loads the application configuration from an optional YAML
// file with environment variable overrides. A store connection string is
// mandatory; the process must not come up without one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host" env:"CATALOGD_HOST"`
	Port           int           `yaml:"port" env:"CATALOGD_PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"CATALOGD_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"CATALOGD_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CATALOGD_REQUEST_TIMEOUT"`
	EnableCORS     bool          `yaml:"enable_cors" env:"CATALOGD_ENABLE_CORS"`
}

// DatabaseConfig holds store connection settings. URL selects the driver:
// "sqlite://<path>" (or a bare path) for SQLite, "postgres://..." for
// PostgreSQL.
type DatabaseConfig struct {
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	LogQueries      bool          `yaml:"log_queries" env:"DB_LOG_QUERIES"`
}

// CatalogConfig holds behavior switches for the catalog core.
//
// StrictRefs controls referential validation on child creation: when true, a
// season must reference an existing series and an episode an existing
// season. When false the original permissive behavior applies (children may
// be created before their parent; cascade cleanup still works).
//
// CascadeTransactions wraps each cascade delete in a store transaction. When
// disabled the cascade is a best-effort sequence and partial failures are
// reported explicitly.
type CatalogConfig struct {
	StrictRefs          bool `yaml:"strict_refs" env:"CATALOGD_STRICT_REFS"`
	CascadeTransactions bool `yaml:"cascade_transactions" env:"CATALOGD_CASCADE_TX"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default returns a configuration with all default values set. The database
// URL has no default on purpose.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 15 * time.Second,
			EnableCORS:     true,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 2 * time.Hour,
		},
		Catalog: CatalogConfig{
			StrictRefs:          true,
			CascadeTransactions: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at
// path, and environment overrides, in that order. A .env file in the working
// directory is honored if present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it is a development convenience.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that would make the process unusable.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required (set DATABASE_URL); refusing to start without a store connection string")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "CATALOGD_HOST")
	setInt(&cfg.Server.Port, "CATALOGD_PORT")
	setDuration(&cfg.Server.ReadTimeout, "CATALOGD_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, "CATALOGD_WRITE_TIMEOUT")
	setDuration(&cfg.Server.RequestTimeout, "CATALOGD_REQUEST_TIMEOUT")
	setBool(&cfg.Server.EnableCORS, "CATALOGD_ENABLE_CORS")

	setString(&cfg.Database.URL, "DATABASE_URL")
	setInt(&cfg.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	setInt(&cfg.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	setDuration(&cfg.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	setBool(&cfg.Database.LogQueries, "DB_LOG_QUERIES")

	setBool(&cfg.Catalog.StrictRefs, "CATALOGD_STRICT_REFS")
	setBool(&cfg.Catalog.CascadeTransactions, "CATALOGD_CASCADE_TX")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
