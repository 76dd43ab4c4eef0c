package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voralis/catalogd/internal/config"
	"github.com/voralis/catalogd/internal/logger"
)

// Connect opens the store described by cfg.Database.URL and applies pool
// settings. The caller owns the handle; there is no package-level singleton.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	url := cfg.Database.URL
	if url == "" {
		return nil, fmt.Errorf("no store connection string configured")
	}

	logLevel := gormlogger.Warn
	if cfg.Database.LogQueries {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		// Unique-index violations surface as gorm.ErrDuplicatedKey on both
		// drivers so the catalog can report them as validation failures.
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		db, err = gorm.Open(postgres.Open(url), gormCfg)
	case strings.HasPrefix(url, "sqlite://"):
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(url, "sqlite://")), gormCfg)
	default:
		// Bare paths (including :memory:) are treated as SQLite files.
		db, err = gorm.Open(sqlite.Open(url), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info("store connected", "driver", driverName(url))
	return db, nil
}

// Migrate creates or updates the catalog schema, including the composite
// unique indexes backing the natural keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Movie{}, &Series{}, &Season{}, &Episode{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Ping verifies store connectivity within the given context.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func driverName(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}
