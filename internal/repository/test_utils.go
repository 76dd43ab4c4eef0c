package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voralis/catalogd/internal/database"
)

// NewTestDB creates a new in-memory SQLite database with the catalog schema
// migrated. Each call returns an isolated store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&database.Movie{},
		&database.Series{},
		&database.Season{},
		&database.Episode{},
	)
	require.NoError(t, err)

	return db
}
