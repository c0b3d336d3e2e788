// Package repotest opens throwaway stores for tests
package repotest

import (
	"testing"

	"hbnb/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database private to t
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// Every new connection to :memory: is a fresh, empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(repository.Models()...))
	return gdb
}

// NewStore returns a GormStore over OpenDB
func NewStore(t testing.TB) *repository.GormStore {
	t.Helper()
	return repository.NewGormStore(OpenDB(t))
}
