// Package dbtest opens migrated in-memory databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/database"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Config returns a memory database config with a unique name, so tests
// sharing a process never see each other's rows
func Config() config.DBConfig {
	return config.DBConfig{
		Type:           config.DBTypeMemory,
		Name:           "test_" + uuid.NewString(),
		MigrationsPath: MigrationsPath(),
	}
}

// MigrationsPath locates the repository's migrations directory
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// Open connects to a fresh migrated database that is closed when the test ends
func Open(t *testing.T) (*sqlx.DB, config.DBConfig) {
	t.Helper()

	cfg := Config()
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, cfg).Up())
	return db, cfg
}
