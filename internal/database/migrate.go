package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
)

// Migrator provisions the schema on an already opened connection.
// The migrate instance is built once and reused; the postgres driver pins
// one pooled connection for its lifetime.
type Migrator struct {
	db  *sqlx.DB
	cfg config.DBConfig

	mu       sync.Mutex
	instance *migrate.Migrate
}

// NewMigrator creates a migrator for the given connection
func NewMigrator(db *sqlx.DB, cfg config.DBConfig) *Migrator {
	return &Migrator{db: db, cfg: cfg}
}

// SourceURL returns the migration source for the configured database type
func SourceURL(cfg config.DBConfig) string {
	dir := "postgres"
	if cfg.IsMemory() {
		dir = "sqlite"
	}
	return "file://" + filepath.ToSlash(filepath.Join(cfg.MigrationsPath, dir))
}

// Instance returns the migrate instance bound to the open connection.
// Closing it closes the underlying connection too.
func (m *Migrator) Instance() (*migrate.Migrate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.instance != nil {
		return m.instance, nil
	}
	mi, err := m.newInstance()
	if err != nil {
		return nil, err
	}
	m.instance = mi
	return mi, nil
}

func (m *Migrator) newInstance() (*migrate.Migrate, error) {
	// Use driver instances directly to avoid DSN parsing issues with in-memory SQLite
	if m.cfg.IsMemory() {
		driver, err := sqlite3.WithInstance(m.db.DB, &sqlite3.Config{})
		if err != nil {
			return nil, fmt.Errorf("could not create sqlite driver: %w", err)
		}
		mi, err := migrate.NewWithDatabaseInstance(SourceURL(m.cfg), "sqlite3", driver)
		if err != nil {
			return nil, fmt.Errorf("could not create migrate instance: %w", err)
		}
		return mi, nil
	}

	driver, err := postgres.WithInstance(m.db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create postgres driver: %w", err)
	}
	mi, err := migrate.NewWithDatabaseInstance(SourceURL(m.cfg), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return mi, nil
}

// Up applies all pending migrations. Running it on an up to date schema is a no-op.
func (m *Migrator) Up() error {
	mi, err := m.Instance()
	if err != nil {
		return err
	}
	if err := mi.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
