package database

import (
	"context"
	"fmt"

	"github.com/alexivanou/composer-atlas/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect creates a database connection based on configuration using sqlx.
// The caller owns the returned handle and must Close it.
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	driverName := "pgx"
	if cfg.IsMemory() {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A shared-cache in-memory database reports "table is locked" when two pooled
	// connections interleave a read cursor and a write.
	if cfg.IsMemory() {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
