package app

import (
	"database/sql"
	"fmt"

	"github.com/hmartins/capitolpulse/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open.
var sqlOpener = sql.Open

// InitPostgres opens a PostgreSQL connection pool from the configuration and
// verifies connectivity with a ping.
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests
// to avoid real connections.
var postgresOpener = InitPostgres
