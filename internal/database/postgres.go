package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"kiosk-data/internal/config"
)

// NewPostgresDB opens a PostgreSQL connection and verifies it with a ping.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes the database connection if it is open.
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
