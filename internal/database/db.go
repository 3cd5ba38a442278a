// Package database handles the SQLite store behind the development label server
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB opens ~/.labelpick/labels.db, creating it if needed
func InitDB(ctx context.Context) (*sql.DB, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".labelpick")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return Open(ctx, filepath.Join(dir, "labels.db"))
}

// Open opens the database at path (":memory:" for a throwaway store) and
// runs migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	closeOnErr := func(err error) (*sql.DB, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, err
	}

	// SQLite benefits from a single writer connection, and an in-memory
	// database only exists on the connection that created it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Enable foreign key constraints (required for CASCADE deletions)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		slog.Error("Failed to enable foreign keys", "error", err)
		return closeOnErr(err)
	}

	// Set busy timeout to 5 seconds (SQLite will retry for this duration)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		slog.Error("Failed to set busy timeout", "error", err)
		return closeOnErr(err)
	}

	if err := db.PingContext(ctx); err != nil {
		return closeOnErr(fmt.Errorf("database ping failed: %w", err))
	}

	if err := runMigrations(ctx, db); err != nil {
		return closeOnErr(fmt.Errorf("failed to run migrations: %w", err))
	}

	return db, nil
}
