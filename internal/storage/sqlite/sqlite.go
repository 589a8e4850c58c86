// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/cashflow/internal/storage/sqldb"
)

// New opens (creating if needed) the SQLite database at dbPath and runs
// migrations. The special path ":memory:" opens a private in-memory database.
func New(dbPath string) (*sqldb.DB, error) {
	if dbPath != ":memory:" {
		// Create parent directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	store, err := sqldb.New(context.Background(), db, sqldb.SQLite)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
