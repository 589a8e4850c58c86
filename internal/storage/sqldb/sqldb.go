// Package sqldb implements storage.Store on top of database/sql. The SQLite
// and PostgreSQL packages open a connection with their driver and hand it to
// New together with the matching Dialect.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/cashflow/internal/storage"
)

// Ensure DB implements storage.Store
var _ storage.Store = (*DB)(nil)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	Name string

	// Numbered placeholders ($1, $2, ...) instead of "?".
	Numbered bool
}

var (
	SQLite   = Dialect{Name: "sqlite"}
	Postgres = Dialect{Name: "postgres", Numbered: true}
)

// DB implements storage.Store using database/sql.
type DB struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New wraps an open connection and runs migrations. On error the connection
// is left open for the caller to close.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*DB, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach %s database: %w: %w", dialect.Name, storage.ErrUnavailable, err)
	}
	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &DB{db: db, dialect: dialect, now: time.Now}, nil
}

// Close closes the database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// rebind rewrites "?" placeholders for dialects that number them.
func (s *DB) rebind(query string) string {
	if !s.dialect.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *DB) exec(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	_, err := tx.ExecContext(ctx, s.rebind(query), args...)
	return err
}

func (s *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return rows, nil
}

// inTx runs fn inside a transaction, committing on success.
func (s *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", storage.ErrUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
