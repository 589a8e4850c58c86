// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mmynk/cashflow/internal/storage/sqldb"
)

// New connects to PostgreSQL with a lib/pq DSN (URL or key=value form) and
// runs migrations.
func New(ctx context.Context, dsn string) (*sqldb.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	store, err := sqldb.New(ctx, db, sqldb.Postgres)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
