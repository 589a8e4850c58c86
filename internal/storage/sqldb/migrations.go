package sqldb

import (
	"context"
	"database/sql"
	"strings"
)

// schema sets up the tables on startup. It is written in the subset of SQL
// shared by SQLite and PostgreSQL: TEXT for money (decimal strings) and
// dates (YYYY-MM-DD), INTEGER for Unix timestamps.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    current_balance TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_cards (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    available_credit TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS cash_flow_events (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    amount TEXT,
    description TEXT NOT NULL DEFAULT '',
    vendor TEXT NOT NULL DEFAULT '',
    credit_card_id TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    balance_impact_date TEXT,
    impact_date TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL,
    status TEXT NOT NULL,
    payout_date TEXT,
    total_amount TEXT NOT NULL,
    currency TEXT NOT NULL DEFAULT '',
    period_start TEXT,
    period_end TEXT,
    beginning_balance TEXT,
    processing_status TEXT NOT NULL DEFAULT '',
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS income_items (
    id TEXT PRIMARY KEY,
    amount TEXT NOT NULL,
    payment_date TEXT,
    status TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS vendors (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    total_owed TEXT NOT NULL,
    next_payment_date TEXT,
    next_payment_amount TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT '',
    po_name TEXT NOT NULL DEFAULT '',
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_impact_date ON cash_flow_events(impact_date);
CREATE INDEX IF NOT EXISTS idx_settlements_payout_date ON settlements(payout_date);
`

// runMigrations executes the schema setup one statement at a time.
func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
