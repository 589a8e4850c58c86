// Package storage provides abstractions for the data the sync collaborators
// produce and the forecast engine reads.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

var (
	// ErrNotFound is returned when a record addressed by ID does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNoBalance is returned by StartingBalance when no account is connected.
	// It is distinct from a connected account with a zero balance.
	ErrNoBalance = errors.New("no account balance available")

	// ErrUnavailable wraps failures to reach the backing store. A valid but
	// empty result is never reported with this error.
	ErrUnavailable = errors.New("data source unavailable")
)

// Source is the read side the engine consumes. Implementations return stable
// orderings so identical data yields identical snapshots.
type Source interface {
	// Events returns the events whose impact date falls in r, ordered by
	// impact date then ID.
	Events(ctx context.Context, r calendar.Range) ([]models.CashFlowEvent, error)

	// StartingBalance returns today's balance across connected accounts.
	StartingBalance(ctx context.Context) (decimal.Decimal, error)

	// TotalAvailableCredit returns the credit available now across all cards.
	TotalAvailableCredit(ctx context.Context) (decimal.Decimal, error)

	// SettlementRecords returns every marketplace settlement, ordered by payout date.
	SettlementRecords(ctx context.Context) ([]models.SettlementRecord, error)

	// IncomeItems returns every tracked income item.
	IncomeItems(ctx context.Context) ([]models.IncomeItem, error)

	// Vendors returns every vendor with its next scheduled payment.
	Vendors(ctx context.Context) ([]models.Vendor, error)
}

// Store is the full read/write interface used by the sync service.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	Source

	// UpsertEvents inserts or replaces events by ID. Events without an ID get one.
	UpsertEvents(ctx context.Context, events []models.CashFlowEvent) error

	// DeleteEvent removes an event by ID, returning ErrNotFound if absent.
	DeleteEvent(ctx context.Context, id string) error

	// UpsertSettlements inserts or replaces settlements by ID.
	UpsertSettlements(ctx context.Context, records []models.SettlementRecord) error

	// UpsertAccount inserts or replaces a bank account.
	UpsertAccount(ctx context.Context, account *models.Account) error

	// UpsertCreditCard inserts or replaces a credit card.
	UpsertCreditCard(ctx context.Context, card *models.CreditCard) error

	// UpsertIncomeItems inserts or replaces income items by ID.
	UpsertIncomeItems(ctx context.Context, items []models.IncomeItem) error

	// UpsertVendors inserts or replaces vendors by ID.
	UpsertVendors(ctx context.Context, vendors []models.Vendor) error

	// Close releases any resources held by the store.
	Close() error
}
