package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/internal/storage"
)

// UpsertAccount persists a bank account balance.
func (s *DB) UpsertAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		err := s.exec(ctx, tx,
			`INSERT INTO accounts (id, name, current_balance, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			     name = excluded.name,
			     current_balance = excluded.current_balance,
			     updated_at = excluded.updated_at`,
			account.ID, account.Name, account.CurrentBalance, s.now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert account: %w", err)
		}
		return nil
	})
}

// UpsertCreditCard persists a card's available credit.
func (s *DB) UpsertCreditCard(ctx context.Context, card *models.CreditCard) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		err := s.exec(ctx, tx,
			`INSERT INTO credit_cards (id, name, available_credit, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			     name = excluded.name,
			     available_credit = excluded.available_credit,
			     updated_at = excluded.updated_at`,
			card.ID, card.Name, card.AvailableCredit, s.now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert credit card: %w", err)
		}
		return nil
	})
}

// StartingBalance sums the current balance of every account.
func (s *DB) StartingBalance(ctx context.Context) (decimal.Decimal, error) {
	total, n, err := s.sumColumn(ctx, "SELECT current_balance FROM accounts")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balances: %w", err)
	}
	if n == 0 {
		return decimal.Zero, storage.ErrNoBalance
	}
	return total, nil
}

// TotalAvailableCredit sums available credit across cards. No cards means zero.
func (s *DB) TotalAvailableCredit(ctx context.Context) (decimal.Decimal, error) {
	total, _, err := s.sumColumn(ctx, "SELECT available_credit FROM credit_cards")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read credit: %w", err)
	}
	return total, nil
}

// sumColumn adds up a single decimal column in Go; SQL SUM over TEXT would
// go through floating point.
func (s *DB) sumColumn(ctx context.Context, query string) (decimal.Decimal, int, error) {
	rows, err := s.query(ctx, query)
	if err != nil {
		return decimal.Zero, 0, err
	}
	defer rows.Close()

	total := decimal.Zero
	n := 0
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return decimal.Zero, 0, err
		}
		total = total.Add(v)
		n++
	}
	return total, n, rows.Err()
}

// UpsertIncomeItems persists income items, generating IDs where missing.
func (s *DB) UpsertIncomeItems(ctx context.Context, items []models.IncomeItem) error {
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range items {
			item := &items[i]
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			err := s.exec(ctx, tx,
				`INSERT INTO income_items (id, amount, payment_date, status, description, source, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT (id) DO UPDATE SET
				     amount = excluded.amount,
				     payment_date = excluded.payment_date,
				     status = excluded.status,
				     description = excluded.description,
				     source = excluded.source,
				     updated_at = excluded.updated_at`,
				item.ID, item.Amount, item.PaymentDate, string(item.Status), item.Description, item.Source, now,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert income item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

// IncomeItems retrieves all income items ordered by payment date.
func (s *DB) IncomeItems(ctx context.Context) ([]models.IncomeItem, error) {
	rows, err := s.query(ctx,
		`SELECT id, amount, payment_date, status, description, source
		 FROM income_items ORDER BY payment_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list income items: %w", err)
	}
	defer rows.Close()

	var items []models.IncomeItem
	for rows.Next() {
		var (
			item   models.IncomeItem
			status string
		)
		if err := rows.Scan(&item.ID, &item.Amount, &item.PaymentDate, &status, &item.Description, &item.Source); err != nil {
			return nil, fmt.Errorf("failed to scan income item: %w", err)
		}
		item.Status = models.IncomeStatus(status)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income items: %w", err)
	}
	return items, nil
}

// UpsertVendors persists vendors, generating IDs where missing.
func (s *DB) UpsertVendors(ctx context.Context, vendors []models.Vendor) error {
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range vendors {
			v := &vendors[i]
			if v.ID == "" {
				v.ID = uuid.New().String()
			}
			err := s.exec(ctx, tx,
				`INSERT INTO vendors (id, name, total_owed, next_payment_date, next_payment_amount, status, po_name, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT (id) DO UPDATE SET
				     name = excluded.name,
				     total_owed = excluded.total_owed,
				     next_payment_date = excluded.next_payment_date,
				     next_payment_amount = excluded.next_payment_amount,
				     status = excluded.status,
				     po_name = excluded.po_name,
				     updated_at = excluded.updated_at`,
				v.ID, v.Name, v.TotalOwed, v.NextPaymentDate, v.NextPaymentAmount, v.Status, v.POName, now,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert vendor %s: %w", v.ID, err)
			}
		}
		return nil
	})
}

// Vendors retrieves all vendors ordered by next payment date.
func (s *DB) Vendors(ctx context.Context) ([]models.Vendor, error) {
	rows, err := s.query(ctx,
		`SELECT id, name, total_owed, next_payment_date, next_payment_amount, status, po_name
		 FROM vendors ORDER BY next_payment_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.TotalOwed, &v.NextPaymentDate, &v.NextPaymentAmount, &v.Status, &v.POName); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendors: %w", err)
	}
	return vendors, nil
}
