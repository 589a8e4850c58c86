package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/internal/storage"
)

const upsertEvent = `
INSERT INTO cash_flow_events
    (id, type, amount, description, vendor, credit_card_id, source, date, balance_impact_date, impact_date, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    type = excluded.type,
    amount = excluded.amount,
    description = excluded.description,
    vendor = excluded.vendor,
    credit_card_id = excluded.credit_card_id,
    source = excluded.source,
    date = excluded.date,
    balance_impact_date = excluded.balance_impact_date,
    impact_date = excluded.impact_date,
    updated_at = excluded.updated_at`

// UpsertEvents persists events, generating IDs where missing.
// Events without a date cannot be placed and are rejected.
func (s *DB) UpsertEvents(ctx context.Context, events []models.CashFlowEvent) error {
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range events {
			e := &events[i]
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			if e.Date.IsZero() {
				return fmt.Errorf("%w: event %q has no date", models.ErrMalformedEvent, e.ID)
			}
			err := s.exec(ctx, tx, upsertEvent,
				e.ID, string(e.Type), e.Amount, e.Description, e.Vendor, e.CreditCardID, e.Source,
				e.Date, e.BalanceImpactDate, e.ImpactDate(), now,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert event %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// Events retrieves events whose impact date lies in r.
func (s *DB) Events(ctx context.Context, r calendar.Range) ([]models.CashFlowEvent, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.query(ctx,
		`SELECT id, type, amount, description, vendor, credit_card_id, source, date, balance_impact_date
		 FROM cash_flow_events
		 WHERE impact_date >= ? AND impact_date <= ?
		 ORDER BY impact_date, id`,
		r.Start, r.End,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.CashFlowEvent
	for rows.Next() {
		var (
			e      models.CashFlowEvent
			typ    string
			impact calendar.Date
		)
		if err := rows.Scan(&e.ID, &typ, &e.Amount, &e.Description, &e.Vendor, &e.CreditCardID,
			&e.Source, &e.Date, &impact); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Type = models.EventType(typ)
		e.BalanceImpactDate = optionalDate(impact)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// DeleteEvent removes an event by ID.
func (s *DB) DeleteEvent(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM cash_flow_events WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}

func optionalDate(d calendar.Date) *calendar.Date {
	if d.IsZero() {
		return nil
	}
	return &d
}
