package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

const upsertSettlement = `
INSERT INTO settlements
    (id, account_id, status, payout_date, total_amount, currency, period_start, period_end,
     beginning_balance, processing_status, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    account_id = excluded.account_id,
    status = excluded.status,
    payout_date = excluded.payout_date,
    total_amount = excluded.total_amount,
    currency = excluded.currency,
    period_start = excluded.period_start,
    period_end = excluded.period_end,
    beginning_balance = excluded.beginning_balance,
    processing_status = excluded.processing_status,
    updated_at = excluded.updated_at`

// UpsertSettlements persists settlement records, generating IDs where missing.
func (s *DB) UpsertSettlements(ctx context.Context, records []models.SettlementRecord) error {
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i := range records {
			rec := &records[i]
			if rec.ID == "" {
				rec.ID = uuid.New().String()
			}
			meta := rec.Metadata
			err := s.exec(ctx, tx, upsertSettlement,
				rec.ID, rec.AccountID, string(rec.Status), rec.PayoutDate, rec.TotalAmount, rec.Currency,
				meta.PeriodStart, meta.PeriodEnd, meta.BeginningBalance, meta.ProcessingStatus, now,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert settlement %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

// SettlementRecords retrieves all settlements ordered by payout date.
func (s *DB) SettlementRecords(ctx context.Context) ([]models.SettlementRecord, error) {
	rows, err := s.query(ctx,
		`SELECT id, account_id, status, payout_date, total_amount, currency, period_start, period_end,
		        beginning_balance, processing_status
		 FROM settlements ORDER BY payout_date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var records []models.SettlementRecord
	for rows.Next() {
		var (
			rec        models.SettlementRecord
			status     string
			start, end calendar.Date
		)
		if err := rows.Scan(&rec.ID, &rec.AccountID, &status, &rec.PayoutDate, &rec.TotalAmount, &rec.Currency,
			&start, &end, &rec.Metadata.BeginningBalance, &rec.Metadata.ProcessingStatus); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		rec.Status = models.SettlementStatus(status)
		rec.Metadata.PeriodStart = optionalDate(start)
		rec.Metadata.PeriodEnd = optionalDate(end)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return records, nil
}
