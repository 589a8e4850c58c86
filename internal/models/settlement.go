package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// SettlementStatus is the marketplace's own view of a settlement.
type SettlementStatus string

const (
	SettlementConfirmed  SettlementStatus = "confirmed"
	SettlementEstimated  SettlementStatus = "estimated"
	SettlementForecasted SettlementStatus = "forecasted"
)

// SettlementRecord is a marketplace accounting period and its payout.
type SettlementRecord struct {
	// ID is the unique identifier for the settlement (UUID format when generated here).
	ID string

	// AccountID is the marketplace account the settlement belongs to.
	AccountID string

	Status SettlementStatus

	// PayoutDate is the final payout date for confirmed settlements and the
	// marketplace's estimate otherwise.
	PayoutDate calendar.Date

	// TotalAmount is the payout amount.
	TotalAmount decimal.Decimal

	Currency string

	// Metadata holds the optional raw period fields reported by the marketplace.
	Metadata SettlementMetadata
}

// SettlementMetadata carries the optional raw fields of a settlement.
type SettlementMetadata struct {
	PeriodStart      *calendar.Date
	PeriodEnd        *calendar.Date
	BeginningBalance decimal.NullDecimal
	ProcessingStatus string
}
