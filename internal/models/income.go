package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// IncomeStatus tracks whether expected income has arrived.
type IncomeStatus string

const (
	IncomeReceived IncomeStatus = "received"
	IncomePending  IncomeStatus = "pending"
	IncomeOverdue  IncomeStatus = "overdue"
)

// IncomeItem is expected or received income outside marketplace settlements.
type IncomeItem struct {
	ID          string
	Amount      decimal.Decimal
	PaymentDate calendar.Date
	Status      IncomeStatus
	Description string

	// Source is the customer or channel the income comes from.
	Source string
}
