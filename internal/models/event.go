package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// ErrMalformedEvent marks an event the engine cannot place on the timeline.
var ErrMalformedEvent = errors.New("malformed cash flow event")

// EventType classifies the direction of a cash flow event.
type EventType string

const (
	EventInflow        EventType = "inflow"
	EventOutflow       EventType = "outflow"
	EventCreditPayment EventType = "credit-payment"
	EventPurchaseOrder EventType = "purchase-order"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventInflow, EventOutflow, EventCreditPayment, EventPurchaseOrder:
		return true
	}
	return false
}

// Event sources set by the normalizers.
const (
	SourceConfirmedPayout  = "confirmed-payout"
	SourceForecastedPayout = "forecasted-payout"
	SourceIncome           = "income"
	SourcePurchaseOrder    = "purchase-order"
)

// CashFlowEvent is a single dated movement of money.
type CashFlowEvent struct {
	// ID is the unique identifier for the event (UUID format when generated here).
	ID string

	// Type is the direction of the movement. Only inflow raises the balance.
	Type EventType

	// Amount is the non-negative size of the movement.
	// Invalid (NULL) when the upstream record carried no amount.
	Amount decimal.NullDecimal

	Description string

	// Vendor is the counterparty name for outflows and purchase orders.
	Vendor string

	// CreditCardID is set when the event is drawn on (or pays) a credit card.
	CreditCardID string

	// Source tags where the event came from, e.g. "confirmed-payout".
	Source string

	// Date is the recorded date of the event.
	Date calendar.Date

	// BalanceImpactDate overrides Date when funds move on a different day,
	// e.g. marketplace payouts that post the day after a settlement closes.
	BalanceImpactDate *calendar.Date
}

// ImpactDate is the calendar day on which the event changes the balance.
func (e CashFlowEvent) ImpactDate() calendar.Date {
	if e.BalanceImpactDate != nil && !e.BalanceImpactDate.IsZero() {
		return *e.BalanceImpactDate
	}
	return e.Date
}

// IsCreditDraw reports whether the event consumes card credit.
func (e CashFlowEvent) IsCreditDraw() bool {
	return e.CreditCardID != "" && e.Type != EventCreditPayment
}

// IsCreditPayment reports whether the event restores card credit.
func (e CashFlowEvent) IsCreditPayment() bool {
	return e.Type == EventCreditPayment
}

// Validate returns an error wrapping ErrMalformedEvent if the event has no
// amount, a negative amount, no date or an unknown type.
func (e CashFlowEvent) Validate() error {
	switch {
	case !e.Amount.Valid:
		return fmt.Errorf("%w: event %q has no amount", ErrMalformedEvent, e.ID)
	case e.Amount.Decimal.IsNegative():
		return fmt.Errorf("%w: event %q has negative amount %s", ErrMalformedEvent, e.ID, e.Amount.Decimal)
	case e.Date.IsZero():
		return fmt.Errorf("%w: event %q has no date", ErrMalformedEvent, e.ID)
	case !e.Type.Valid():
		return fmt.Errorf("%w: event %q has unknown type %q", ErrMalformedEvent, e.ID, e.Type)
	}
	return nil
}

// NewAmount wraps a decimal as a present amount.
func NewAmount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
