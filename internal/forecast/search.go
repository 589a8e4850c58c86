package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// SearchByAmount answers "when can I afford to spend amount": the first
// opportunity, in date order, whose balance covers amount. The boolean is
// false when no opportunity in the series is large enough.
func SearchByAmount(ops []BuyingOpportunity, amount decimal.Decimal) (BuyingOpportunity, bool) {
	for _, op := range ops {
		if op.Balance.GreaterThanOrEqual(amount) {
			return op, true
		}
	}
	return BuyingOpportunity{}, false
}

// DateMatch is the result of SearchByDate.
type DateMatch struct {
	Opportunity BuyingOpportunity

	// CanPurchase reports whether the queried day is on or after the
	// opportunity's available date.
	CanPurchase bool
}

// SearchByDate answers "how much can I safely spend on date": the first
// opportunity whose [AvailableDate, Date] window contains date. The boolean is
// false when no window contains it.
func SearchByDate(ops []BuyingOpportunity, date calendar.Date) (DateMatch, bool) {
	for _, op := range ops {
		window := calendar.Range{Start: op.AvailableDate, End: op.Date}
		if window.Contains(date) {
			return DateMatch{
				Opportunity: op,
				CanPurchase: !date.Before(op.AvailableDate),
			}, true
		}
	}
	return DateMatch{}, false
}
