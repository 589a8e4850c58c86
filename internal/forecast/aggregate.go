package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

// DailyTotals holds the money moving on one calendar day.
type DailyTotals struct {
	Date    calendar.Date
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
}

// Change is the net effect of the day on the balance.
func (d DailyTotals) Change() decimal.Decimal {
	return d.Inflow.Sub(d.Outflow)
}

// Aggregation is the output of Aggregate.
type Aggregation struct {
	// Days has one entry per day of the requested range, ascending.
	Days []DailyTotals

	// Skipped counts malformed events that were left out.
	Skipped int
}

// Aggregate buckets events by impact date over the inclusive range r.
//
// Algorithm:
// - Allocate one zeroed bucket per day of the range
// - For each valid event whose impact date falls in the range:
//   - type inflow adds its amount to the day's inflow
//   - every other type adds its amount to the day's outflow
//
// - Malformed events are skipped and counted, never fatal
//
// Runs in O(days + events).
func Aggregate(events []models.CashFlowEvent, r calendar.Range) (Aggregation, error) {
	if err := r.Validate(); err != nil {
		return Aggregation{}, err
	}

	days := r.Days()
	buckets := make([]DailyTotals, len(days))
	for i, d := range days {
		buckets[i] = DailyTotals{Date: d, Inflow: decimal.Zero, Outflow: decimal.Zero}
	}

	skipped := 0
	for _, e := range events {
		if err := e.Validate(); err != nil {
			skipped++
			continue
		}
		impact := e.ImpactDate()
		if !r.Contains(impact) {
			continue
		}
		b := &buckets[impact.DaysSince(r.Start)]
		if e.Type == models.EventInflow {
			b.Inflow = b.Inflow.Add(e.Amount.Decimal)
		} else {
			b.Outflow = b.Outflow.Add(e.Amount.Decimal)
		}
	}

	return Aggregation{Days: buckets, Skipped: skipped}, nil
}
