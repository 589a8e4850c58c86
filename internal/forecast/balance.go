package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// BalancePoint is one day of the running-balance timeline.
type BalancePoint struct {
	Date           calendar.Date
	RunningBalance decimal.Decimal
	Inflow         decimal.Decimal
	Outflow        decimal.Decimal
}

// ProjectBalances scans the daily totals forward from today (days[0]).
//
// Day 0 is starting + change(0), or just starting when excludeToday is set
// (today's events are assumed to already be in the real balance). Every later
// day adds its own net change to the previous day's balance. Values are kept
// at full decimal precision; rounding is left to presentation.
func ProjectBalances(starting decimal.Decimal, days []DailyTotals, excludeToday bool) []BalancePoint {
	points := make([]BalancePoint, len(days))
	running := starting
	for i, d := range days {
		if i == 0 {
			if !excludeToday {
				running = running.Add(d.Change())
			}
		} else {
			running = running.Add(d.Change())
		}
		points[i] = BalancePoint{
			Date:           d.Date,
			RunningBalance: running,
			Inflow:         d.Inflow,
			Outflow:        d.Outflow,
		}
	}
	return points
}

// DayBalance is the plain series the opportunity functions work on.
type DayBalance struct {
	Date    calendar.Date
	Balance decimal.Decimal
}

// BalanceSeries strips a projection down to (date, balance) pairs.
func BalanceSeries(points []BalancePoint) []DayBalance {
	series := make([]DayBalance, len(points))
	for i, p := range points {
		series[i] = DayBalance{Date: p.Date, Balance: p.RunningBalance}
	}
	return series
}
