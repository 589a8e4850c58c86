package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// BuyingOpportunity is a local minimum of the balance timeline.
type BuyingOpportunity struct {
	// Date is the day of the local minimum.
	Date calendar.Date

	// Balance is the balance at the minimum: the amount that can be spent
	// without the balance on Date going negative.
	Balance decimal.Decimal

	// AvailableDate is the earliest day from which spending Balance keeps
	// every balance up to and including Date non-negative. Never after Date.
	AvailableDate calendar.Date
}

// ExtractOpportunities finds the local minima of a day-ordered balance series.
//
// Algorithm:
// - Split the series into runs of adjacent days with equal balance
// - A run is a local minimum when the nearest differing day on each side is
//   higher, or the run touches that end of the series
// - Each minimum run yields one opportunity on its first day, so the result
//   is strictly increasing in date and flat maxima never qualify
// - AvailableDate walks back from that day while the previous day's balance
//   is still >= the minimum; it stops at the first day that dipped below it
func ExtractOpportunities(series []DayBalance) []BuyingOpportunity {
	var out []BuyingOpportunity
	n := len(series)

	for start := 0; start < n; {
		b := series[start].Balance
		end := start
		for end+1 < n && series[end+1].Balance.Equal(b) {
			end++
		}

		isMin := (start == 0 || series[start-1].Balance.GreaterThan(b)) &&
			(end == n-1 || series[end+1].Balance.GreaterThan(b))
		if isMin {
			j := start
			for j > 0 && series[j-1].Balance.GreaterThanOrEqual(b) {
				j--
			}
			out = append(out, BuyingOpportunity{
				Date:          series[start].Date,
				Balance:       b,
				AvailableDate: series[j].Date,
			})
		}
		start = end + 1
	}
	return out
}
