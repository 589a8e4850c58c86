package forecast

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

type creditMove struct {
	date  calendar.Date
	delta decimal.Decimal // negative for draws, positive for payments
}

// creditMoves keeps the valid card draws and payments, sorted by impact date.
func creditMoves(events []models.CashFlowEvent) []creditMove {
	var moves []creditMove
	for _, e := range events {
		if e.Validate() != nil {
			continue
		}
		switch {
		case e.IsCreditPayment():
			moves = append(moves, creditMove{date: e.ImpactDate(), delta: e.Amount.Decimal})
		case e.IsCreditDraw():
			moves = append(moves, creditMove{date: e.ImpactDate(), delta: e.Amount.Decimal.Neg()})
		}
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].date.Before(moves[j].date) })
	return moves
}

// AvailableCreditOn computes the credit available on day d directly:
//
//	max(0, totalNow - sum(draws on or before d) + sum(payments on or before d))
func AvailableCreditOn(totalNow decimal.Decimal, events []models.CashFlowEvent, d calendar.Date) decimal.Decimal {
	avail := totalNow
	for _, m := range creditMoves(events) {
		if m.date.After(d) {
			break
		}
		avail = avail.Add(m.delta)
	}
	return floorZero(avail)
}

// ProjectCredit returns the available credit for each of the ascending days.
// It walks a single sorted list of draws and payments alongside the days, so
// the cost is O(days + events log events) instead of O(days * events).
func ProjectCredit(totalNow decimal.Decimal, events []models.CashFlowEvent, days []calendar.Date) []decimal.Decimal {
	moves := creditMoves(events)
	out := make([]decimal.Decimal, len(days))

	running := totalNow
	next := 0
	for i, d := range days {
		for next < len(moves) && !moves[next].date.After(d) {
			running = running.Add(moves[next].delta)
			next++
		}
		out[i] = floorZero(running)
	}
	return out
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
