package forecast

import (
	"sort"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

// DefaultCycleDays is the observed length of a bi-weekly marketplace settlement.
const DefaultCycleDays = 14

// SettlementState is the engine's classification of a settlement period.
type SettlementState int

const (
	// SettlementUnclassified means the record lacks the fields needed to decide.
	// Such records are left out of open-settlement views; it is not an error.
	SettlementUnclassified SettlementState = iota
	SettlementOpen
	SettlementClosed
)

func (s SettlementState) String() string {
	switch s {
	case SettlementOpen:
		return "OPEN"
	case SettlementClosed:
		return "CLOSED"
	default:
		return "UNCLASSIFIED"
	}
}

// Classification is the result of classifying one settlement record.
type Classification struct {
	Record models.SettlementRecord
	State  SettlementState

	// ArrivalDate is the actual (closed) or projected (open) payout arrival.
	ArrivalDate calendar.Date

	// ProjectedEnd is set for open settlements only.
	ProjectedEnd calendar.Date
}

// Classifier decides whether settlement periods are open or closed.
// The zero value uses DefaultCycleDays for every account.
type Classifier struct {
	// CycleDays is the assumed settlement period length for open periods.
	CycleDays int

	// CycleDaysByAccount overrides CycleDays per marketplace account, for
	// accounts that settle on a different cadence (e.g. daily).
	CycleDaysByAccount map[string]int
}

func (c Classifier) cycleFor(accountID string) int {
	if n, ok := c.CycleDaysByAccount[accountID]; ok && n > 0 {
		return n
	}
	if c.CycleDays > 0 {
		return c.CycleDays
	}
	return DefaultCycleDays
}

// Classify applies the settlement rules in order:
//   - confirmed: CLOSED, arriving the day after PeriodEnd (or on PayoutDate
//     when the period end is unknown); with neither date it stays UNCLASSIFIED
//   - estimated, period started, not ended, today within [PeriodStart, PayoutDate]:
//     OPEN, projected to end (and arrive) PeriodStart + cycle length
//   - anything else: UNCLASSIFIED
func (c Classifier) Classify(rec models.SettlementRecord, today calendar.Date) Classification {
	out := Classification{Record: rec, State: SettlementUnclassified}
	meta := rec.Metadata

	switch rec.Status {
	case models.SettlementConfirmed:
		switch {
		case meta.PeriodEnd != nil && !meta.PeriodEnd.IsZero():
			out.ArrivalDate = meta.PeriodEnd.AddDays(1)
		case !rec.PayoutDate.IsZero():
			out.ArrivalDate = rec.PayoutDate
		default:
			// No day to place the payout on.
			return out
		}
		out.State = SettlementClosed

	case models.SettlementEstimated:
		hasStart := meta.PeriodStart != nil && !meta.PeriodStart.IsZero()
		hasEnd := meta.PeriodEnd != nil && !meta.PeriodEnd.IsZero()
		if !hasStart || hasEnd || rec.PayoutDate.IsZero() {
			break
		}
		if rec.PayoutDate.Before(today) || today.Before(*meta.PeriodStart) {
			break
		}
		end := meta.PeriodStart.AddDays(c.cycleFor(rec.AccountID))
		out.State = SettlementOpen
		out.ProjectedEnd = end
		out.ArrivalDate = end
	}

	return out
}

// OpenSettlements classifies every record and returns the OPEN ones ordered by
// arrival date (ties by ID).
func (c Classifier) OpenSettlements(records []models.SettlementRecord, today calendar.Date) []Classification {
	var open []Classification
	for _, rec := range records {
		cl := c.Classify(rec, today)
		if cl.State == SettlementOpen {
			open = append(open, cl)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if cmp := open[i].ArrivalDate.Compare(open[j].ArrivalDate); cmp != 0 {
			return cmp < 0
		}
		return open[i].Record.ID < open[j].Record.ID
	})
	return open
}
