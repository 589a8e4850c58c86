package forecast

import (
	"fmt"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

// SettlementEvents turns marketplace settlements into payout inflows.
//
//   - CLOSED settlements become confirmed payouts recorded on PayoutDate and
//     hitting the balance on the classified arrival date
//   - OPEN settlements become forecasted payouts on the projected end
//   - forecasted settlements paying out today or later become forecasted payouts
//     on PayoutDate
//
// Unclassified records produce nothing.
func (c Classifier) SettlementEvents(records []models.SettlementRecord, today calendar.Date) []models.CashFlowEvent {
	var events []models.CashFlowEvent
	for _, rec := range records {
		cl := c.Classify(rec, today)
		ev := models.CashFlowEvent{
			ID:          "settlement:" + rec.ID,
			Type:        models.EventInflow,
			Amount:      models.NewAmount(rec.TotalAmount),
			Description: settlementDescription(rec),
		}

		switch {
		case cl.State == SettlementClosed:
			arrival := cl.ArrivalDate
			ev.Source = models.SourceConfirmedPayout
			ev.Date = rec.PayoutDate
			if ev.Date.IsZero() {
				ev.Date = arrival
			}
			ev.BalanceImpactDate = &arrival
		case cl.State == SettlementOpen:
			ev.Source = models.SourceForecastedPayout
			ev.Date = cl.ArrivalDate
		case rec.Status == models.SettlementForecasted && !rec.PayoutDate.IsZero() && !rec.PayoutDate.Before(today):
			ev.Source = models.SourceForecastedPayout
			ev.Date = rec.PayoutDate
		default:
			continue
		}
		events = append(events, ev)
	}
	return events
}

func settlementDescription(rec models.SettlementRecord) string {
	if rec.Currency == "" {
		return fmt.Sprintf("Settlement payout %s", rec.AccountID)
	}
	return fmt.Sprintf("Settlement payout %s (%s)", rec.AccountID, rec.Currency)
}

// IncomeEvents turns income that has not yet arrived into inflows. Received
// income is already part of the starting balance. Overdue income dated before
// openFrom is expected on openFrom rather than on a day the projection never
// counts; pass Options.FirstOpenDay.
func IncomeEvents(items []models.IncomeItem, openFrom calendar.Date) []models.CashFlowEvent {
	var events []models.CashFlowEvent
	for _, item := range items {
		if item.Status != models.IncomePending && item.Status != models.IncomeOverdue {
			continue
		}
		date := item.PaymentDate
		if item.Status == models.IncomeOverdue && date.Before(openFrom) {
			date = openFrom
		}
		events = append(events, models.CashFlowEvent{
			ID:          "income:" + item.ID,
			Type:        models.EventInflow,
			Amount:      models.NewAmount(item.Amount),
			Description: item.Description,
			Source:      models.SourceIncome,
			Date:        date,
		})
	}
	return events
}

// VendorEvents turns each unpaid vendor's next instalment into a purchase-order
// outflow. An instalment still unpaid past its date is due on openFrom.
func VendorEvents(vendors []models.Vendor, openFrom calendar.Date) []models.CashFlowEvent {
	var events []models.CashFlowEvent
	for _, v := range vendors {
		if v.Status == models.VendorStatusPaid || !v.NextPaymentAmount.IsPositive() || v.NextPaymentDate.IsZero() {
			continue
		}
		date := v.NextPaymentDate
		if date.Before(openFrom) {
			date = openFrom
		}
		desc := v.Name
		if v.POName != "" {
			desc = fmt.Sprintf("%s (%s)", v.Name, v.POName)
		}
		events = append(events, models.CashFlowEvent{
			ID:          "vendor:" + v.ID,
			Type:        models.EventPurchaseOrder,
			Amount:      models.NewAmount(v.NextPaymentAmount),
			Description: desc,
			Vendor:      v.Name,
			Source:      models.SourcePurchaseOrder,
			Date:        date,
		})
	}
	return events
}
