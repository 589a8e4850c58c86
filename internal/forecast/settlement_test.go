package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashflow/internal/models"
)

func estimated(id string, start int, payout int) models.SettlementRecord {
	return models.SettlementRecord{
		ID:          id,
		AccountID:   "amazon-us",
		Status:      models.SettlementEstimated,
		PayoutDate:  today.AddDays(payout),
		TotalAmount: dec("1500"),
		Currency:    "USD",
		Metadata:    models.SettlementMetadata{PeriodStart: datePtr(today.AddDays(start))},
	}
}

func TestClassifyOpenSettlement(t *testing.T) {
	cl := Classifier{}.Classify(estimated("s1", -5, 9), today)

	assert.Equal(t, SettlementOpen, cl.State)
	assert.Equal(t, today.AddDays(9), cl.ProjectedEnd)
	assert.Equal(t, today.AddDays(9), cl.ArrivalDate)
}

func TestClassifyConfirmed(t *testing.T) {
	rec := models.SettlementRecord{
		ID:         "s2",
		Status:     models.SettlementConfirmed,
		PayoutDate: today.AddDays(-2),
		Metadata: models.SettlementMetadata{
			PeriodStart: datePtr(today.AddDays(-20)),
			PeriodEnd:   datePtr(today.AddDays(-6)),
		},
	}
	cl := Classifier{}.Classify(rec, today)
	assert.Equal(t, SettlementClosed, cl.State)
	assert.Equal(t, today.AddDays(-5), cl.ArrivalDate)

	rec.Metadata.PeriodEnd = nil
	cl = Classifier{}.Classify(rec, today)
	assert.Equal(t, SettlementClosed, cl.State)
	assert.Equal(t, today.AddDays(-2), cl.ArrivalDate)
	assert.True(t, cl.ProjectedEnd.IsZero())
}

func TestClassifyUnclassified(t *testing.T) {
	ended := estimated("ended", -5, 9)
	ended.Metadata.PeriodEnd = datePtr(today.AddDays(1))

	noStart := estimated("no-start", -5, 9)
	noStart.Metadata.PeriodStart = nil

	forecasted := estimated("forecasted", -5, 9)
	forecasted.Status = models.SettlementForecasted

	tests := []struct {
		name string
		rec  models.SettlementRecord
	}{
		{"has period end", ended},
		{"no period start", noStart},
		{"payout already passed", estimated("past", -20, -1)},
		{"period not started", estimated("future", 2, 16)},
		{"forecasted status", forecasted},
		{"unknown status", models.SettlementRecord{ID: "x", Status: "mystery"}},
		{"confirmed without any date", models.SettlementRecord{ID: "undated", Status: models.SettlementConfirmed, TotalAmount: dec("90")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := Classifier{}.Classify(tt.rec, today)
			assert.Equal(t, SettlementUnclassified, cl.State)
			assert.Equal(t, "UNCLASSIFIED", cl.State.String())
			assert.True(t, cl.ArrivalDate.IsZero())
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	// today == PeriodStart and today == PayoutDate are both still open.
	assert.Equal(t, SettlementOpen, Classifier{}.Classify(estimated("start", 0, 14), today).State)
	assert.Equal(t, SettlementOpen, Classifier{}.Classify(estimated("payout", -10, 0), today).State)
}

func TestClassifierCycleConfiguration(t *testing.T) {
	c := Classifier{
		CycleDays:          7,
		CycleDaysByAccount: map[string]int{"etsy-daily": 1},
	}

	weekly := c.Classify(estimated("w", -2, 5), today)
	assert.Equal(t, today.AddDays(5), weekly.ProjectedEnd)

	daily := estimated("d", 0, 1)
	daily.AccountID = "etsy-daily"
	assert.Equal(t, today.AddDays(1), c.Classify(daily, today).ArrivalDate)
}

func TestOpenSettlements(t *testing.T) {
	records := []models.SettlementRecord{
		estimated("late", -1, 13),
		{ID: "closed", Status: models.SettlementConfirmed, PayoutDate: today},
		estimated("early", -10, 4),
		estimated("stale", -30, -16),
	}
	open := Classifier{}.OpenSettlements(records, today)
	require.Len(t, open, 2)
	assert.Equal(t, "early", open[0].Record.ID)
	assert.Equal(t, "late", open[1].Record.ID)

	assert.Empty(t, Classifier{}.OpenSettlements(nil, today))
}

func TestSettlementEvents(t *testing.T) {
	closed := models.SettlementRecord{
		ID:          "closed",
		AccountID:   "amazon-us",
		Status:      models.SettlementConfirmed,
		PayoutDate:  today.AddDays(2),
		TotalAmount: dec("800"),
		Metadata:    models.SettlementMetadata{PeriodEnd: datePtr(today.AddDays(2))},
	}
	forecasted := models.SettlementRecord{
		ID:          "next",
		Status:      models.SettlementForecasted,
		PayoutDate:  today.AddDays(20),
		TotalAmount: dec("650"),
	}
	pastForecast := forecasted
	pastForecast.ID = "old"
	pastForecast.PayoutDate = today.AddDays(-1)

	events := Classifier{}.SettlementEvents([]models.SettlementRecord{
		closed, estimated("open", -5, 9), forecasted, pastForecast, estimated("stale", -30, -16),
	}, today)
	require.Len(t, events, 3)

	assert.Equal(t, models.SourceConfirmedPayout, events[0].Source)
	assert.Equal(t, today.AddDays(2), events[0].Date)
	assert.Equal(t, today.AddDays(3), events[0].ImpactDate())

	assert.Equal(t, models.SourceForecastedPayout, events[1].Source)
	assert.Equal(t, today.AddDays(9), events[1].ImpactDate())

	assert.Equal(t, today.AddDays(20), events[2].ImpactDate())
	for _, e := range events {
		assert.Equal(t, models.EventInflow, e.Type)
		assert.NoError(t, e.Validate())
	}
}

func TestIncomeAndVendorEvents(t *testing.T) {
	items := []models.IncomeItem{
		{ID: "paid", Amount: dec("100"), PaymentDate: today.AddDays(-3), Status: models.IncomeReceived},
		{ID: "soon", Amount: dec("200"), PaymentDate: today.AddDays(4), Status: models.IncomePending},
		{ID: "late", Amount: dec("300"), PaymentDate: today.AddDays(-10), Status: models.IncomeOverdue},
	}
	income := IncomeEvents(items, today)
	require.Len(t, income, 2)
	assert.Equal(t, today.AddDays(4), income[0].Date)
	assert.Equal(t, today, income[1].Date)

	vendors := []models.Vendor{
		{ID: "v1", Name: "Acme", NextPaymentDate: today.AddDays(6), NextPaymentAmount: dec("450"), POName: "PO-17"},
		{ID: "v2", Name: "Paid Co", NextPaymentDate: today.AddDays(6), NextPaymentAmount: dec("1"), Status: models.VendorStatusPaid},
		{ID: "v3", Name: "Nothing Due", NextPaymentDate: today.AddDays(6)},
		{ID: "v4", Name: "Behind", NextPaymentDate: today.AddDays(-2), NextPaymentAmount: dec("75")},
	}
	pos := VendorEvents(vendors, today)
	require.Len(t, pos, 2)
	assert.Equal(t, models.EventPurchaseOrder, pos[0].Type)
	assert.Equal(t, "Acme (PO-17)", pos[0].Description)
	assert.Equal(t, today.AddDays(6), pos[0].Date)
	assert.Equal(t, today, pos[1].Date, "past-due instalment is due now")
}

func TestOverdueMovesToFirstOpenDay(t *testing.T) {
	tomorrow := Options{ExcludeToday: true}.FirstOpenDay(today)
	assert.Equal(t, today.AddDays(1), tomorrow)
	assert.Equal(t, today, Options{}.FirstOpenDay(today))

	items := []models.IncomeItem{
		{ID: "late", Amount: dec("300"), PaymentDate: today.AddDays(-10), Status: models.IncomeOverdue},
		{ID: "due-today", Amount: dec("40"), PaymentDate: today, Status: models.IncomeOverdue},
		{ID: "soon", Amount: dec("200"), PaymentDate: today.AddDays(4), Status: models.IncomePending},
	}
	income := IncomeEvents(items, tomorrow)
	require.Len(t, income, 3)
	assert.Equal(t, tomorrow, income[0].Date)
	assert.Equal(t, tomorrow, income[1].Date)
	assert.Equal(t, today.AddDays(4), income[2].Date)

	pos := VendorEvents([]models.Vendor{
		{ID: "v", Name: "Behind", NextPaymentDate: today.AddDays(-2), NextPaymentAmount: dec("75")},
	}, tomorrow)
	require.Len(t, pos, 1)
	assert.Equal(t, tomorrow, pos[0].Date)
}
