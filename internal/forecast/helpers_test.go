package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

var today = calendar.MustParse("2026-01-01")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func datePtr(d calendar.Date) *calendar.Date {
	return &d
}

func event(id string, typ models.EventType, amount string, day int) models.CashFlowEvent {
	return models.CashFlowEvent{
		ID:     id,
		Type:   typ,
		Amount: models.NewAmount(dec(amount)),
		Date:   today.AddDays(day),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}
