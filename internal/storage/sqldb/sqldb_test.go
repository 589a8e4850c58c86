package sqldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashflow/internal/calendar"
)

func TestRebind(t *testing.T) {
	query := "SELECT id FROM cash_flow_events WHERE impact_date >= ? AND impact_date <= ?"

	sqlite := &DB{dialect: SQLite}
	assert.Equal(t, query, sqlite.rebind(query))

	pg := &DB{dialect: Postgres}
	assert.Equal(t, "SELECT id FROM cash_flow_events WHERE impact_date >= $1 AND impact_date <= $2", pg.rebind(query))
	assert.Equal(t, "DELETE FROM vendors", pg.rebind("DELETE FROM vendors"))
}

func TestOptionalDate(t *testing.T) {
	var zero calendar.Date
	assert.Nil(t, optionalDate(zero))

	d := calendar.MustParse("2026-03-04")
	require.NotNil(t, optionalDate(d))
	assert.Equal(t, d, *optionalDate(d))
}
