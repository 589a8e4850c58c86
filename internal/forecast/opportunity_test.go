package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashflow/internal/calendar"
)

func series(balances ...string) []DayBalance {
	out := make([]DayBalance, len(balances))
	for i, b := range balances {
		out[i] = DayBalance{Date: today.AddDays(i), Balance: dec(b)}
	}
	return out
}

func TestExtractOpportunities(t *testing.T) {
	tests := []struct {
		name    string
		series  []DayBalance
		want    []int    // minimum day offsets
		avail   []int    // available day offsets
		balance []string // balances at the minima
	}{
		{
			name:    "two valleys",
			series:  series("100", "50", "90", "70", "120"),
			want:    []int{1, 3},
			avail:   []int{0, 2},
			balance: []string{"50", "70"},
		},
		{
			name:    "falling boundary",
			series:  series("300", "200", "100"),
			want:    []int{2},
			avail:   []int{0},
			balance: []string{"100"},
		},
		{
			name:    "rising boundary is today",
			series:  series("100", "200", "300"),
			want:    []int{0},
			avail:   []int{0},
			balance: []string{"100"},
		},
		{
			name:    "plateau keeps earliest day",
			series:  series("500", "300", "300", "300", "600"),
			want:    []int{1},
			avail:   []int{0},
			balance: []string{"300"},
		},
		{
			name:    "flat maximum between two minima",
			series:  series("10000", "10000", "10000", "13000", "13000", "13000", "13000", "13000", "13000", "13000", "12000", "12000"),
			want:    []int{0, 10},
			avail:   []int{0, 3},
			balance: []string{"10000", "12000"},
		},
		{
			name:    "flat shoulder on a descent",
			series:  series("900", "600", "600", "300", "800"),
			want:    []int{3},
			avail:   []int{0},
			balance: []string{"300"},
		},
		{
			name:    "constant series",
			series:  series("250", "250", "250"),
			want:    []int{0},
			avail:   []int{0},
			balance: []string{"250"},
		},
		{
			name:    "single day",
			series:  series("42"),
			want:    []int{0},
			avail:   []int{0},
			balance: []string{"42"},
		},
		{
			name:    "deeper earlier dip bounds available date",
			series:  series("400", "100", "250", "300", "200", "500"),
			want:    []int{1, 4},
			avail:   []int{0, 2},
			balance: []string{"100", "200"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := ExtractOpportunities(tt.series)
			require.Len(t, ops, len(tt.want), "got %v", ops)
			for i, op := range ops {
				assert.Equal(t, today.AddDays(tt.want[i]), op.Date)
				assert.Equal(t, today.AddDays(tt.avail[i]), op.AvailableDate)
				assertDecimal(t, tt.balance[i], op.Balance)
			}
		})
	}
}

func TestExtractOpportunitiesEmpty(t *testing.T) {
	assert.Empty(t, ExtractOpportunities(nil))
}

func TestOpportunityInvariants(t *testing.T) {
	s := series("900", "700", "700", "800", "400", "400", "650", "300", "1200", "1100", "1150")
	ops := ExtractOpportunities(s)
	require.NotEmpty(t, ops)

	for i, op := range ops {
		assert.False(t, op.AvailableDate.After(op.Date), "availableDate after date for %v", op)
		if i > 0 {
			assert.True(t, ops[i-1].Date.Before(op.Date), "dates not strictly increasing")
		}
		// Spending the minimum from AvailableDate keeps every day through Date non-negative.
		for _, day := range s {
			if !day.Date.Before(op.AvailableDate) && !day.Date.After(op.Date) {
				assert.False(t, day.Balance.Sub(op.Balance).IsNegative())
			}
		}
	}
}

func TestSearchScenario(t *testing.T) {
	jan := func(d int) calendar.Date { return calendar.New(2026, 1, d) }
	ops := []BuyingOpportunity{
		{Date: jan(10), Balance: dec("500"), AvailableDate: jan(5)},
		{Date: jan(25), Balance: dec("2000"), AvailableDate: jan(20)},
	}

	got, ok := SearchByAmount(ops, dec("1200"))
	require.True(t, ok)
	assert.Equal(t, jan(25), got.Date)

	match, ok := SearchByDate(ops, jan(22))
	require.True(t, ok)
	assert.Equal(t, jan(25), match.Opportunity.Date)
	assert.True(t, match.CanPurchase)

	_, ok = SearchByAmount(ops, dec("2000.01"))
	assert.False(t, ok)

	_, ok = SearchByDate(ops, jan(15))
	assert.False(t, ok, "Jan 15 lies between windows")

	_, ok = SearchByDate(ops, jan(26))
	assert.False(t, ok)

	_, ok = SearchByAmount(nil, dec("1"))
	assert.False(t, ok)
}

func TestSearchRoundTrip(t *testing.T) {
	ops := ExtractOpportunities(series("1000", "200", "600", "450", "900", "880", "1500", "1400"))
	require.NotEmpty(t, ops)

	for _, op := range ops {
		found, ok := SearchByAmount(ops, op.Balance)
		require.True(t, ok)
		assert.True(t, found.Balance.GreaterThanOrEqual(op.Balance))

		match, ok := SearchByDate(ops, op.Date)
		require.True(t, ok)
		assert.Equal(t, op.Date, match.Opportunity.Date)
		assert.True(t, op.Balance.Equal(match.Opportunity.Balance))
	}
}
