// Package forecast implements the cash flow projection engine: settlement
// classification, daily aggregation, balance and credit projection, buying
// opportunity extraction and search.
//
// Every function is pure over its inputs and returns freshly allocated
// results. Callers must not mutate a Snapshot while a call is using it.
package forecast

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
)

// ErrMissingStartingBalance is returned when a snapshot carries no balance.
// The engine never assumes zero on the caller's behalf.
var ErrMissingStartingBalance = errors.New("starting balance is required")

const (
	DefaultHorizonMonths            = 3
	DefaultOpportunityHorizonMonths = 3
	MaxHorizonMonths                = 12
)

// Snapshot is the immutable input of one projection.
type Snapshot struct {
	// Today is day 0 of the projection.
	Today calendar.Date

	// StartingBalance is today's real cash balance. Nil is rejected.
	StartingBalance *decimal.Decimal

	// TotalAvailableCredit is the credit available across all cards now.
	TotalAvailableCredit decimal.Decimal

	// Events are all known events; order does not matter.
	Events []models.CashFlowEvent
}

// Options controls the shape of a projection.
type Options struct {
	// HorizonMonths is the forward length of the timeline (default 3, max 12).
	HorizonMonths int

	// ExcludeToday leaves today's events out of day 0.
	ExcludeToday bool

	// OpportunityHorizonMonths limits opportunity extraction (default 3).
	OpportunityHorizonMonths int

	// Reserve is the minimum balance line. It is reported alongside the
	// timeline and never subtracted from it.
	Reserve decimal.Decimal
}

func (o Options) withDefaults() Options {
	if o.HorizonMonths <= 0 {
		o.HorizonMonths = DefaultHorizonMonths
	}
	if o.HorizonMonths > MaxHorizonMonths {
		o.HorizonMonths = MaxHorizonMonths
	}
	if o.OpportunityHorizonMonths <= 0 {
		o.OpportunityHorizonMonths = DefaultOpportunityHorizonMonths
	}
	return o
}

// FirstOpenDay is the earliest day whose events still move the projected
// balance: today, or tomorrow when today's events are excluded.
func (o Options) FirstOpenDay(today calendar.Date) calendar.Date {
	if o.ExcludeToday {
		return today.AddDays(1)
	}
	return today
}

// Horizon returns the inclusive day range starting today and spanning months.
func Horizon(today calendar.Date, months int) calendar.Range {
	return calendar.Range{Start: today, End: today.AddMonths(months).AddDays(-1)}
}

// DailyProjectionPoint is one day of the presented timeline.
type DailyProjectionPoint struct {
	Date            calendar.Date
	RunningBalance  decimal.Decimal
	DailyInflow     decimal.Decimal
	DailyOutflow    decimal.Decimal
	AvailableCredit decimal.Decimal
	IsToday         bool
}

// Projection is the result of Project.
type Projection struct {
	Points []DailyProjectionPoint

	// SkippedEvents counts malformed events left out of the timeline.
	SkippedEvents int

	// Reserve is the configured minimum balance line.
	Reserve decimal.Decimal
}

// Series returns the (date, balance) pairs of the projection.
func (p *Projection) Series() []DayBalance {
	series := make([]DayBalance, len(p.Points))
	for i, pt := range p.Points {
		series[i] = DayBalance{Date: pt.Date, Balance: pt.RunningBalance}
	}
	return series
}

func validate(s Snapshot) error {
	if s.StartingBalance == nil {
		return ErrMissingStartingBalance
	}
	if s.Today.IsZero() {
		return fmt.Errorf("%w: snapshot has no today", calendar.ErrInvalidDateRange)
	}
	return nil
}

// Project builds the day-by-day timeline for the snapshot.
//
// Algorithm:
// - Aggregate events into per-day inflow/outflow over the horizon
// - Forward-scan the running balance from the starting balance
// - Project available credit for the same days
// - Zip the series into DailyProjectionPoints (day 0 is today)
func Project(s Snapshot, opts Options) (*Projection, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	horizon := Horizon(s.Today, opts.HorizonMonths)
	agg, err := Aggregate(s.Events, horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	balances := ProjectBalances(*s.StartingBalance, agg.Days, opts.ExcludeToday)
	days := make([]calendar.Date, len(balances))
	for i, b := range balances {
		days[i] = b.Date
	}
	credit := ProjectCredit(s.TotalAvailableCredit, s.Events, days)

	points := make([]DailyProjectionPoint, len(balances))
	for i, b := range balances {
		points[i] = DailyProjectionPoint{
			Date:            b.Date,
			RunningBalance:  b.RunningBalance,
			DailyInflow:     b.Inflow,
			DailyOutflow:    b.Outflow,
			AvailableCredit: credit[i],
			IsToday:         b.Date == s.Today,
		}
	}

	return &Projection{
		Points:        points,
		SkippedEvents: agg.Skipped,
		Reserve:       opts.Reserve,
	}, nil
}

// Opportunities projects the snapshot and extracts buying opportunities from
// the first OpportunityHorizonMonths of the timeline.
func Opportunities(s Snapshot, opts Options) ([]BuyingOpportunity, error) {
	opts = opts.withDefaults()
	opts.HorizonMonths = opts.OpportunityHorizonMonths
	p, err := Project(s, opts)
	if err != nil {
		return nil, err
	}
	return ExtractOpportunities(p.Series()), nil
}

// OpportunitiesFrom restricts an existing projection to the opportunity
// horizon and extracts from it, avoiding a second scan.
func OpportunitiesFrom(p *Projection, today calendar.Date, months int) []BuyingOpportunity {
	if months <= 0 {
		months = DefaultOpportunityHorizonMonths
	}
	horizon := Horizon(today, months)
	var series []DayBalance
	for _, pt := range p.Points {
		if horizon.Contains(pt.Date) {
			series = append(series, DayBalance{Date: pt.Date, Balance: pt.RunningBalance})
		}
	}
	return ExtractOpportunities(series)
}
