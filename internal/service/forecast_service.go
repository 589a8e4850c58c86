package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/forecast"
	"github.com/mmynk/cashflow/internal/middleware"
	"github.com/mmynk/cashflow/internal/storage"
	"github.com/mmynk/cashflow/pkg/api"
)

// ForecastConfig holds the server-side defaults for projections.
type ForecastConfig struct {
	HorizonMonths            int
	OpportunityHorizonMonths int
	ExcludeToday             bool
	Reserve                  decimal.Decimal
	Classifier               forecast.Classifier

	// Location decides which calendar day "today" is when a request omits it.
	Location *time.Location
}

// ForecastService implements the Connect ForecastService
type ForecastService struct {
	store storage.Source
	cfg   ForecastConfig
	memo  forecast.Memo
}

// NewForecastService creates a ForecastService reading from the given source.
func NewForecastService(store storage.Source, cfg ForecastConfig) *ForecastService {
	if cfg.HorizonMonths <= 0 {
		cfg.HorizonMonths = forecast.DefaultHorizonMonths
	}
	if cfg.OpportunityHorizonMonths <= 0 {
		cfg.OpportunityHorizonMonths = forecast.DefaultOpportunityHorizonMonths
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &ForecastService{store: store, cfg: cfg}
}

// resolveToday parses a request's today field, falling back to the current
// date in the configured zone.
func (s *ForecastService) resolveToday(raw string) (calendar.Date, error) {
	if raw == "" {
		return calendar.Today(s.cfg.Location), nil
	}
	return parseDate("today", raw)
}

// defaultOptions covers both the configured timeline and the opportunity
// horizon, so one memoized projection serves every opportunity query.
func (s *ForecastService) defaultOptions() forecast.Options {
	return forecast.Options{
		HorizonMonths:            max(s.cfg.HorizonMonths, s.cfg.OpportunityHorizonMonths),
		ExcludeToday:             s.cfg.ExcludeToday,
		OpportunityHorizonMonths: s.cfg.OpportunityHorizonMonths,
		Reserve:                  s.cfg.Reserve,
	}
}

// snapshot loads everything the projection needs for today and normalizes
// collaborator records into events.
func (s *ForecastService) snapshot(ctx context.Context, today calendar.Date, opts forecast.Options) (forecast.Snapshot, error) {
	snap := forecast.Snapshot{Today: today}

	months := max(opts.HorizonMonths, opts.OpportunityHorizonMonths)
	events, err := s.store.Events(ctx, forecast.Horizon(today, months))
	if err != nil {
		return snap, fmt.Errorf("failed to load events: %w", err)
	}

	balance, err := s.store.StartingBalance(ctx)
	switch {
	case errors.Is(err, storage.ErrNoBalance):
		// Left nil; the projector reports the missing balance.
	case err != nil:
		return snap, fmt.Errorf("failed to load starting balance: %w", err)
	default:
		snap.StartingBalance = &balance
	}

	if snap.TotalAvailableCredit, err = s.store.TotalAvailableCredit(ctx); err != nil {
		return snap, fmt.Errorf("failed to load available credit: %w", err)
	}

	settlements, err := s.store.SettlementRecords(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to load settlements: %w", err)
	}
	income, err := s.store.IncomeItems(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to load income items: %w", err)
	}
	vendors, err := s.store.Vendors(ctx)
	if err != nil {
		return snap, fmt.Errorf("failed to load vendors: %w", err)
	}

	events = append(events, s.cfg.Classifier.SettlementEvents(settlements, today)...)
	openFrom := opts.FirstOpenDay(today)
	events = append(events, forecast.IncomeEvents(income, openFrom)...)
	events = append(events, forecast.VendorEvents(vendors, openFrom)...)
	snap.Events = events
	return snap, nil
}

func (s *ForecastService) compute(ctx context.Context, today calendar.Date, opts forecast.Options) (forecast.Result, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx, today, opts)
	if err != nil {
		return forecast.Result{}, err
	}
	res, err := s.memo.Get(snap, opts)
	if err != nil {
		return forecast.Result{}, err
	}
	middleware.ObserveProjection(time.Since(start), res.Projection.SkippedEvents, res.Cached)
	if res.Projection.SkippedEvents > 0 {
		slog.Warn("Skipped malformed events", "count", res.Projection.SkippedEvents, "today", today)
	}
	return res, nil
}

// opportunities returns the opportunity series for the request's today.
func (s *ForecastService) opportunities(ctx context.Context, today calendar.Date) ([]forecast.BuyingOpportunity, error) {
	res, err := s.compute(ctx, today, s.defaultOptions())
	if err != nil {
		return nil, err
	}
	return res.Opportunities, nil
}

// Warm recomputes the default projection for the current date so the next
// request is served from the memo.
func (s *ForecastService) Warm(ctx context.Context) error {
	today := calendar.Today(s.cfg.Location)
	res, err := s.compute(ctx, today, s.defaultOptions())
	if err != nil {
		return err
	}
	slog.Debug("Projection warmed",
		"today", today,
		"fingerprint", res.Fingerprint,
		"cached", res.Cached,
		"opportunities", len(res.Opportunities),
	)
	return nil
}

// Project handles the daily balance timeline
func (s *ForecastService) Project(ctx context.Context, req *connect.Request[api.ProjectRequest]) (*connect.Response[api.ProjectResponse], error) {
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("Project", err)
	}
	if req.Msg.HorizonMonths < 0 || req.Msg.HorizonMonths > forecast.MaxHorizonMonths {
		return nil, invalidArgument("Project",
			fmt.Errorf("horizon_months must be between 1 and %d", forecast.MaxHorizonMonths))
	}

	opts := s.defaultOptions()
	if req.Msg.HorizonMonths > 0 {
		opts.HorizonMonths = req.Msg.HorizonMonths
	}
	if req.Msg.ExcludeToday != nil {
		opts.ExcludeToday = *req.Msg.ExcludeToday
	}
	slog.Debug("Project called", "today", today, "horizon_months", opts.HorizonMonths, "exclude_today", opts.ExcludeToday)

	res, err := s.compute(ctx, today, opts)
	if err != nil {
		return nil, connectError("Project", err)
	}

	p := res.Projection
	points := make([]api.ProjectionPoint, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pointToAPI(pt, p.Reserve)
	}

	slog.Info("Projection served", "today", today, "days", len(points), "skipped_events", p.SkippedEvents, "cached", res.Cached)

	return connect.NewResponse(&api.ProjectResponse{
		Points:        points,
		SkippedEvents: p.SkippedEvents,
		ReserveAmount: money(p.Reserve),
	}), nil
}

// ExtractOpportunities handles the buying-opportunity listing
func (s *ForecastService) ExtractOpportunities(ctx context.Context, req *connect.Request[api.ExtractOpportunitiesRequest]) (*connect.Response[api.ExtractOpportunitiesResponse], error) {
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("ExtractOpportunities", err)
	}
	ops, err := s.opportunities(ctx, today)
	if err != nil {
		return nil, connectError("ExtractOpportunities", err)
	}

	out := make([]api.Opportunity, len(ops))
	for i, op := range ops {
		out[i] = opportunityToAPI(op)
	}
	return connect.NewResponse(&api.ExtractOpportunitiesResponse{Opportunities: out}), nil
}

// ClassifySettlement classifies a single settlement without storing it
func (s *ForecastService) ClassifySettlement(ctx context.Context, req *connect.Request[api.ClassifySettlementRequest]) (*connect.Response[api.ClassifySettlementResponse], error) {
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("ClassifySettlement", err)
	}
	rec, err := settlementFromAPI(req.Msg.Settlement)
	if err != nil {
		return nil, invalidArgument("ClassifySettlement", err)
	}

	cl := s.cfg.Classifier.Classify(rec, today)
	slog.Debug("Settlement classified", "settlement_id", rec.ID, "state", cl.State)

	return connect.NewResponse(&api.ClassifySettlementResponse{
		State:        cl.State.String(),
		ArrivalDate:  dateString(cl.ArrivalDate),
		ProjectedEnd: dateString(cl.ProjectedEnd),
	}), nil
}

// ListOpenSettlements returns the stored settlements whose period is still open
func (s *ForecastService) ListOpenSettlements(ctx context.Context, req *connect.Request[api.ListOpenSettlementsRequest]) (*connect.Response[api.ListOpenSettlementsResponse], error) {
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("ListOpenSettlements", err)
	}
	records, err := s.store.SettlementRecords(ctx)
	if err != nil {
		return nil, connectError("ListOpenSettlements", err)
	}

	open := s.cfg.Classifier.OpenSettlements(records, today)
	out := make([]api.OpenSettlement, len(open))
	for i, cl := range open {
		out[i] = api.OpenSettlement{
			Settlement:   settlementToAPI(cl.Record),
			ArrivalDate:  cl.ArrivalDate.String(),
			ProjectedEnd: cl.ProjectedEnd.String(),
		}
	}
	return connect.NewResponse(&api.ListOpenSettlementsResponse{Settlements: out}), nil
}

// SearchByAmount finds the first opportunity that covers the amount
func (s *ForecastService) SearchByAmount(ctx context.Context, req *connect.Request[api.SearchByAmountRequest]) (*connect.Response[api.SearchByAmountResponse], error) {
	if req.Msg.Amount.IsNegative() {
		return nil, invalidArgument("SearchByAmount", fmt.Errorf("amount must not be negative"))
	}
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("SearchByAmount", err)
	}
	ops, err := s.opportunities(ctx, today)
	if err != nil {
		return nil, connectError("SearchByAmount", err)
	}

	op, found := forecast.SearchByAmount(ops, req.Msg.Amount)
	resp := &api.SearchByAmountResponse{Found: found}
	if found {
		out := opportunityToAPI(op)
		resp.Opportunity = &out
	}
	return connect.NewResponse(resp), nil
}

// SearchByDate finds the opportunity whose window contains the date
func (s *ForecastService) SearchByDate(ctx context.Context, req *connect.Request[api.SearchByDateRequest]) (*connect.Response[api.SearchByDateResponse], error) {
	date, err := requireDate("date", req.Msg.Date)
	if err != nil {
		return nil, invalidArgument("SearchByDate", err)
	}
	today, err := s.resolveToday(req.Msg.Today)
	if err != nil {
		return nil, invalidArgument("SearchByDate", err)
	}
	ops, err := s.opportunities(ctx, today)
	if err != nil {
		return nil, connectError("SearchByDate", err)
	}

	match, found := forecast.SearchByDate(ops, date)
	resp := &api.SearchByDateResponse{Found: found}
	if found {
		out := opportunityToAPI(match.Opportunity)
		resp.Opportunity = &out
		resp.CanPurchase = match.CanPurchase
	}
	return connect.NewResponse(resp), nil
}
