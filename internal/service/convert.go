package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/forecast"
	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/pkg/api"
)

// Money leaves the service rounded to cents.
const centPlaces = 2

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(centPlaces)
}

func dateString(d calendar.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func parseDate(field, s string) (calendar.Date, error) {
	d, err := calendar.Parse(s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

func requireDate(field, s string) (calendar.Date, error) {
	if s == "" {
		return calendar.Date{}, fmt.Errorf("%s is required", field)
	}
	return parseDate(field, s)
}

func optionalDate(field, s string) (*calendar.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func eventFromAPI(e api.Event) (models.CashFlowEvent, error) {
	typ := models.EventType(e.Type)
	if !typ.Valid() {
		return models.CashFlowEvent{}, fmt.Errorf("%w: unknown type %q", models.ErrMalformedEvent, e.Type)
	}
	date, err := requireDate("date", e.Date)
	if err != nil {
		return models.CashFlowEvent{}, fmt.Errorf("%w: %w", models.ErrMalformedEvent, err)
	}
	impact, err := optionalDate("balance_impact_date", e.BalanceImpactDate)
	if err != nil {
		return models.CashFlowEvent{}, fmt.Errorf("%w: %w", models.ErrMalformedEvent, err)
	}

	ev := models.CashFlowEvent{
		ID:                e.ID,
		Type:              typ,
		Description:       e.Description,
		Vendor:            e.Vendor,
		CreditCardID:      e.CreditCardID,
		Source:            e.Source,
		Date:              date,
		BalanceImpactDate: impact,
	}
	// A missing amount is stored as such; the projector skips and counts it.
	if e.Amount != nil {
		ev.Amount = models.NewAmount(*e.Amount)
	}
	return ev, nil
}

func settlementFromAPI(s api.Settlement) (models.SettlementRecord, error) {
	payout, err := parseDate("payout_date", s.PayoutDate)
	if err != nil {
		return models.SettlementRecord{}, err
	}
	start, err := optionalDate("period_start", s.PeriodStart)
	if err != nil {
		return models.SettlementRecord{}, err
	}
	end, err := optionalDate("period_end", s.PeriodEnd)
	if err != nil {
		return models.SettlementRecord{}, err
	}

	rec := models.SettlementRecord{
		ID:          s.ID,
		AccountID:   s.AccountID,
		Status:      models.SettlementStatus(s.Status),
		PayoutDate:  payout,
		TotalAmount: s.TotalAmount,
		Currency:    s.Currency,
		Metadata: models.SettlementMetadata{
			PeriodStart:      start,
			PeriodEnd:        end,
			ProcessingStatus: s.ProcessingStatus,
		},
	}
	if s.BeginningBalance != nil {
		rec.Metadata.BeginningBalance = models.NewAmount(*s.BeginningBalance)
	}
	return rec, nil
}

func settlementToAPI(rec models.SettlementRecord) api.Settlement {
	s := api.Settlement{
		ID:               rec.ID,
		AccountID:        rec.AccountID,
		Status:           string(rec.Status),
		PayoutDate:       dateString(rec.PayoutDate),
		TotalAmount:      money(rec.TotalAmount),
		Currency:         rec.Currency,
		ProcessingStatus: rec.Metadata.ProcessingStatus,
	}
	if rec.Metadata.PeriodStart != nil {
		s.PeriodStart = dateString(*rec.Metadata.PeriodStart)
	}
	if rec.Metadata.PeriodEnd != nil {
		s.PeriodEnd = dateString(*rec.Metadata.PeriodEnd)
	}
	if rec.Metadata.BeginningBalance.Valid {
		b := money(rec.Metadata.BeginningBalance.Decimal)
		s.BeginningBalance = &b
	}
	return s
}

func incomeFromAPI(item api.IncomeItem) (models.IncomeItem, error) {
	date, err := requireDate("payment_date", item.PaymentDate)
	if err != nil {
		return models.IncomeItem{}, err
	}
	status := models.IncomeStatus(item.Status)
	switch status {
	case models.IncomeReceived, models.IncomePending, models.IncomeOverdue:
	default:
		return models.IncomeItem{}, fmt.Errorf("unknown income status %q", item.Status)
	}
	return models.IncomeItem{
		ID:          item.ID,
		Amount:      item.Amount,
		PaymentDate: date,
		Status:      status,
		Description: item.Description,
		Source:      item.Source,
	}, nil
}

func vendorFromAPI(v api.Vendor) (models.Vendor, error) {
	if v.Name == "" {
		return models.Vendor{}, fmt.Errorf("vendor name is required")
	}
	next, err := parseDate("next_payment_date", v.NextPaymentDate)
	if err != nil {
		return models.Vendor{}, err
	}
	return models.Vendor{
		ID:                v.ID,
		Name:              v.Name,
		TotalOwed:         v.TotalOwed,
		NextPaymentDate:   next,
		NextPaymentAmount: v.NextPaymentAmount,
		Status:            v.Status,
		POName:            v.POName,
	}, nil
}

func opportunityToAPI(op forecast.BuyingOpportunity) api.Opportunity {
	return api.Opportunity{
		Date:          op.Date.String(),
		Balance:       money(op.Balance),
		AvailableDate: op.AvailableDate.String(),
	}
}

func pointToAPI(pt forecast.DailyProjectionPoint, reserve decimal.Decimal) api.ProjectionPoint {
	return api.ProjectionPoint{
		Date:            pt.Date.String(),
		RunningBalance:  money(pt.RunningBalance),
		DailyInflow:     money(pt.DailyInflow),
		DailyOutflow:    money(pt.DailyOutflow),
		AvailableCredit: money(pt.AvailableCredit),
		IsToday:         pt.IsToday,
		BelowReserve:    pt.RunningBalance.LessThan(reserve),
	}
}
