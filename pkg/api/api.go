// Package api defines the JSON messages exchanged with ForecastService and
// SyncService. Dates are YYYY-MM-DD strings; money is a decimal string.
// Amounts in responses are rounded to cents; the engine itself never rounds.
package api

import "github.com/shopspring/decimal"

// ---- ForecastService ----

// ProjectRequest asks for the daily timeline. Every request carrying a Today
// field pins day 0 to it; empty means the server's current date. A nil
// ExcludeToday uses the server default.
type ProjectRequest struct {
	Today         string `json:"today,omitempty"`
	HorizonMonths int    `json:"horizon_months,omitempty"`
	ExcludeToday  *bool  `json:"exclude_today,omitempty"`
}

type ProjectionPoint struct {
	Date            string          `json:"date"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	DailyInflow     decimal.Decimal `json:"daily_inflow"`
	DailyOutflow    decimal.Decimal `json:"daily_outflow"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	IsToday         bool            `json:"is_today"`
	BelowReserve    bool            `json:"below_reserve"`
}

type ProjectResponse struct {
	Points        []ProjectionPoint `json:"points"`
	SkippedEvents int               `json:"skipped_events"`
	ReserveAmount decimal.Decimal   `json:"reserve_amount"`
}

type Opportunity struct {
	Date          string          `json:"date"`
	Balance       decimal.Decimal `json:"balance"`
	AvailableDate string          `json:"available_date"`
}

type ExtractOpportunitiesRequest struct {
	Today string `json:"today,omitempty"`
}

type ExtractOpportunitiesResponse struct {
	Opportunities []Opportunity `json:"opportunities"`
}

type Settlement struct {
	ID               string           `json:"id"`
	AccountID        string           `json:"account_id"`
	Status           string           `json:"status"`
	PayoutDate       string           `json:"payout_date,omitempty"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	Currency         string           `json:"currency,omitempty"`
	PeriodStart      string           `json:"period_start,omitempty"`
	PeriodEnd        string           `json:"period_end,omitempty"`
	BeginningBalance *decimal.Decimal `json:"beginning_balance,omitempty"`
	ProcessingStatus string           `json:"processing_status,omitempty"`
}

type ClassifySettlementRequest struct {
	Settlement Settlement `json:"settlement"`
	Today      string     `json:"today,omitempty"`
}

// ClassifySettlementResponse carries State OPEN, CLOSED or UNCLASSIFIED.
type ClassifySettlementResponse struct {
	State        string `json:"state"`
	ArrivalDate  string `json:"arrival_date,omitempty"`
	ProjectedEnd string `json:"projected_end,omitempty"`
}

type ListOpenSettlementsRequest struct {
	Today string `json:"today,omitempty"`
}

type OpenSettlement struct {
	Settlement   Settlement `json:"settlement"`
	ArrivalDate  string     `json:"arrival_date"`
	ProjectedEnd string     `json:"projected_end"`
}

type ListOpenSettlementsResponse struct {
	Settlements []OpenSettlement `json:"settlements"`
}

type SearchByAmountRequest struct {
	Today  string          `json:"today,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type SearchByAmountResponse struct {
	Found       bool         `json:"found"`
	Opportunity *Opportunity `json:"opportunity,omitempty"`
}

type SearchByDateRequest struct {
	Today string `json:"today,omitempty"`
	Date  string `json:"date"`
}

type SearchByDateResponse struct {
	Found       bool         `json:"found"`
	Opportunity *Opportunity `json:"opportunity,omitempty"`
	CanPurchase bool         `json:"can_purchase"`
}

// ---- SyncService ----

// Event is a cash flow event. Amount is null when the upstream record carried none.
type Event struct {
	ID                string           `json:"id,omitempty"`
	Type              string           `json:"type"`
	Amount            *decimal.Decimal `json:"amount"`
	Description       string           `json:"description,omitempty"`
	Vendor            string           `json:"vendor,omitempty"`
	CreditCardID      string           `json:"credit_card_id,omitempty"`
	Source            string           `json:"source,omitempty"`
	Date              string           `json:"date"`
	BalanceImpactDate string           `json:"balance_impact_date,omitempty"`
}

type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

type PutEventsRequest struct {
	Events []Event `json:"events"`
}

type PutEventsResponse struct {
	Stored   int         `json:"stored"`
	IDs      []string    `json:"ids"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

type DeleteEventRequest struct {
	ID string `json:"id"`
}

type DeleteEventResponse struct{}

type PutSettlementsRequest struct {
	Settlements []Settlement `json:"settlements"`
}

type PutSettlementsResponse struct {
	Stored   int         `json:"stored"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

type Account struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

type PutAccountRequest struct {
	Account Account `json:"account"`
}

type PutAccountResponse struct {
	ID string `json:"id"`
}

type CreditCard struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
}

type PutCreditCardRequest struct {
	Card CreditCard `json:"card"`
}

type PutCreditCardResponse struct {
	ID string `json:"id"`
}

type IncomeItem struct {
	ID          string          `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source,omitempty"`
}

type PutIncomeItemsRequest struct {
	Items []IncomeItem `json:"items"`
}

type PutIncomeItemsResponse struct {
	Stored   int         `json:"stored"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

type Vendor struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	TotalOwed         decimal.Decimal `json:"total_owed"`
	NextPaymentDate   string          `json:"next_payment_date,omitempty"`
	NextPaymentAmount decimal.Decimal `json:"next_payment_amount"`
	Status            string          `json:"status,omitempty"`
	POName            string          `json:"po_name,omitempty"`
}

type PutVendorsRequest struct {
	Vendors []Vendor `json:"vendors"`
}

type PutVendorsResponse struct {
	Stored   int         `json:"stored"`
	Rejected []Rejection `json:"rejected,omitempty"`
}
