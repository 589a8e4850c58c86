package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/internal/storage"
	"github.com/mmynk/cashflow/pkg/api"
)

// SyncService implements the Connect SyncService. Sync collaborators push
// their records through it; items that cannot be stored are rejected
// individually and the rest of the batch is kept.
type SyncService struct {
	store storage.Store
}

// NewSyncService creates a new SyncService with the given storage backend.
func NewSyncService(store storage.Store) *SyncService {
	return &SyncService{store: store}
}

func rejection(index int, id string, err error) api.Rejection {
	return api.Rejection{Index: index, ID: id, Reason: err.Error()}
}

// PutEvents stores cash flow events
func (s *SyncService) PutEvents(ctx context.Context, req *connect.Request[api.PutEventsRequest]) (*connect.Response[api.PutEventsResponse], error) {
	var (
		events   []models.CashFlowEvent
		rejected []api.Rejection
	)
	for i, e := range req.Msg.Events {
		ev, err := eventFromAPI(e)
		if err != nil {
			rejected = append(rejected, rejection(i, e.ID, err))
			continue
		}
		events = append(events, ev)
	}

	if len(events) > 0 {
		if err := s.store.UpsertEvents(ctx, events); err != nil {
			return nil, connectError("PutEvents", err)
		}
	}

	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID
	}
	slog.Info("Events synced", "stored", len(events), "rejected", len(rejected))

	return connect.NewResponse(&api.PutEventsResponse{
		Stored:   len(events),
		IDs:      ids,
		Rejected: rejected,
	}), nil
}

// DeleteEvent removes a cash flow event by ID
func (s *SyncService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	if req.Msg.ID == "" {
		return nil, invalidArgument("DeleteEvent", fmt.Errorf("id is required"))
	}
	if err := s.store.DeleteEvent(ctx, req.Msg.ID); err != nil {
		return nil, connectError("DeleteEvent", err)
	}
	slog.Info("Event deleted", "event_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}

// PutSettlements stores marketplace settlements
func (s *SyncService) PutSettlements(ctx context.Context, req *connect.Request[api.PutSettlementsRequest]) (*connect.Response[api.PutSettlementsResponse], error) {
	var (
		records  []models.SettlementRecord
		rejected []api.Rejection
	)
	for i, in := range req.Msg.Settlements {
		rec, err := settlementFromAPI(in)
		if err != nil {
			rejected = append(rejected, rejection(i, in.ID, err))
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := s.store.UpsertSettlements(ctx, records); err != nil {
			return nil, connectError("PutSettlements", err)
		}
	}
	slog.Info("Settlements synced", "stored", len(records), "rejected", len(rejected))

	return connect.NewResponse(&api.PutSettlementsResponse{Stored: len(records), Rejected: rejected}), nil
}

// PutAccount stores a bank account balance
func (s *SyncService) PutAccount(ctx context.Context, req *connect.Request[api.PutAccountRequest]) (*connect.Response[api.PutAccountResponse], error) {
	in := req.Msg.Account
	if in.Name == "" {
		return nil, invalidArgument("PutAccount", fmt.Errorf("account name is required"))
	}
	account := &models.Account{ID: in.ID, Name: in.Name, CurrentBalance: in.CurrentBalance}
	if err := s.store.UpsertAccount(ctx, account); err != nil {
		return nil, connectError("PutAccount", err)
	}
	slog.Info("Account synced", "account_id", account.ID)
	return connect.NewResponse(&api.PutAccountResponse{ID: account.ID}), nil
}

// PutCreditCard stores a credit card's available credit
func (s *SyncService) PutCreditCard(ctx context.Context, req *connect.Request[api.PutCreditCardRequest]) (*connect.Response[api.PutCreditCardResponse], error) {
	in := req.Msg.Card
	if in.Name == "" {
		return nil, invalidArgument("PutCreditCard", fmt.Errorf("card name is required"))
	}
	if in.AvailableCredit.IsNegative() {
		return nil, invalidArgument("PutCreditCard", fmt.Errorf("available credit must not be negative"))
	}
	card := &models.CreditCard{ID: in.ID, Name: in.Name, AvailableCredit: in.AvailableCredit}
	if err := s.store.UpsertCreditCard(ctx, card); err != nil {
		return nil, connectError("PutCreditCard", err)
	}
	slog.Info("Credit card synced", "card_id", card.ID)
	return connect.NewResponse(&api.PutCreditCardResponse{ID: card.ID}), nil
}

// PutIncomeItems stores expected and received income
func (s *SyncService) PutIncomeItems(ctx context.Context, req *connect.Request[api.PutIncomeItemsRequest]) (*connect.Response[api.PutIncomeItemsResponse], error) {
	var (
		items    []models.IncomeItem
		rejected []api.Rejection
	)
	for i, in := range req.Msg.Items {
		item, err := incomeFromAPI(in)
		if err != nil {
			rejected = append(rejected, rejection(i, in.ID, err))
			continue
		}
		items = append(items, item)
	}

	if len(items) > 0 {
		if err := s.store.UpsertIncomeItems(ctx, items); err != nil {
			return nil, connectError("PutIncomeItems", err)
		}
	}
	slog.Info("Income items synced", "stored", len(items), "rejected", len(rejected))

	return connect.NewResponse(&api.PutIncomeItemsResponse{Stored: len(items), Rejected: rejected}), nil
}

// PutVendors stores vendors and their next purchase order payment
func (s *SyncService) PutVendors(ctx context.Context, req *connect.Request[api.PutVendorsRequest]) (*connect.Response[api.PutVendorsResponse], error) {
	var (
		vendors  []models.Vendor
		rejected []api.Rejection
	)
	for i, in := range req.Msg.Vendors {
		v, err := vendorFromAPI(in)
		if err != nil {
			rejected = append(rejected, rejection(i, in.ID, err))
			continue
		}
		vendors = append(vendors, v)
	}

	if len(vendors) > 0 {
		if err := s.store.UpsertVendors(ctx, vendors); err != nil {
			return nil, connectError("PutVendors", err)
		}
	}
	slog.Info("Vendors synced", "stored", len(vendors), "rejected", len(rejected))

	return connect.NewResponse(&api.PutVendorsResponse{Stored: len(vendors), Rejected: rejected}), nil
}
