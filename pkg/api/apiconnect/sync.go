package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/cashflow/pkg/api"
)

// SyncServiceName is the fully-qualified name of the SyncService service.
const SyncServiceName = "cashflow.v1.SyncService"

// Procedure paths of SyncService's RPCs.
const (
	SyncServicePutEventsProcedure      = "/cashflow.v1.SyncService/PutEvents"
	SyncServiceDeleteEventProcedure    = "/cashflow.v1.SyncService/DeleteEvent"
	SyncServicePutSettlementsProcedure = "/cashflow.v1.SyncService/PutSettlements"
	SyncServicePutAccountProcedure     = "/cashflow.v1.SyncService/PutAccount"
	SyncServicePutCreditCardProcedure  = "/cashflow.v1.SyncService/PutCreditCard"
	SyncServicePutIncomeItemsProcedure = "/cashflow.v1.SyncService/PutIncomeItems"
	SyncServicePutVendorsProcedure     = "/cashflow.v1.SyncService/PutVendors"
)

// SyncServiceHandler is implemented by the server side of SyncService.
type SyncServiceHandler interface {
	PutEvents(context.Context, *connect.Request[api.PutEventsRequest]) (*connect.Response[api.PutEventsResponse], error)
	DeleteEvent(context.Context, *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error)
	PutSettlements(context.Context, *connect.Request[api.PutSettlementsRequest]) (*connect.Response[api.PutSettlementsResponse], error)
	PutAccount(context.Context, *connect.Request[api.PutAccountRequest]) (*connect.Response[api.PutAccountResponse], error)
	PutCreditCard(context.Context, *connect.Request[api.PutCreditCardRequest]) (*connect.Response[api.PutCreditCardResponse], error)
	PutIncomeItems(context.Context, *connect.Request[api.PutIncomeItemsRequest]) (*connect.Response[api.PutIncomeItemsResponse], error)
	PutVendors(context.Context, *connect.Request[api.PutVendorsRequest]) (*connect.Response[api.PutVendorsResponse], error)
}

// NewSyncServiceHandler builds an HTTP handler from the service implementation.
func NewSyncServiceHandler(svc SyncServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SyncServicePutEventsProcedure,
		connect.NewUnaryHandler(SyncServicePutEventsProcedure, svc.PutEvents, opts...))
	mux.Handle(SyncServiceDeleteEventProcedure,
		connect.NewUnaryHandler(SyncServiceDeleteEventProcedure, svc.DeleteEvent, opts...))
	mux.Handle(SyncServicePutSettlementsProcedure,
		connect.NewUnaryHandler(SyncServicePutSettlementsProcedure, svc.PutSettlements, opts...))
	mux.Handle(SyncServicePutAccountProcedure,
		connect.NewUnaryHandler(SyncServicePutAccountProcedure, svc.PutAccount, opts...))
	mux.Handle(SyncServicePutCreditCardProcedure,
		connect.NewUnaryHandler(SyncServicePutCreditCardProcedure, svc.PutCreditCard, opts...))
	mux.Handle(SyncServicePutIncomeItemsProcedure,
		connect.NewUnaryHandler(SyncServicePutIncomeItemsProcedure, svc.PutIncomeItems, opts...))
	mux.Handle(SyncServicePutVendorsProcedure,
		connect.NewUnaryHandler(SyncServicePutVendorsProcedure, svc.PutVendors, opts...))

	return "/" + SyncServiceName + "/", mux
}

// SyncServiceClient is a client for SyncService.
type SyncServiceClient struct {
	putEvents      *connect.Client[api.PutEventsRequest, api.PutEventsResponse]
	deleteEvent    *connect.Client[api.DeleteEventRequest, api.DeleteEventResponse]
	putSettlements *connect.Client[api.PutSettlementsRequest, api.PutSettlementsResponse]
	putAccount     *connect.Client[api.PutAccountRequest, api.PutAccountResponse]
	putCreditCard  *connect.Client[api.PutCreditCardRequest, api.PutCreditCardResponse]
	putIncomeItems *connect.Client[api.PutIncomeItemsRequest, api.PutIncomeItemsResponse]
	putVendors     *connect.Client[api.PutVendorsRequest, api.PutVendorsResponse]
}

// NewSyncServiceClient constructs a client for SyncService at baseURL.
func NewSyncServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SyncServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &SyncServiceClient{
		putEvents:      connect.NewClient[api.PutEventsRequest, api.PutEventsResponse](httpClient, baseURL+SyncServicePutEventsProcedure, opts...),
		deleteEvent:    connect.NewClient[api.DeleteEventRequest, api.DeleteEventResponse](httpClient, baseURL+SyncServiceDeleteEventProcedure, opts...),
		putSettlements: connect.NewClient[api.PutSettlementsRequest, api.PutSettlementsResponse](httpClient, baseURL+SyncServicePutSettlementsProcedure, opts...),
		putAccount:     connect.NewClient[api.PutAccountRequest, api.PutAccountResponse](httpClient, baseURL+SyncServicePutAccountProcedure, opts...),
		putCreditCard:  connect.NewClient[api.PutCreditCardRequest, api.PutCreditCardResponse](httpClient, baseURL+SyncServicePutCreditCardProcedure, opts...),
		putIncomeItems: connect.NewClient[api.PutIncomeItemsRequest, api.PutIncomeItemsResponse](httpClient, baseURL+SyncServicePutIncomeItemsProcedure, opts...),
		putVendors:     connect.NewClient[api.PutVendorsRequest, api.PutVendorsResponse](httpClient, baseURL+SyncServicePutVendorsProcedure, opts...),
	}
}

func (c *SyncServiceClient) PutEvents(ctx context.Context, req *connect.Request[api.PutEventsRequest]) (*connect.Response[api.PutEventsResponse], error) {
	return c.putEvents.CallUnary(ctx, req)
}

func (c *SyncServiceClient) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	return c.deleteEvent.CallUnary(ctx, req)
}

func (c *SyncServiceClient) PutSettlements(ctx context.Context, req *connect.Request[api.PutSettlementsRequest]) (*connect.Response[api.PutSettlementsResponse], error) {
	return c.putSettlements.CallUnary(ctx, req)
}

func (c *SyncServiceClient) PutAccount(ctx context.Context, req *connect.Request[api.PutAccountRequest]) (*connect.Response[api.PutAccountResponse], error) {
	return c.putAccount.CallUnary(ctx, req)
}

func (c *SyncServiceClient) PutCreditCard(ctx context.Context, req *connect.Request[api.PutCreditCardRequest]) (*connect.Response[api.PutCreditCardResponse], error) {
	return c.putCreditCard.CallUnary(ctx, req)
}

func (c *SyncServiceClient) PutIncomeItems(ctx context.Context, req *connect.Request[api.PutIncomeItemsRequest]) (*connect.Response[api.PutIncomeItemsResponse], error) {
	return c.putIncomeItems.CallUnary(ctx, req)
}

func (c *SyncServiceClient) PutVendors(ctx context.Context, req *connect.Request[api.PutVendorsRequest]) (*connect.Response[api.PutVendorsResponse], error) {
	return c.putVendors.CallUnary(ctx, req)
}
