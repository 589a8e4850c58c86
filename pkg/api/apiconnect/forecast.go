package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/cashflow/pkg/api"
)

// ForecastServiceName is the fully-qualified name of the ForecastService service.
const ForecastServiceName = "cashflow.v1.ForecastService"

// Procedure paths of ForecastService's RPCs.
const (
	ForecastServiceProjectProcedure              = "/cashflow.v1.ForecastService/Project"
	ForecastServiceExtractOpportunitiesProcedure = "/cashflow.v1.ForecastService/ExtractOpportunities"
	ForecastServiceClassifySettlementProcedure   = "/cashflow.v1.ForecastService/ClassifySettlement"
	ForecastServiceListOpenSettlementsProcedure  = "/cashflow.v1.ForecastService/ListOpenSettlements"
	ForecastServiceSearchByAmountProcedure       = "/cashflow.v1.ForecastService/SearchByAmount"
	ForecastServiceSearchByDateProcedure         = "/cashflow.v1.ForecastService/SearchByDate"
)

// ForecastServiceHandler is implemented by the server side of ForecastService.
type ForecastServiceHandler interface {
	Project(context.Context, *connect.Request[api.ProjectRequest]) (*connect.Response[api.ProjectResponse], error)
	ExtractOpportunities(context.Context, *connect.Request[api.ExtractOpportunitiesRequest]) (*connect.Response[api.ExtractOpportunitiesResponse], error)
	ClassifySettlement(context.Context, *connect.Request[api.ClassifySettlementRequest]) (*connect.Response[api.ClassifySettlementResponse], error)
	ListOpenSettlements(context.Context, *connect.Request[api.ListOpenSettlementsRequest]) (*connect.Response[api.ListOpenSettlementsResponse], error)
	SearchByAmount(context.Context, *connect.Request[api.SearchByAmountRequest]) (*connect.Response[api.SearchByAmountResponse], error)
	SearchByDate(context.Context, *connect.Request[api.SearchByDateRequest]) (*connect.Response[api.SearchByDateResponse], error)
}

// NewForecastServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewForecastServiceHandler(svc ForecastServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ForecastServiceProjectProcedure,
		connect.NewUnaryHandler(ForecastServiceProjectProcedure, svc.Project, opts...))
	mux.Handle(ForecastServiceExtractOpportunitiesProcedure,
		connect.NewUnaryHandler(ForecastServiceExtractOpportunitiesProcedure, svc.ExtractOpportunities, opts...))
	mux.Handle(ForecastServiceClassifySettlementProcedure,
		connect.NewUnaryHandler(ForecastServiceClassifySettlementProcedure, svc.ClassifySettlement, opts...))
	mux.Handle(ForecastServiceListOpenSettlementsProcedure,
		connect.NewUnaryHandler(ForecastServiceListOpenSettlementsProcedure, svc.ListOpenSettlements, opts...))
	mux.Handle(ForecastServiceSearchByAmountProcedure,
		connect.NewUnaryHandler(ForecastServiceSearchByAmountProcedure, svc.SearchByAmount, opts...))
	mux.Handle(ForecastServiceSearchByDateProcedure,
		connect.NewUnaryHandler(ForecastServiceSearchByDateProcedure, svc.SearchByDate, opts...))

	return "/" + ForecastServiceName + "/", mux
}

// ForecastServiceClient is a client for ForecastService.
type ForecastServiceClient struct {
	project              *connect.Client[api.ProjectRequest, api.ProjectResponse]
	extractOpportunities *connect.Client[api.ExtractOpportunitiesRequest, api.ExtractOpportunitiesResponse]
	classifySettlement   *connect.Client[api.ClassifySettlementRequest, api.ClassifySettlementResponse]
	listOpenSettlements  *connect.Client[api.ListOpenSettlementsRequest, api.ListOpenSettlementsResponse]
	searchByAmount       *connect.Client[api.SearchByAmountRequest, api.SearchByAmountResponse]
	searchByDate         *connect.Client[api.SearchByDateRequest, api.SearchByDateResponse]
}

// NewForecastServiceClient constructs a client for ForecastService at baseURL
// (e.g. http://localhost:8080).
func NewForecastServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ForecastServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ForecastServiceClient{
		project:              connect.NewClient[api.ProjectRequest, api.ProjectResponse](httpClient, baseURL+ForecastServiceProjectProcedure, opts...),
		extractOpportunities: connect.NewClient[api.ExtractOpportunitiesRequest, api.ExtractOpportunitiesResponse](httpClient, baseURL+ForecastServiceExtractOpportunitiesProcedure, opts...),
		classifySettlement:   connect.NewClient[api.ClassifySettlementRequest, api.ClassifySettlementResponse](httpClient, baseURL+ForecastServiceClassifySettlementProcedure, opts...),
		listOpenSettlements:  connect.NewClient[api.ListOpenSettlementsRequest, api.ListOpenSettlementsResponse](httpClient, baseURL+ForecastServiceListOpenSettlementsProcedure, opts...),
		searchByAmount:       connect.NewClient[api.SearchByAmountRequest, api.SearchByAmountResponse](httpClient, baseURL+ForecastServiceSearchByAmountProcedure, opts...),
		searchByDate:         connect.NewClient[api.SearchByDateRequest, api.SearchByDateResponse](httpClient, baseURL+ForecastServiceSearchByDateProcedure, opts...),
	}
}

func (c *ForecastServiceClient) Project(ctx context.Context, req *connect.Request[api.ProjectRequest]) (*connect.Response[api.ProjectResponse], error) {
	return c.project.CallUnary(ctx, req)
}

func (c *ForecastServiceClient) ExtractOpportunities(ctx context.Context, req *connect.Request[api.ExtractOpportunitiesRequest]) (*connect.Response[api.ExtractOpportunitiesResponse], error) {
	return c.extractOpportunities.CallUnary(ctx, req)
}

func (c *ForecastServiceClient) ClassifySettlement(ctx context.Context, req *connect.Request[api.ClassifySettlementRequest]) (*connect.Response[api.ClassifySettlementResponse], error) {
	return c.classifySettlement.CallUnary(ctx, req)
}

func (c *ForecastServiceClient) ListOpenSettlements(ctx context.Context, req *connect.Request[api.ListOpenSettlementsRequest]) (*connect.Response[api.ListOpenSettlementsResponse], error) {
	return c.listOpenSettlements.CallUnary(ctx, req)
}

func (c *ForecastServiceClient) SearchByAmount(ctx context.Context, req *connect.Request[api.SearchByAmountRequest]) (*connect.Response[api.SearchByAmountResponse], error) {
	return c.searchByAmount.CallUnary(ctx, req)
}

func (c *ForecastServiceClient) SearchByDate(ctx context.Context, req *connect.Request[api.SearchByDateRequest]) (*connect.Response[api.SearchByDateResponse], error) {
	return c.searchByDate.CallUnary(ctx, req)
}
