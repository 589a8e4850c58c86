package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
	"github.com/mmynk/cashflow/internal/models"
	"github.com/mmynk/cashflow/internal/storage"
	"github.com/mmynk/cashflow/pkg/api"
	"github.com/mmynk/cashflow/pkg/api/apiconnect"
)

// fixedSource serves a fixed balance and no records, or fails every read with err.
type fixedSource struct {
	balance decimal.Decimal
	err     error
}

func (f fixedSource) Events(ctx context.Context, r calendar.Range) ([]models.CashFlowEvent, error) {
	return nil, f.err
}

func (f fixedSource) StartingBalance(ctx context.Context) (decimal.Decimal, error) {
	return f.balance, f.err
}

func (f fixedSource) TotalAvailableCredit(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f fixedSource) SettlementRecords(ctx context.Context) ([]models.SettlementRecord, error) {
	return nil, f.err
}

func (f fixedSource) IncomeItems(ctx context.Context) ([]models.IncomeItem, error) {
	return nil, f.err
}

func (f fixedSource) Vendors(ctx context.Context) ([]models.Vendor, error) {
	return nil, f.err
}

func newSourceClient(t *testing.T, src storage.Source) *apiconnect.ForecastServiceClient {
	t.Helper()
	path, handler := apiconnect.NewForecastServiceHandler(NewForecastService(src, ForecastConfig{}))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return apiconnect.NewForecastServiceClient(http.DefaultClient, server.URL)
}

func TestUnavailableSource(t *testing.T) {
	down := fixedSource{err: fmt.Errorf("dial tcp 10.0.0.5:5432: %w", storage.ErrUnavailable)}
	client := newSourceClient(t, down)
	ctx := context.Background()

	calls := map[string]func() error{
		"Project": func() error {
			_, err := client.Project(ctx, connect.NewRequest(&api.ProjectRequest{Today: today.String()}))
			return err
		},
		"ExtractOpportunities": func() error {
			_, err := client.ExtractOpportunities(ctx, connect.NewRequest(&api.ExtractOpportunitiesRequest{Today: today.String()}))
			return err
		},
		"ListOpenSettlements": func() error {
			_, err := client.ListOpenSettlements(ctx, connect.NewRequest(&api.ListOpenSettlementsRequest{Today: today.String()}))
			return err
		},
		"SearchByAmount": func() error {
			_, err := client.SearchByAmount(ctx, connect.NewRequest(&api.SearchByAmountRequest{Today: today.String(), Amount: dec("1")}))
			return err
		},
		"SearchByDate": func() error {
			_, err := client.SearchByDate(ctx, connect.NewRequest(&api.SearchByDateRequest{Today: today.String(), Date: day(1)}))
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if connect.CodeOf(err) != connect.CodeUnavailable {
				t.Errorf("expected Unavailable, got %v", err)
			}
		})
	}
}

func TestEmptySourceIsNotAnError(t *testing.T) {
	client := newSourceClient(t, fixedSource{balance: dec("500")})
	ctx := context.Background()

	proj, err := client.Project(ctx, connect.NewRequest(&api.ProjectRequest{Today: today.String()}))
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	for _, pt := range proj.Msg.Points {
		assertMoney(t, "balance "+pt.Date, pt.RunningBalance, "500")
	}

	ops, err := client.ExtractOpportunities(ctx, connect.NewRequest(&api.ExtractOpportunitiesRequest{Today: today.String()}))
	if err != nil {
		t.Fatalf("ExtractOpportunities failed: %v", err)
	}
	if len(ops.Msg.Opportunities) != 1 || ops.Msg.Opportunities[0].Date != day(0) {
		t.Errorf("expected a single opportunity today, got %+v", ops.Msg.Opportunities)
	}

	open, err := client.ListOpenSettlements(ctx, connect.NewRequest(&api.ListOpenSettlementsRequest{Today: today.String()}))
	if err != nil {
		t.Fatalf("ListOpenSettlements failed: %v", err)
	}
	if len(open.Msg.Settlements) != 0 {
		t.Errorf("expected no open settlements, got %+v", open.Msg.Settlements)
	}
}
