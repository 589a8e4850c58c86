package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsInterceptorCountsCodes(t *testing.T) {
	interceptor := MetricsInterceptor()
	ok := interceptor.WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, nil
	})
	missing := interceptor.WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("no such event"))
	})
	plain := interceptor.WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("boom")
	})

	req := connect.NewRequest(&struct{}{})
	procedure := req.Spec().Procedure
	okBefore := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "ok"))
	notFoundBefore := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "not_found"))
	unknownBefore := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "unknown"))

	ok(context.Background(), req)
	ok(context.Background(), req)
	missing(context.Background(), req)
	plain(context.Background(), req)

	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "ok")) - okBefore; got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "not_found")) - notFoundBefore; got != 1 {
		t.Errorf("not_found count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "unknown")) - unknownBefore; got != 1 {
		t.Errorf("unknown count = %v, want 1", got)
	}
}

func TestObserveProjection(t *testing.T) {
	hitsBefore := testutil.ToFloat64(projectionCache.WithLabelValues("hit"))
	missesBefore := testutil.ToFloat64(projectionCache.WithLabelValues("miss"))

	ObserveProjection(3*time.Millisecond, 4, true)
	ObserveProjection(5*time.Millisecond, 0, false)
	ObserveProjection(2*time.Millisecond, 4, true)

	if got := testutil.ToFloat64(skippedEvents); got != 4 {
		t.Errorf("skipped events = %v, want 4", got)
	}
	if got := testutil.ToFloat64(projectionCache.WithLabelValues("hit")) - hitsBefore; got != 2 {
		t.Errorf("cache hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(projectionCache.WithLabelValues("miss")) - missesBefore; got != 1 {
		t.Errorf("cache misses = %v, want 1", got)
	}
}
