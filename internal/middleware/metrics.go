package middleware

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cashflow",
		Name:      "rpc_requests_total",
		Help:      "Connect RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cashflow",
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	projectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cashflow",
		Name:      "projection_duration_seconds",
		Help:      "Time spent loading a snapshot and projecting it.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	projectionCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cashflow",
		Name:      "projection_cache_total",
		Help:      "Projection memo lookups, by result.",
	}, []string{"result"})

	skippedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cashflow",
		Name:      "projection_skipped_events",
		Help:      "Malformed events skipped by the most recent projection.",
	})
)

// MetricsInterceptor returns a Connect interceptor that counts RPCs and
// observes their latency.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			rpcRequests.WithLabelValues(procedure, codeLabel(err)).Inc()
			return resp, err
		}
	}
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}

// ObserveProjection records one projection run.
func ObserveProjection(d time.Duration, skipped int, cached bool) {
	projectionDuration.Observe(d.Seconds())
	result := "miss"
	if cached {
		result = "hit"
	}
	projectionCache.WithLabelValues(result).Inc()
	skippedEvents.Set(float64(skipped))
}
