package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/cashflow/internal/config"
	"github.com/mmynk/cashflow/internal/forecast"
	"github.com/mmynk/cashflow/internal/middleware"
	"github.com/mmynk/cashflow/internal/refresh"
	"github.com/mmynk/cashflow/internal/service"
	"github.com/mmynk/cashflow/internal/storage"
	"github.com/mmynk/cashflow/internal/storage/postgres"
	"github.com/mmynk/cashflow/internal/storage/sqlite"
	"github.com/mmynk/cashflow/pkg/api/apiconnect"
	"github.com/mmynk/cashflow/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./cashflow.yaml if present)")
	flag.Parse()

	// Setup structured logging from env until the config is read
	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWith(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	forecastCfg, err := forecastConfig(cfg)
	if err != nil {
		slog.Error("Invalid forecast config", "error", err)
		os.Exit(1)
	}
	forecastSvc := service.NewForecastService(store, forecastCfg)

	mux := http.NewServeMux()

	// Register Connect services
	interceptors := connect.WithInterceptors(middleware.MetricsInterceptor(), middleware.LoggingInterceptor())

	forecastPath, forecastHandler := apiconnect.NewForecastServiceHandler(forecastSvc, interceptors)
	mux.Handle(forecastPath, forecastHandler)

	syncPath, syncHandler := apiconnect.NewSyncServiceHandler(service.NewSyncService(store), interceptors)
	mux.Handle(syncPath, syncHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if cfg.Refresh.Schedule != "" {
		scheduler, err := refresh.New(cfg.Refresh.Schedule, forecastSvc, 30*time.Second)
		if err != nil {
			slog.Error("Failed to schedule refresh", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
	}

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(ctx context.Context, db config.DatabaseConfig) (storage.Store, error) {
	switch db.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, db.DSN)
	default:
		return sqlite.New(db.Path)
	}
}

func forecastConfig(cfg *config.Config) (service.ForecastConfig, error) {
	reserve, err := cfg.ReserveAmount()
	if err != nil {
		return service.ForecastConfig{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return service.ForecastConfig{}, err
	}
	f := cfg.Forecast
	return service.ForecastConfig{
		HorizonMonths:            f.HorizonMonths,
		OpportunityHorizonMonths: f.OpportunityHorizonMonths,
		ExcludeToday:             f.ExcludeToday,
		Reserve:                  reserve,
		Location:                 loc,
		Classifier: forecast.Classifier{
			CycleDays:          f.CycleDays,
			CycleDaysByAccount: f.CycleDaysByAccount,
		},
	}, nil
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
