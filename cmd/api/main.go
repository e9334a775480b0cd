package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/jiaotianpharma/warehouse-backend/api/routes"
	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	inventorysvc "github.com/jiaotianpharma/warehouse-backend/internal/inventory"
	"github.com/jiaotianpharma/warehouse-backend/pkg/config"
	"github.com/jiaotianpharma/warehouse-backend/pkg/db"
	"github.com/jiaotianpharma/warehouse-backend/pkg/logger"
	"github.com/jiaotianpharma/warehouse-backend/pkg/metrics"
	"github.com/jiaotianpharma/warehouse-backend/pkg/migrate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStoreMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	auditService, err := auditlog.NewService(auditlog.NewRepository(dbClient.DB()), cfg.Audit)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit log service", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	inventoryService, err := inventorysvc.NewService(
		inventorysvc.NewRepository(dbClient.DB()),
		dbClient,
		auditService,
		storeMetrics,
		cfg.Audit,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedDemoData {
		if err := inventoryService.Init(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed demo inventory", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, inventoryService, auditService, httpMetrics, registry),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error during shutdown", closeErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}
