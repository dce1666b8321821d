package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/advocates/pkg/api"
	"github.com/platinummonkey/advocates/pkg/config"
	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/search"
)

const dbStatsInterval = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Advocate server stopped with error")
		os.Exit(1)
	}
	logger.Info("Advocate server stopped")
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := observability.InitOTel(ctx, cfg.Observability.OTel(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	var recorder search.Recorder
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
		recorder = metrics
	}

	backend, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	health := observability.NewHealthChecker(backend.db, cfg.Observability.OTelServiceVersion)
	for name, check := range backend.checks {
		health.AddCheck(name, check)
	}

	server := api.NewServer(search.NewService(backend.store, recorder), api.Options{
		Logger:      logger,
		Metrics:     metrics,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	errorLog := logger.Writer()
	apiServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     log.New(errorLog, "", 0),
	}

	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, health)
	if metrics != nil {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:        cfg.Server.HealthAddr(),
		Handler:     healthMux,
		ReadTimeout: cfg.Server.ReadTimeout,
		ErrorLog:    log.New(errorLog, "", 0),
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, apiServer, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return backend.store.Close()
	})
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return errorLog.Close()
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(map[string]interface{}{
			"addr":  apiServer.Addr,
			"store": cfg.Storage.Type,
		}).Info("Starting advocate API server")
		return listen(apiServer)
	})
	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Starting health server")
		return listen(healthServer)
	})
	if metrics != nil && backend.db != nil {
		g.Go(func() error {
			metrics.CollectDBStats(gctx, dbStatsInterval, backend.db.Stats)
			return nil
		})
	}
	g.Go(func() error {
		return shutdown.Wait(gctx)
	})

	return g.Wait()
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve on %s: %w", srv.Addr, err)
	}
	return nil
}
