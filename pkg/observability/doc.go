// Package observability provides structured logging, Prometheus metrics,
// health checks, OpenTelemetry setup and graceful shutdown.
//
// # Structured Logging
//
// Logger writes JSON lines through logrus:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("kind", "phone").Info("search served")
//
// Request-scoped loggers carry the request id and, when a span is
// recording, the trace and span ids:
//
//	observability.FromContext(r.Context()).WithError(err).Error("search failed")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	svc := search.NewService(store, metrics)
//
// Metrics implements search.Recorder, so every search is counted by kind
// and status.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(db, version)
//	observability.RegisterHealthRoutes(mux, checker)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
package observability
