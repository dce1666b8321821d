package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/advocates/pkg/httputil"
	"github.com/platinummonkey/advocates/pkg/observability"
	"github.com/platinummonkey/advocates/pkg/search"
)

// Searcher answers raw directory queries
type Searcher interface {
	Search(ctx context.Context, raw string) (*search.Result, error)
}

// Options configures optional server behaviour
type Options struct {
	Logger *observability.Logger

	// Metrics enables Prometheus request instrumentation when set
	Metrics *observability.Metrics

	// CORSOrigins enables CORS for the listed origins
	CORSOrigins []string
}

// Server represents our API server
type Server struct {
	searcher Searcher
	router   *mux.Router
	logger   *observability.Logger
	opts     Options
}

// NewServer creates a new API server
func NewServer(searcher Searcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	s := &Server{
		searcher: searcher,
		router:   mux.NewRouter(),
		logger:   opts.Logger,
		opts:     opts,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/advocates", s.listAdvocates).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.indexPage).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFoundError(w, "not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteMethodNotAllowed(w, "method not allowed")
	})
}

// ServeHTTP implements http.Handler without the middleware stack
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the router wrapped in tracing, request ids, logging,
// panic recovery and, when configured, metrics and CORS
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware(s.logger),
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
	}
	if s.opts.Metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(s.opts.Metrics))
	}
	if len(s.opts.CORSOrigins) > 0 {
		middlewares = append(middlewares, httputil.CORSMiddleware(s.opts.CORSOrigins))
	}

	return otelhttp.NewHandler(httputil.Chain(middlewares...)(s.router), "advocates-api")
}
