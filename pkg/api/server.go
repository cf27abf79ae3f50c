package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/platinummonkey/feedgate/pkg/authz"
	"github.com/platinummonkey/feedgate/pkg/feed"
	"github.com/platinummonkey/feedgate/pkg/middleware"
	"github.com/platinummonkey/feedgate/pkg/observability"
)

// Server routes feed requests through authorization to the feed engine.
type Server struct {
	router    *mux.Router
	facade    *authz.Facade
	generator feed.Generator
	cache     *feed.Cache
	logger    *observability.Logger
	metrics   *observability.Metrics
}

// Options configures optional server behavior.
type Options struct {
	// RateLimiter, when set, wraps all routes.
	RateLimiter *middleware.RateLimiter
	// MetricsEndpoint exposes /metrics when true.
	MetricsEndpoint bool
}

// NewServer assembles the router. The generator is the external
// feed-scraping engine; cache may be nil to disable caching.
func NewServer(facade *authz.Facade, generator feed.Generator, cache *feed.Cache,
	logger *observability.Logger, metrics *observability.Metrics, opts Options) *Server {

	s := &Server{
		router:    mux.NewRouter(),
		facade:    facade,
		generator: generator,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
	}
	s.registerRoutes(opts)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerRoutes(opts Options) {
	s.router.HandleFunc("/healthz", s.health).Methods("GET")
	if opts.MetricsEndpoint {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	s.router.HandleFunc("/feeds", s.directFeed).Methods("GET")
	s.router.HandleFunc("/f", s.delegatedFeed).Methods("GET")
	s.router.HandleFunc("/tokens", s.issueToken).Methods("POST")

	s.router.Use(middleware.RequestLogger(s.logger, s.metrics))
	if opts.RateLimiter != nil {
		s.router.Use(opts.RateLimiter.Handler(s.logger, s.metrics))
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
