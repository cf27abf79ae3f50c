package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authorization metrics
	AuthDecisionsTotal    *prometheus.CounterVec
	TokenValidationsTotal *prometheus.CounterVec
	TokensIssuedTotal     prometheus.Counter

	// Feed generation metrics
	FeedGenerationsTotal   *prometheus.CounterVec
	FeedGenerationDuration prometheus.Histogram

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Rate limit metrics
	RateLimitedTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedgate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feedgate_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedgate_auth_decisions_total",
				Help: "Authorization decisions by mode (direct/delegated) and reason",
			},
			[]string{"mode", "reason"},
		),
		TokenValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedgate_token_validations_total",
				Help: "Feed token validation outcomes",
			},
			[]string{"result"},
		),
		TokensIssuedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feedgate_tokens_issued_total",
				Help: "Feed tokens successfully issued",
			},
		),
		FeedGenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedgate_feed_generations_total",
				Help: "Feed generation attempts by status",
			},
			[]string{"status"},
		),
		FeedGenerationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feedgate_feed_generation_duration_seconds",
				Help:    "Feed generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feedgate_feed_cache_hits_total",
				Help: "Feed cache hits",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feedgate_feed_cache_misses_total",
				Help: "Feed cache misses",
			},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feedgate_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthDecisionsTotal,
		m.TokenValidationsTotal,
		m.TokensIssuedTotal,
		m.FeedGenerationsTotal,
		m.FeedGenerationDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.RateLimitedTotal,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
