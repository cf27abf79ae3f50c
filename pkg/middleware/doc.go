// Package middleware provides HTTP middleware for request logging and rate limiting.
//
// # Overview
//
// This package implements the request processing middleware FeedGate mounts on its
// router: per-request structured logging with request IDs, and in-memory token
// bucket rate limiting keyed by client IP.
//
// # Request Logging
//
//	router.Use(middleware.RequestLogger(logger, metrics))
//
// Each request gets an X-Request-ID (generated when the client did not send one),
// a structured log line with method, path, status and duration, and Prometheus
// request counters and histograms.
//
// # Rate Limiting
//
//	limiter := middleware.NewRateLimiter(&middleware.RateLimitConfig{
//		RequestsPerWindow: 100,
//		WindowDuration:    time.Minute,
//		BurstSize:         10,
//	})
//	router.Use(limiter.Handler(logger, metrics))
//
// Over-limit requests receive 429 with a uniform JSON body. Limiting is keyed by
// client IP, not by account: the limiter runs before authentication so unauthorized
// traffic is shed cheaply.
//
// # Related Packages
//
//   - pkg/auth: client IP extraction
//   - pkg/observability: logger and metrics the middleware reports into
package middleware
