// Package observability provides structured logging and Prometheus metrics.
//
// # Overview
//
// This package centralizes observability infrastructure: a slog-backed JSON logger
// with field chaining, and a Metrics struct holding every Prometheus collector the
// service exports on its own registry.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("port", 8080).Info("server started")
//	logger.WithField("request_id", reqID).WithError(err).Error("request failed")
//
// The authorization core itself never logs; decisions flow back as reasons and the
// HTTP layer logs them through this package.
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics()
//	metrics.AuthDecisionsTotal.WithLabelValues("direct", "ok").Inc()
//	metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
//	http.Handle("/metrics", metrics.Handler())
//
// Collectors cover HTTP traffic, authorization decisions by mode and reason, token
// issue/validation outcomes, feed generation latency, cache hits/misses, and rate
// limiting.
//
// # Related Packages
//
//   - pkg/middleware: request logging middleware built on the logger
//   - pkg/api: records decision metrics per request
package observability
