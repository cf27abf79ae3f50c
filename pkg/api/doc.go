// Package api implements the HTTP surface of FeedGate.
//
// # Overview
//
// This package wires the authorization facade, the feed generator, and the cache
// behind a gorilla/mux router.
//
// # Endpoints
//
//	GET  /healthz          liveness probe
//	GET  /metrics          Prometheus exposition (optional)
//	GET  /feeds?url=...    direct mode: bearer credential in Authorization header
//	GET  /f?token=...&url=...  delegated mode: signed feed token
//	POST /tokens           issue a feed token for a URL (direct auth required)
//
// Denials are uniform: authentication failures answer 401 whether the credential
// (or token) is missing, unknown, expired, or tampered with; only an authenticated
// account denied by its own allow-list sees 403. The differentiated reason goes to
// logs and metrics only.
//
// # Related Packages
//
//   - pkg/authz: every request's allow/deny decision
//   - pkg/feed: document generation and caching
//   - pkg/middleware: request logging and rate limiting mounted on the router
package api
