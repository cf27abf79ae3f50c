// Package httputil provides HTTP helpers for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON responses, error responses, and
// request body parsing, so handlers stay small and every endpoint speaks the same
// envelope.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, "ok")
//	httputil.WriteCreated(w, resource)
//
// Error responses:
//
//	httputil.WriteBadRequest(w, "missing url parameter")
//	httputil.WriteUnauthorized(w, "authentication required")
//	httputil.WriteForbidden(w, "access denied")
//	httputil.WriteTooManyRequests(w, "rate limit exceeded")
//	httputil.WriteBadGateway(w, "feed generation failed")
//
// # Request Parsing
//
// JSON parsing with a size cap and unknown-field rejection:
//
//	var req IssueTokenRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // error response already written
//	}
//
// # Related Packages
//
//   - pkg/api: the handlers these helpers serve
//   - pkg/middleware: request logging and rate limiting
package httputil
