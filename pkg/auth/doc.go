// Package auth provides bearer credential extraction and security audit events.
//
// # Overview
//
// This package implements the authentication edge of FeedGate: pulling the bearer
// credential out of an HTTP request, resolving it against the account directory, and
// shaping structured audit events for every security-relevant decision.
//
// # Credential Extraction
//
// Credentials arrive only in the Authorization header:
//
//	Authorization: Bearer <credential>
//
// Query parameters and cookies are deliberately not accepted for direct
// authentication, so credentials stay out of access logs and browser history.
// Credentials longer than 1024 bytes are rejected before any lookup.
//
// # Authentication
//
//	authn := auth.NewBearerAuthenticator(store)
//	acct, err := authn.Authenticate(r)
//	switch {
//	case errors.Is(err, auth.ErrNoCredential):
//		// no Authorization header
//	case errors.Is(err, auth.ErrUnknownCredential):
//		// credential not in the directory
//	}
//
// # Audit Events
//
// Every decision is logged with a uniform event shape:
//
//	ev := auth.EventFromRequest(r, auth.ActionAuthFailure)
//	ev.Reason = string(decision.Reason)
//	logger.WithFields(ev.Fields()).Warn("authentication failed")
//
// Events carry the client IP (honoring X-Forwarded-For and X-Real-IP), user agent,
// and for token flows a short non-reversible token digest. Raw credentials and raw
// tokens never appear in events.
//
// # Related Packages
//
//   - pkg/accounts: the credential directory
//   - pkg/authz: consumes Authenticate results for full decisions
//   - pkg/observability: structured logger the events feed into
package auth
