// Package authz is the authorization facade combining authentication, allow-list
// policy, and feed token issuing/redemption.
//
// # Overview
//
// Handlers ask this package one question: may this request read this feed URL? The
// facade answers for both access modes:
//
// Direct mode — bearer credential in the Authorization header:
//
//	decision := facade.AuthorizeDirect(r, rawURL)
//
// Delegated mode — signed feed token in a query parameter:
//
//	decision := facade.AuthorizeDelegated(encodedToken, rawURL)
//
// Both return a Decision carrying the resolved account (when one resolved), an
// Allowed flag, and a Reason. The Reason is for logging and metrics only; HTTP
// responses stay uniform so callers cannot probe which check failed.
//
// # Policy
//
// Every decision re-checks the account's current allow-list. A still-signed,
// unexpired token stops working the moment the account's patterns are narrowed or
// the account is removed, because delegated authorization resolves the username
// against the live directory on every request.
//
// # Token Issuing
//
//	encoded, ok := facade.IssueFeedToken(acct, rawURL)
//
// Issuing runs the same allow-list check as serving: an account can only mint tokens
// for URLs it could read directly.
//
// # Related Packages
//
//   - pkg/auth: bearer credential extraction
//   - pkg/feedtoken: token create/validate primitives
//   - pkg/urlmatch: allow-list evaluation
//   - pkg/api: HTTP handlers built on the facade
package authz
