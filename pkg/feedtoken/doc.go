// Package feedtoken implements signed, URL-bound feed capability tokens.
//
// # Overview
//
// A feed token lets a feed reader poll one specific URL on behalf of one account
// without carrying the account's bearer credential. Tokens are HMAC-SHA256 signed,
// deflate-compressed, and base64url-encoded, so they fit in a query parameter.
//
// # Token Format
//
// The signature covers a canonical JSON payload with fixed field order:
//
//	{"username":"alice","url":"https://blog.example.com/feed","expires_at":1790000000}
//
// The encoded wire form compresses a compact envelope:
//
//	{"p":{"u":"alice","l":"https://...","e":1790000000},"s":"<hex hmac>"}
//
// Decoding accepts both raw and padded base64url. Decompressed size is capped to
// guard against decompression bombs.
//
// # Issuing and Redeeming
//
//	tok, ok := feedtoken.Create(username, rawURL, secret, 10*365*24*time.Hour)
//	encoded, err := tok.Encode()
//
//	tok, reason := feedtoken.ValidateAndDecode(encoded, expectedURL, secret)
//	if reason != feedtoken.ReasonOK {
//		// reject; reason is for logging only
//	}
//
// Validation order is decode, signature, URL binding, expiry. The URL bound into the
// token must equal the requested URL exactly; near-misses such as a trailing slash or
// a different scheme do not redeem. Signature bytes compare in constant time.
//
// # Feed Identifiers
//
// DeriveFeedID produces a stable, unguessable per-(account, URL) identifier from the
// account's credential, and CorrelationDigest gives a short non-reversible handle for
// correlating one token across log lines.
//
// # Related Packages
//
//   - pkg/authz: issues and redeems tokens as part of authorization decisions
//   - pkg/urlmatch: validates URLs before a token is minted
package feedtoken
