// Package urlmatch provides feed URL validation and allow-list pattern matching.
//
// # Overview
//
// This package normalizes candidate feed URLs and evaluates them against per-account
// allow-list patterns. Patterns are either verbatim URLs or glob patterns where '*'
// matches any run of characters (including none, and across '/').
//
// # URL Validity
//
// A candidate URL is valid when it is absolute, uses the http or https scheme, has a
// non-empty host, and is at most 2048 bytes. Normalization lowercases the scheme and
// host, replaces an empty path with "/", keeps the query string, and drops any
// fragment.
//
// # Pattern Matching
//
// Verbatim patterns compare case-insensitively against both the raw and the
// normalized form of the candidate:
//
//	urlmatch.Matches("https://Example.com/feed", "https://example.com/feed") // true
//
// Glob patterns compile to anchored regular expressions with every literal segment
// quoted, so regex metacharacters in patterns carry no special meaning and matching
// stays linear-time:
//
//	urlmatch.Matches("https://blog.example.com/a/b", "https://blog.example.com/*") // true
//
// # Allow-List Evaluation
//
// IsAllowed applies an account's whole pattern list:
//
//	if !urlmatch.IsAllowed(rawURL, acct.AllowedURLPatterns) {
//		// deny
//	}
//
// An empty pattern list allows any valid URL; an invalid URL is never allowed, even
// by an empty list.
//
// # Related Packages
//
//   - pkg/accounts: carries per-account pattern lists
//   - pkg/authz: calls IsAllowed for every authorization decision
package urlmatch
