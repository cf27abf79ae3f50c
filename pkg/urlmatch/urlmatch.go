package urlmatch

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxURLLength is the hard ceiling on raw URL input, in bytes.
const MaxURLLength = 2048

// Normalize parses raw as an absolute http/https URL and returns its
// canonical form: lowercased scheme and host, path (defaulting to "/")
// and query preserved, fragment dropped. The boolean is false for empty,
// oversize, relative, or unparseable input. Normalize never panics.
func Normalize(raw string) (string, bool) {
	if raw == "" || len(raw) > MaxURLLength {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(strings.ToLower(u.Host))
	if u.Path == "" {
		b.WriteString("/")
	} else {
		b.WriteString(u.EscapedPath())
	}
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String(), true
}

// IsValid reports whether raw normalizes to a canonical URL.
func IsValid(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}

// Matches reports whether rawURL matches a single allow-list pattern.
// Wildcard patterns (`*` matches any run of characters, including none)
// are matched against the normalized URL. Exact patterns are compared
// both verbatim and in their own normalized form, so a config entry of
// "https://Example.com" matches a request for "https://example.com/".
func Matches(rawURL, pattern string) bool {
	normalized, ok := Normalize(rawURL)
	if !ok {
		return false
	}
	if pattern == "" {
		return false
	}

	if strings.Contains(pattern, "*") {
		return globMatch(normalized, pattern)
	}

	if strings.EqualFold(normalized, pattern) {
		return true
	}
	if normPattern, ok := Normalize(pattern); ok {
		return strings.EqualFold(normalized, normPattern)
	}
	return false
}

// IsAllowed reports whether rawURL is permitted by the account's pattern
// list. An empty list means no restriction is configured; an URL that
// fails normalization is never allowed.
func IsAllowed(rawURL string, patterns []string) bool {
	if !IsValid(rawURL) {
		return false
	}
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if Matches(rawURL, p) {
			return true
		}
	}
	return false
}

// MatchingPattern returns the first pattern that matches rawURL, for
// diagnostics and logging. The boolean is false when nothing matches or
// when the list is empty (an empty list allows everything but names no
// pattern).
func MatchingPattern(rawURL string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if Matches(rawURL, p) {
			return p, true
		}
	}
	return "", false
}

// globMatch compiles the wildcard pattern into an anchored RE2 expression
// with every literal segment quoted. RE2 matching is linear in the input,
// so hostile configuration cannot cause pathological backtracking.
func globMatch(candidate, pattern string) bool {
	var b strings.Builder
	b.WriteString("(?i)^")
	for i, segment := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(segment))
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(candidate)
}
