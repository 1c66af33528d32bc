// Package identity canonicalizes the keys used to correlate records across sources.
package identity

import "strings"

// NormalizeHandle returns the canonical form of a GitHub handle.
// GitHub logins are ASCII and case-insensitive, so lowercasing is enough.
// It reports false for an empty handle.
func NormalizeHandle(raw string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(raw))
	if h == "" {
		return "", false
	}
	return h, true
}

// LastPathSegment returns the trailing path segment of a stable URI,
// e.g. "42" for "https://api.w3.org/users/42". Trailing slashes are ignored.
// A value without any usable segment is returned unchanged.
func LastPathSegment(uri string) string {
	trimmed := strings.TrimRight(uri, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return uri
	}
	return trimmed[idx+1:]
}

// Matches reports whether a deep-link token designates the URI.
func Matches(uri, token string) bool {
	if token == "" {
		return false
	}
	return LastPathSegment(uri) == token
}
