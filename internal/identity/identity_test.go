package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "mixed case is lowercased", raw: "AExpert", expected: "aexpert", ok: true},
		{name: "surrounding space is trimmed", raw: "  Foo-Bar ", expected: "foo-bar", ok: true},
		{name: "empty handle", raw: "", ok: false},
		{name: "blank handle", raw: "   ", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeHandle(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLastPathSegment(t *testing.T) {
	testCases := []struct {
		uri      string
		expected string
	}{
		{uri: "https://api.w3.org/users/42", expected: "42"},
		{uri: "https://api.w3.org/affiliations/52794/", expected: "52794"},
		{uri: "https://api.w3.org/users/abc123def", expected: "abc123def"},
		{uri: "no-slash-at-all", expected: "no-slash-at-all"},
		{uri: "///", expected: "///"},
		{uri: "", expected: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.uri, func(t *testing.T) {
			assert.Equal(t, tc.expected, LastPathSegment(tc.uri))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("https://api.w3.org/users/42", "42"))
	assert.False(t, Matches("https://api.w3.org/users/42", "4"))
	assert.False(t, Matches("https://api.w3.org/users/42", ""))
	assert.False(t, Matches("", ""))
}
