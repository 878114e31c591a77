package tabage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.example.com/x", "example.com"},
		{"http://example.com/y", "example.com"},
		{"https://shop.example.com/cart", "shop.example.com"},
		{"https://www.shop.example.com/cart", "shop.example.com"},
		{"http://blog.test.org:8080/post/123", "blog.test.org"},
		{"https://example.com", "example.com"},
		{"", ""},
		{"not a url at all", ""},
		{"/relative/path", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ExtractDomain(tc.url), "domain for %q", tc.url)
	}
}

func TestExtractDomain_SchemeInsensitive(t *testing.T) {
	// The same site behind different schemes and www variants must compare equal.
	a := ExtractDomain("https://www.example.com/x")
	b := ExtractDomain("http://example.com/y")
	assert.Equal(t, a, b)
	assert.Equal(t, "example.com", a)
}
