// Package tabage resolves how old a browser tab is: it normalizes tab URLs
// to a comparable domain, recovers creation dates from URL patterns when the
// browser didn't report one, and buckets ages into coarse categories.
package tabage

import (
	"net/url"
	"strings"
)

// ExtractDomain normalizes a URL to its site identity: the host component
// with any leading "www." stripped. Malformed or schemeless input yields ""
// rather than an error; callers treat "" as no usable domain.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	return strings.TrimPrefix(host, "www.")
}
