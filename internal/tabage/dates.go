package tabage

import (
	"regexp"
	"strconv"
	"time"
)

// A datePattern is one independently testable URL date heuristic: a regexp
// predicate plus an extractor over its submatches. Patterns are evaluated in
// registration order and the first match wins; an extractor returning false
// (e.g. month 13) is treated as a non-match and evaluation falls through.
type datePattern struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) (time.Time, bool)
}

var datePatterns = []datePattern{
	{
		// Path-segment date: /2024/4/2/
		name: "path-segment",
		re:   regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})/`),
		extract: func(m []string) (time.Time, bool) {
			return calendarDate(m[1], m[2], m[3])
		},
	},
	{
		// ISO dash date anywhere after a / or ? separator: 2022-11-30
		name: "iso-dash",
		re:   regexp.MustCompile(`[/?].*?(\d{4})-(\d{1,2})-(\d{1,2})`),
		extract: func(m []string) (time.Time, bool) {
			return calendarDate(m[1], m[2], m[3])
		},
	},
	{
		// Keyword-guarded date: published=2023-12-25 or published/2023/12/25
		name: "published-keyword",
		re:   regexp.MustCompile(`(?i)published[=/](\d{4})[-/](\d{1,2})[-/](\d{1,2})`),
		extract: func(m []string) (time.Time, bool) {
			return calendarDate(m[1], m[2], m[3])
		},
	},
}

// InferDate recovers a creation date from patterns commonly embedded in blog
// and news URLs. Returns ok=false when no pattern matches or every matched
// candidate fails calendar validation. Never errors on malformed input.
func InferDate(rawURL string) (time.Time, bool) {
	if rawURL == "" {
		return time.Time{}, false
	}
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		if t, ok := p.extract(m); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// calendarDate builds a UTC date from numeric components, rejecting values
// that don't form a real calendar date (time.Date normalizes overflow, so a
// round-trip comparison catches month 13 or February 30).
func calendarDate(ys, ms, ds string) (time.Time, bool) {
	year, err := strconv.Atoi(ys)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(ds)
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
