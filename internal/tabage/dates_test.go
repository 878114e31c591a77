package tabage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInferDate_PathSegment(t *testing.T) {
	tests := []struct {
		url      string
		expected time.Time
	}{
		{"https://example.com/blog/2023/04/15/sample-post/", date(2023, time.April, 15)},
		{"https://example.com/2024/4/2/short-components/", date(2024, time.April, 2)},
		{"https://example.com/archive/2022/11/30/x", date(2022, time.November, 30)},
	}

	for _, tc := range tests {
		got, ok := InferDate(tc.url)
		require.True(t, ok, "expected a date for %q", tc.url)
		assert.Equal(t, tc.expected, got, "date for %q", tc.url)
	}
}

func TestInferDate_PathSegment_InvalidCalendarFallsThrough(t *testing.T) {
	// Month 13 is not a real date; the path pattern must be treated as a
	// non-match, letting the dash pattern elsewhere in the URL succeed.
	got, ok := InferDate("https://example.com/2023/13/40/post?archive=2022-11-30")
	require.True(t, ok)
	assert.Equal(t, date(2022, time.November, 30), got)
}

func TestInferDate_InvalidCalendarNoFallback(t *testing.T) {
	_, ok := InferDate("https://example.com/2023/13/40/post")
	assert.False(t, ok, "month 13 must not produce a date")

	_, ok = InferDate("https://example.com/news?date=2023-02-30")
	assert.False(t, ok, "February 30 must not produce a date")
}

func TestInferDate_ISODash(t *testing.T) {
	tests := []struct {
		url      string
		expected time.Time
	}{
		{"https://news-site.com/articles/2022-11-30-breaking-news", date(2022, time.November, 30)},
		{"https://magazine.com/story?date=2024-01-05&category=tech", date(2024, time.January, 5)},
		{"https://example.com/post/2023-4-2", date(2023, time.April, 2)},
	}

	for _, tc := range tests {
		got, ok := InferDate(tc.url)
		require.True(t, ok, "expected a date for %q", tc.url)
		assert.Equal(t, tc.expected, got, "date for %q", tc.url)
	}
}

func TestInferDate_PublishedKeyword(t *testing.T) {
	tests := []struct {
		url      string
		expected time.Time
	}{
		{"https://news.org/published/2023/12/25/holiday-story", date(2023, time.December, 25)},
		{"https://news.org/article?published=2023/12/25", date(2023, time.December, 25)},
		{"https://news.org/Published/2024/2/29/leap", date(2024, time.February, 29)},
	}

	for _, tc := range tests {
		got, ok := InferDate(tc.url)
		require.True(t, ok, "expected a date for %q", tc.url)
		assert.Equal(t, tc.expected, got, "date for %q", tc.url)
	}
}

func TestInferDate_PriorityOrder(t *testing.T) {
	// A URL matching both the path-segment and dash patterns must resolve
	// via the path segment; later patterns are never attempted.
	got, ok := InferDate("https://example.com/2020/01/02/story-2021-03-04")
	require.True(t, ok)
	assert.Equal(t, date(2020, time.January, 2), got)
}

func TestInferDate_NoMatch(t *testing.T) {
	urls := []string{
		"https://nodatehere.com/about-us",
		"https://example.com/product/12345",
		"",
	}
	for _, u := range urls {
		_, ok := InferDate(u)
		assert.False(t, ok, "no date expected for %q", u)
	}
}
