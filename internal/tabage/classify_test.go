package tabage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestClassifyAge_Boundaries(t *testing.T) {
	tests := []struct {
		ageDays  int
		expected Bucket
	}{
		{0, BucketToday},
		{-3, BucketToday}, // future-dated tabs land in today
		{1, BucketWeek},
		{6, BucketWeek},
		{7, BucketMonth}, // boundaries are exclusive
		{29, BucketMonth},
		{30, BucketOlder},
		{365, BucketOlder},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ClassifyAge(tc.ageDays), "bucket for age %d", tc.ageDays)
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, AgeDays(now, now))
	assert.Equal(t, 0, AgeDays(now, now.Add(-23*time.Hour)))
	assert.Equal(t, 1, AgeDays(now, now.AddDate(0, 0, -1)))
	assert.Equal(t, 30, AgeDays(now, now.AddDate(0, 0, -30)))

	// Future timestamps are not clamped.
	assert.Equal(t, -2, AgeDays(now, now.AddDate(0, 0, 2)))
}

func TestResolve_VerifiedTimestampWins(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -10)

	// URL carries a much older date; the verified timestamp must win.
	res := Resolve(now, &created, boolPtr(true), "https://example.com/2020/01/01/old-post/")
	require.NotNil(t, res.AgeDays)
	assert.Equal(t, 10, *res.AgeDays)
	assert.Equal(t, BucketMonth, res.Bucket)
}

func TestResolve_AbsentVerifiedFlagCountsAsVerified(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -2)

	res := Resolve(now, &created, nil, "https://example.com/no-date")
	require.NotNil(t, res.AgeDays)
	assert.Equal(t, 2, *res.AgeDays)
	assert.Equal(t, BucketWeek, res.Bucket)
}

func TestResolve_UnverifiedFallsBackToURL(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, -1)

	res := Resolve(now, &created, boolPtr(false), "https://example.com/2024/06/05/post/")
	require.NotNil(t, res.CreatedAt)
	assert.Equal(t, time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), *res.CreatedAt)
	require.NotNil(t, res.AgeDays)
	assert.Equal(t, 10, *res.AgeDays)
	assert.Equal(t, BucketMonth, res.Bucket)
}

func TestResolve_NoTimestampInfersFromURL(t *testing.T) {
	now := time.Date(2022, time.December, 10, 0, 0, 0, 0, time.UTC)

	res := Resolve(now, nil, nil, "https://example.com/blog/2022/11/30/post/")
	require.NotNil(t, res.AgeDays)
	assert.Equal(t, 10, *res.AgeDays)
	assert.Equal(t, BucketMonth, res.Bucket)
}

func TestResolve_Unknown(t *testing.T) {
	now := time.Now()

	res := Resolve(now, nil, nil, "https://nodatehere.com/about-us")
	assert.Nil(t, res.CreatedAt)
	assert.Nil(t, res.AgeDays)
	assert.Equal(t, BucketUnknown, res.Bucket)
}

func TestBucket_String(t *testing.T) {
	assert.Equal(t, "today", BucketToday.String())
	assert.Equal(t, "week", BucketWeek.String())
	assert.Equal(t, "month", BucketMonth.String())
	assert.Equal(t, "older", BucketOlder.String())
	assert.Equal(t, "unknown", BucketUnknown.String())
}
