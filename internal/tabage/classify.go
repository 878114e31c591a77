package tabage

import "time"

// Bucket is a coarse tab-age classification.
type Bucket int

const (
	BucketToday Bucket = iota
	BucketWeek
	BucketMonth
	BucketOlder
	BucketUnknown
)

// String returns the bucket's wire/display name.
func (b Bucket) String() string {
	switch b {
	case BucketToday:
		return "today"
	case BucketWeek:
		return "week"
	case BucketMonth:
		return "month"
	case BucketOlder:
		return "older"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one tab's age. CreatedAt and
// AgeDays are nil together when no date could be determined, in which case
// Bucket is BucketUnknown.
type Resolution struct {
	CreatedAt *time.Time
	AgeDays   *int
	Bucket    Bucket
}

// Resolve determines a tab's creation date and age bucket. A verified
// browser timestamp wins (verified means the flag is absent or true); when
// that is unavailable the URL date patterns are tried. Tabs with no
// resolvable date classify as unknown rather than failing.
func Resolve(now time.Time, createdAt *time.Time, verified *bool, rawURL string) Resolution {
	if createdAt != nil && (verified == nil || *verified) {
		return resolveFrom(now, *createdAt)
	}

	if inferred, ok := InferDate(rawURL); ok {
		return resolveFrom(now, inferred)
	}

	return Resolution{Bucket: BucketUnknown}
}

func resolveFrom(now, createdAt time.Time) Resolution {
	age := AgeDays(now, createdAt)
	return Resolution{
		CreatedAt: &createdAt,
		AgeDays:   &age,
		Bucket:    ClassifyAge(age),
	}
}

// AgeDays computes a tab's age in whole days. Future-dated timestamps are
// not clamped and yield a negative age.
func AgeDays(now, createdAt time.Time) int {
	return int(now.Sub(createdAt).Hours() / 24)
}

// ClassifyAge buckets an age in days. Boundaries are exclusive: a tab aged
// exactly 7 days is month, exactly 30 days is older.
func ClassifyAge(ageDays int) Bucket {
	switch {
	case ageDays < 1:
		return BucketToday
	case ageDays < 7:
		return BucketWeek
	case ageDays < 30:
		return BucketMonth
	default:
		return BucketOlder
	}
}
