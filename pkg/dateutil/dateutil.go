// Package dateutil provides the calendar math the tax engine needs for
// holding periods and wash-sale windows.
package dateutil

import "time"

// longTermThresholdDays is the holding-period boundary: a holding period of
// exactly 365 days is still short-term; 366 days or more is long-term. The
// rule is an explicit day count, not "one year".
const longTermThresholdDays = 365

// DaysBetween returns the number of whole calendar days from a to b,
// ignoring time-of-day. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// WithinDays reports whether a and b fall within n calendar days of each
// other in either direction.
func WithinDays(a, b time.Time, n int) bool {
	d := DaysBetween(a, b)
	if d < 0 {
		d = -d
	}
	return d <= n
}

// IsLongTerm reports whether an asset acquired and sold on the given dates
// was held long enough for long-term treatment.
func IsLongTerm(acquired, sold time.Time) bool {
	return DaysBetween(acquired, sold) > longTermThresholdDays
}
