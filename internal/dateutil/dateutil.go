// Package dateutil holds the small set of calendar-day helpers the core
// needs: everything here operates on dates truncated to midnight UTC so that
// "day" arithmetic (day_number, window clamping, span_days) is unambiguous
// regardless of what time component a caller's time.Time carries.
package dateutil

import "time"

// Normalize truncates t to a calendar day at midnight UTC.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// DaysBetween returns the integer number of calendar days from a to b
// (b - a), which may be negative.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// AddDays returns t shifted by n calendar days, normalized to midnight UTC.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// Before reports whether a is strictly before b (day granularity).
func Before(a, b time.Time) bool {
	return Normalize(a).Before(Normalize(b))
}

// After reports whether a is strictly after b (day granularity).
func After(a, b time.Time) bool {
	return Normalize(a).After(Normalize(b))
}

// DayNumber computes day_number = (date - start) + 1, per spec.md §3.
func DayNumber(start, date time.Time) int {
	return DaysBetween(start, date) + 1
}
