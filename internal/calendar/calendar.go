// Package calendar provides the month-grid and date helpers behind the
// events calendar.
package calendar

import "time"

// MonthDays returns the cells of a Sunday-first 7-column month grid: nil
// placeholders pad the leading weekday slots before the 1st, followed by one
// entry per calendar day of the month.
func MonthDays(year int, month time.Month) []*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]*time.Time, 0, int(first.Weekday())+lastDay)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, nil)
	}
	for d := 1; d <= lastDay; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		days = append(days, &day)
	}
	return days
}

// AddMonths steps the displayed month by direction (±1), wrapping year
// boundaries: January-1 is December of the prior year, December+1 is
// January of the next.
func AddMonths(year int, month time.Month, direction int) (int, time.Month) {
	shifted := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, direction, 0)
	return shifted.Year(), shifted.Month()
}

// SameDay reports whether a and b fall on the same calendar day, ignoring
// any time component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
