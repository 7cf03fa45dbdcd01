// Package dateutil provides calendar-day helpers shared by the aggregation
// and view layers. All dates on the wire are fixed-width "YYYY-MM-DD"
// strings; these helpers are the only place that format is produced.
package dateutil

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// NormalizeToDay strips the time-of-day, returning local midnight of the
// same calendar date.
func NormalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDay renders a day as YYYY-MM-DD with zero-padded month and day.
func FormatDay(d time.Time) string {
	return d.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into a local-midnight day. Stored
// dates can be malformed; callers skip entries for which this errors rather
// than deriving period keys from them.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.Local)
}

// WeekKey returns the ISO-8601 week identifier "YYYY-Www" for a day. The
// year component is the ISO week-year (the week containing the year's first
// Thursday is week 1), which can differ from the calendar year around
// January 1st.
func WeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the calendar month identifier "YYYY-MM". Unlike WeekKey
// this uses the plain Gregorian year.
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// DisplayDay returns the label shown for a viewed day: Today, Yesterday or
// Tomorrow relative to today, otherwise a long-form date.
func DisplayDay(d, today time.Time) string {
	day := NormalizeToDay(d)
	ref := NormalizeToDay(today)

	switch {
	case day.Equal(ref):
		return "Today"
	case day.Equal(ref.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Equal(ref.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return day.Format("January 2, 2006")
}
