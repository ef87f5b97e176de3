package utils

import (
	"time"
)

// DateLayout is the wire format for calendar dates (ISO-8601, no time component).
const DateLayout = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date, discarding any time component.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}

	// Accept full timestamps too, truncated to the date.
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDate(t), nil
}

// FormatDate renders a date in ISO-8601 calendar form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TruncateToDate strips the time-of-day portion, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths advances a date by whole calendar months, clamping the day to the
// last valid day of the target month: Jan 31 + 1 month is Feb 28 (or 29),
// not the normalized overflow into March that AddDate would produce.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) + months
	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		year--
	}

	if last := daysInMonth(year, time.Month(m)); day > last {
		day = last
	}

	return time.Date(year, time.Month(m), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
