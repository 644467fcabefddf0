package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted on the command line
const DateLayout = "2006-01-02"

// TimestampLayout is the ISO 8601 format sent to the attendance API
// Example: 2025-03-10T08:30:00+01:00
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// FormatISO8601 formats a timestamp with a colon-separated UTC offset
func FormatISO8601(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseDate parses a YYYY-MM-DD date in the given location
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM wall clock value
func ParseClock(clock string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q, expected HH:MM: %w", clock, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock %q: out of range", clock)
	}
	return hour, minute, nil
}

// AtClock returns the given date at the HH:MM wall clock in the date's location
func AtClock(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	day := StartOfDay(date)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// ParseUTCOffset converts "+01:00" / "-05:30" into a fixed zone
func ParseUTCOffset(offset string) (*time.Location, error) {
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') || offset[3] != ':' {
		return nil, fmt.Errorf("invalid UTC offset %q, expected ±HH:MM", offset)
	}

	hour, minute, err := ParseClock(strings.TrimLeft(offset, "+-"))
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", offset, err)
	}
	if hour > 14 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", offset)
	}

	seconds := hour*3600 + minute*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+offset, seconds), nil
}

// MinutesBetween returns whole minutes from start to end (negative if end is earlier)
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}
