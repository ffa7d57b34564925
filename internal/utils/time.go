package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/wagebar/internal/constants"
)

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// TodayAt combines the calendar day of ref with a time of day (HH:MM),
// in ref's location.
func TodayAt(ref time.Time, timeStr string) (time.Time, error) {
	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format %q: %w", timeStr, err)
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		ref.Location(),
	), nil
}

// FormatClock formats the wall-clock time shown on the dashboard.
func FormatClock(t time.Time) string {
	return t.Format(constants.ClockFormat)
}
