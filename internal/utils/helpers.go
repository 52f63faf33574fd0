package utils

import (
	"time"
)

// ParseYMD parses an ISO YYYY-MM-DD string into a midnight-UTC date.
func ParseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	// strip time to midnight UTC to match DATE semantics
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatYMD renders a date as ISO YYYY-MM-DD.
func FormatYMD(t time.Time) string {
	return t.Format("2006-01-02")
}

// Date truncates a timestamp to its midnight-UTC date.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
