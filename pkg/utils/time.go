package utils

import "time"

// Now returns the current time in UTC timezone
func Now() time.Time {
	return time.Now().UTC()
}

// FormatISO8601 formats a time.Time to ISO8601 format in UTC
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// StartOfDay truncates a time to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
