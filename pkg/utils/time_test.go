package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	utilsTime := Now()
	standardTime := time.Now().UTC()

	// The times should be very close - within a small delta
	assert.WithinDuration(t, standardTime, utilsTime, 10*time.Millisecond)

	// Ensure the timezone is UTC
	assert.Equal(t, time.UTC, utilsTime.Location())
}

func TestFormatISO8601(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	in := time.Date(2024, 3, 15, 14, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-15T12:30:00Z", FormatISO8601(in))
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{
			name:     "midday",
			in:       time.Date(2024, 3, 15, 14, 30, 45, 123, time.UTC),
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "already midnight",
			in:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "non-UTC zone crosses date line",
			in:       time.Date(2024, 3, 15, 1, 0, 0, 0, time.FixedZone("SAST", 2*60*60)),
			expected: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StartOfDay(tc.in))
		})
	}
}
