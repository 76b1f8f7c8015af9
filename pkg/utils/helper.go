package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses a calendar date in YYYY-MM-DD form, UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// Today returns the current calendar date at UTC midnight, so date
// comparisons against check-in/check-out dates are time-of-day free.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
