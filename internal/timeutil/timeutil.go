package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MaxEpochSeconds is 9999-12-31T23:59:59Z, the last instant with a four-digit year.
const MaxEpochSeconds int64 = 253402300799

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateFromEpoch converts Unix epoch seconds to a UTC YYYY-MM-DD date, dropping the time of day.
// Timestamps before the epoch or after MaxEpochSeconds are rejected.
func DateFromEpoch(seconds int64) (string, error) {
	if seconds < 0 || seconds > MaxEpochSeconds {
		return "", fmt.Errorf("timestamp %d out of range", seconds)
	}
	return FormatDate(time.Unix(seconds, 0).UTC()), nil
}
