package sqlite

import (
	"time"
)

// FormatTimeForDB renders a bookkeeping timestamp as UTC RFC3339 with nanoseconds
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses a timestamp written by FormatTimeForDB
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// NullableString maps a nil pointer to SQL NULL
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
