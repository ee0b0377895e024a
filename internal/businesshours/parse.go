package businesshours

import (
	"strings"
	"time"
)

// zone-less layouts, read as wall-clock time in the calendar location
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values carrying an offset are
// converted into the calendar location; zone-less values are read in it.
func (c *Calendar) ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(c.location), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t as a zone-less local ISO timestamp, the shape
// produced by the dashboard's date and time form fields.
func (c *Calendar) FormatTimestamp(t time.Time) string {
	return t.In(c.location).Format("2006-01-02T15:04:05")
}
