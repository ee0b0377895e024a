package businesshours

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// IsOutOfHours reports whether a raw timestamp falls on a weekend or outside
// the working window. Missing or unparseable input is never flagged.
func (c *Calendar) IsOutOfHours(raw string) bool {
	t, ok := c.ParseTimestamp(raw)
	if !ok {
		return false
	}
	return c.IsOutOfHoursAt(t)
}

// IsOutOfHoursAt is IsOutOfHours for an already parsed instant
func (c *Calendar) IsOutOfHoursAt(t time.Time) bool {
	t = t.In(c.location)
	if c.weekend[t.Weekday()] {
		return true
	}
	tod := timeOfDay(t)
	return tod < c.dayStart || tod >= c.dayEnd
}

// Clamp moves t forward to the first instant inside a working window.
// Instants already inside a window are returned unchanged.
func (c *Calendar) Clamp(t time.Time) time.Time {
	t = t.In(c.location)
	tod := timeOfDay(t)

	if c.weekend[t.Weekday()] || tod >= c.dayEnd {
		next := c.at(t, 1, c.dayStart)
		for c.weekend[next.Weekday()] {
			next = c.at(next, 1, c.dayStart)
		}
		return next
	}
	if tod < c.dayStart {
		return c.at(t, 0, c.dayStart)
	}
	return t
}

// WorkingMinutes returns the working minutes between start and end.
// ok is false when the interval is empty or reversed, when it lies entirely
// outside working hours, or when it spans more than MaxSpanDays.
func (c *Calendar) WorkingMinutes(start, end time.Time) (minutes float64, ok bool) {
	if !start.Before(end) {
		return 0, false
	}
	if end.Sub(start) > time.Duration(c.maxSpanDays)*24*time.Hour {
		return 0, false
	}

	pos := c.Clamp(start)
	if !pos.Before(end) {
		return 0, false
	}

	var total float64
	for days := 0; pos.Before(end); days++ {
		if days > c.maxSpanDays {
			return 0, false
		}
		if !c.weekend[pos.Weekday()] {
			winStart := c.at(pos, 0, c.dayStart)
			winEnd := c.at(pos, 0, c.dayEnd)

			from := pos
			if winStart.After(from) {
				from = winStart
			}
			to := end
			if winEnd.Before(to) {
				to = winEnd
			}
			if to.After(from) {
				total += to.Sub(from).Minutes()
			}
		}
		pos = c.at(pos, 1, 0)
	}

	return total, true
}

// WorkingDuration computes the formatted working time between two raw
// timestamps. ok is false for every input the calculation cannot represent:
// a missing or unparseable endpoint, end not after start, or an interval that
// is entirely outside working hours.
func (c *Calendar) WorkingDuration(start, end string) (string, bool) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return "", false
	}
	s, ok := c.ParseTimestamp(start)
	if !ok {
		return "", false
	}
	e, ok := c.ParseTimestamp(end)
	if !ok {
		return "", false
	}

	minutes, ok := c.WorkingMinutes(s, e)
	if !ok {
		return "", false
	}
	return FormatMinutes(minutes), true
}

// FormatMinutes renders a minute total as "1h 5m" or "45m". Totals under one
// minute render as "0m". The total is rounded before it is split so the
// minutes part never reads 60.
func FormatMinutes(total float64) string {
	if total < 1 {
		return "0m"
	}
	rounded := int64(math.Round(total))
	h := rounded / 60
	m := rounded % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
