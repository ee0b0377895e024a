package businesshours

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultDayStart is the start of the working window (08:00)
	DefaultDayStart = 8 * time.Hour
	// DefaultDayEnd is the end of the working window (20:00), exclusive
	DefaultDayEnd = 20 * time.Hour
	// DefaultMaxSpanDays bounds the day loop of a single calculation
	DefaultMaxSpanDays = 3660
	// MaxSpanDaysLimit is the largest span guard a time.Duration can hold
	MaxSpanDaysLimit = int(math.MaxInt64 / int64(24*time.Hour))
)

// Calendar is the fixed working-time policy used for SLA calculations.
// A Calendar is immutable once built and safe for concurrent use.
type Calendar struct {
	location    *time.Location
	dayStart    time.Duration
	dayEnd      time.Duration
	weekend     [7]bool
	maxSpanDays int
}

// Option configures a Calendar
type Option func(*Calendar)

// WithLocation sets the business time zone
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithWindow sets the daily working window as offsets from midnight
func WithWindow(start, end time.Duration) Option {
	return func(c *Calendar) {
		c.dayStart = start
		c.dayEnd = end
	}
}

// WithWeekend replaces the set of non-working weekdays
func WithWeekend(days ...time.Weekday) Option {
	return func(c *Calendar) {
		c.weekend = [7]bool{}
		for _, d := range days {
			c.weekend[d] = true
		}
	}
}

// WithMaxSpanDays sets how many calendar days a single calculation may walk
func WithMaxSpanDays(n int) Option {
	return func(c *Calendar) {
		c.maxSpanDays = n
	}
}

// NewCalendar builds a Calendar from the defaults (08:00-20:00, Saturday and
// Sunday off, local time zone) and the given options.
func NewCalendar(opts ...Option) (*Calendar, error) {
	c := &Calendar{
		location:    time.Local,
		dayStart:    DefaultDayStart,
		dayEnd:      DefaultDayEnd,
		maxSpanDays: DefaultMaxSpanDays,
	}
	c.weekend[time.Saturday] = true
	c.weekend[time.Sunday] = true

	for _, opt := range opts {
		opt(c)
	}

	if c.dayStart < 0 || c.dayEnd > 24*time.Hour {
		return nil, fmt.Errorf("working window %s-%s is outside the day", FormatClock(c.dayStart), FormatClock(c.dayEnd))
	}
	if c.dayStart >= c.dayEnd {
		return nil, fmt.Errorf("working window start %s must be before end %s", FormatClock(c.dayStart), FormatClock(c.dayEnd))
	}
	if c.maxSpanDays <= 0 || c.maxSpanDays > MaxSpanDaysLimit {
		return nil, fmt.Errorf("max span days must be between 1 and %d, got %d", MaxSpanDaysLimit, c.maxSpanDays)
	}
	working := 0
	for _, off := range c.weekend {
		if !off {
			working++
		}
	}
	if working == 0 {
		return nil, fmt.Errorf("calendar has no working days")
	}

	return c, nil
}

// Default returns the standard calendar in the given zone.
func Default(loc *time.Location) *Calendar {
	c, _ := NewCalendar(WithLocation(loc))
	return c
}

// Location returns the business time zone
func (c *Calendar) Location() *time.Location {
	return c.location
}

// DayStart returns the start of the working window
func (c *Calendar) DayStart() time.Duration {
	return c.dayStart
}

// DayEnd returns the exclusive end of the working window
func (c *Calendar) DayEnd() time.Duration {
	return c.dayEnd
}

// MaxSpanDays returns the day-loop guard
func (c *Calendar) MaxSpanDays() int {
	return c.maxSpanDays
}

// IsWorkingDay reports whether the weekday accrues working time
func (c *Calendar) IsWorkingDay(day time.Weekday) bool {
	return !c.weekend[day]
}

// Weekend lists the non-working weekdays in Sunday-first order
func (c *Calendar) Weekend() []time.Weekday {
	var days []time.Weekday
	for d, off := range c.weekend {
		if off {
			days = append(days, time.Weekday(d))
		}
	}
	return days
}

// at returns the instant offset from midnight of the day that is addDays
// after t's calendar day. Wall-clock fields are used so DST days keep the
// configured clock times.
func (c *Calendar) at(t time.Time, addDays int, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	s := int((offset % time.Minute) / time.Second)
	return time.Date(t.Year(), t.Month(), t.Day()+addDays, h, m, s, 0, c.location)
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// ParseClock parses an "HH:MM" clock time into an offset from midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock: bad %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("clock: bad hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("clock: bad minute in %q: %w", s, err)
	}
	if h == 24 && m == 0 {
		return 24 * time.Hour, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock: out of range %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// FormatClock renders an offset from midnight as "HH:MM"
func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute))
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma separated list such as "sat,sun".
// An empty string yields no days.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, item := range strings.Split(s, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		d, ok := weekdayNames[item]
		if !ok {
			return nil, fmt.Errorf("weekday: unknown %q", item)
		}
		days = append(days, d)
	}
	return days, nil
}
