package services

import (
	"strings"

	"ops-dashboard/internal/businesshours"
)

// calculatorServiceImpl implements the CalculatorService interface
type calculatorServiceImpl struct {
	calendar *businesshours.Calendar
}

// NewCalculatorService creates a new CalculatorService instance
func NewCalculatorService(cal *businesshours.Calendar) CalculatorService {
	return &calculatorServiceImpl{calendar: cal}
}

// WorkingDuration computes the working time between two raw timestamps
func (c *calculatorServiceImpl) WorkingDuration(start, end string) *DurationResult {
	result := &DurationResult{
		Start: strings.TrimSpace(start),
		End:   strings.TrimSpace(end),
	}

	s, ok := c.calendar.ParseTimestamp(start)
	if !ok {
		return result
	}
	e, ok := c.calendar.ParseTimestamp(end)
	if !ok {
		return result
	}
	minutes, ok := c.calendar.WorkingMinutes(s, e)
	if !ok {
		return result
	}

	result.Duration = businesshours.FormatMinutes(minutes)
	result.Minutes = minutes
	result.Computable = true
	return result
}

// OutOfHours reports whether a raw timestamp falls outside working hours
func (c *calculatorServiceImpl) OutOfHours(at string) bool {
	return c.calendar.IsOutOfHours(at)
}

// Calendar returns the working calendar in use
func (c *calculatorServiceImpl) Calendar() *businesshours.Calendar {
	return c.calendar
}
