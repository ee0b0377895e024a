package cli

import (
	"fmt"
)

// DurationCommand handles the duration command
type DurationCommand struct {
	app *App
}

// NewDurationCommand creates a new duration command handler
func NewDurationCommand(app *App) *DurationCommand {
	return &DurationCommand{app: app}
}

// Execute prints the working time between two timestamps, or the
// placeholder when it cannot be computed
func (c *DurationCommand) Execute(start, end string) error {
	result := c.app.businessAPI.WorkingDuration(start, end)
	fmt.Fprintln(c.app.out, c.app.placeholder(result.Duration))
	return nil
}

// OutOfHoursCommand handles the out-of-hours command
type OutOfHoursCommand struct {
	app *App
}

// NewOutOfHoursCommand creates a new out-of-hours command handler
func NewOutOfHoursCommand(app *App) *OutOfHoursCommand {
	return &OutOfHoursCommand{app: app}
}

// Execute prints yes when the timestamp falls outside working hours
func (c *OutOfHoursCommand) Execute(at string) error {
	result := c.app.businessAPI.IsOutOfHours(at)
	fmt.Fprintln(c.app.out, yesNo(result.OutOfHours))
	return nil
}
