package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/api"
)

func TestAddCommand_Execute(t *testing.T) {
	app, mock, out := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()

	t.Run("closed ticket", func(t *testing.T) {
		out.Reset()
		err := NewAddCommand(app).Execute(ctx, AddOptions{
			Service:  "network",
			Operator: "marta",
			OpenedAt: "2024-01-08 09:00",
			ClosedAt: "2024-01-08T10:30:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Created ticket #1 for network, opened 2024-01-08 09:00\nClosed 2024-01-08 10:30\n", out.String())
	})

	t.Run("opening time defaults to now", func(t *testing.T) {
		fixNow(t, time.Date(2024, 1, 9, 14, 5, 0, 0, time.UTC))
		out.Reset()
		require.NoError(t, NewAddCommand(app).Execute(ctx, AddOptions{Service: "dns"}))
		assert.Equal(t, "Created ticket #2 for dns, opened 2024-01-09 14:05\n", out.String())
		assert.Equal(t, "2024-01-09T14:05:00", mock.tickets[2].OpenedAt)
		assert.True(t, mock.tickets[2].IsOpen())
	})

	t.Run("validation failure", func(t *testing.T) {
		err := NewAddCommand(app).Execute(ctx, AddOptions{OpenedAt: "2024-01-08 09:00"})
		require.Error(t, err)
		assert.Equal(t, "failed to create ticket: service is required", err.Error())
	})
}

func TestListCommand_Execute(t *testing.T) {
	app, mock, out := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()
	fixNow(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	require.NoError(t, NewListCommand(app).Execute(ctx, api.FilterParams{}))
	assert.Equal(t, "No tickets found\n", out.String())

	seedTicket(t, mock, "network", "2024-01-08T09:00:00", strPtr("2024-01-08T10:00:00"))
	seedTicket(t, mock, "storage", "2024-01-09T09:00:00", nil)

	out.Reset()
	require.NoError(t, NewListCommand(app).Execute(ctx, api.FilterParams{}))
	lines := splitLines(out.String())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "AGE")
	assert.Contains(t, lines[1], "network")
	assert.Contains(t, lines[1], "2024-01-08 10:00")
	assert.Contains(t, lines[1], "2 days ago")
	assert.Contains(t, lines[2], "storage")
	assert.Contains(t, lines[2], "1 day ago")

	out.Reset()
	require.NoError(t, NewListCommand(app).Execute(ctx, api.FilterParams{OpenOnly: true}))
	lines = splitLines(out.String())
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "storage")
}

func TestShowCommand_Execute(t *testing.T) {
	app, mock, out := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()

	seedTicket(t, mock, "network", "2024-01-05T20:30:00", strPtr("2024-01-08T09:00:00"))
	seedTicket(t, mock, "storage", "2024-01-08T09:00:00", nil)

	require.NoError(t, NewShowCommand(app).Execute(ctx, "1"))
	assert.Contains(t, out.String(), "Ticket #1\n")
	assert.Contains(t, out.String(), "Out of hours: yes")
	assert.Contains(t, out.String(), "Working time: 1h 0m")
	assert.Contains(t, out.String(), "Customer:     -")

	out.Reset()
	require.NoError(t, NewShowCommand(app).Execute(ctx, "#2"))
	assert.Contains(t, out.String(), "Out of hours: no")
	assert.Contains(t, out.String(), "Closed:       -")
	assert.Contains(t, out.String(), "Working time: -")

	err := NewShowCommand(app).Execute(ctx, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a positive ticket number")

	err = NewShowCommand(app).Execute(ctx, "99")
	require.Error(t, err)
	assert.Equal(t, "failed to show ticket: ticket not found: 99", err.Error())
}

func TestCloseAndReopenCommands(t *testing.T) {
	app, mock, out := setupTestAppWithMockBusinessAPI(t)
	ctx := context.Background()
	seedTicket(t, mock, "network", "2024-01-08T09:00:00", nil)

	require.NoError(t, NewCloseCommand(app).Execute(ctx, "1", "2024-01-08T10:00:00"))
	assert.Equal(t, "Closed ticket #1 at 2024-01-08 10:00 (working time 1h 0m)\n", out.String())

	out.Reset()
	require.NoError(t, NewReopenCommand(app).Execute(ctx, "1"))
	assert.Equal(t, "Reopened ticket #1 (network)\n", out.String())
	assert.True(t, mock.tickets[1].IsOpen())

	fixNow(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))
	out.Reset()
	require.NoError(t, NewCloseCommand(app).Execute(ctx, "1", ""))
	assert.Equal(t, "2024-01-08T12:00:00", mock.tickets[1].ClosedAtValue())
	assert.Contains(t, out.String(), "working time 3h 0m")

	err := NewCloseCommand(app).Execute(ctx, "7", "")
	assert.Equal(t, "failed to close ticket: ticket not found: 7", err.Error())
}

func TestDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		stdin       string
		yes         bool
		wantDeleted bool
		wantOutput  string
	}{
		{name: "confirmed", stdin: "y\n", wantDeleted: true, wantOutput: "Deleted ticket #1"},
		{name: "confirmed long form", stdin: "YES\n", wantDeleted: true, wantOutput: "Deleted ticket #1"},
		{name: "declined", stdin: "n\n", wantOutput: "Delete cancelled."},
		{name: "no answer", stdin: "", wantOutput: "Delete cancelled."},
		{name: "skip confirmation", yes: true, wantDeleted: true, wantOutput: "Deleted ticket #1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock, out := setupTestAppWithMockBusinessAPI(t)
			seedTicket(t, mock, "network", "2024-01-08T09:00:00", nil)
			app.WithIO(stringsReader(tt.stdin), out)

			require.NoError(t, NewDeleteCommand(app).Execute(ctx, "1", tt.yes))
			assert.Contains(t, out.String(), tt.wantOutput)
			_, exists := mock.tickets[1]
			assert.Equal(t, !tt.wantDeleted, exists)
		})
	}

	app, _, _ := setupTestAppWithMockBusinessAPI(t)
	err := NewDeleteCommand(app).Execute(ctx, "5", true)
	assert.Equal(t, "failed to delete ticket: ticket not found: 5", err.Error())
}
