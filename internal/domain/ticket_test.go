package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewManualTicket(t *testing.T) {
	ticket := NewManualTicket("  network ", "marta", " 2024-01-08T09:00:00 ")

	assert.Equal(t, "network", ticket.Service)
	assert.Equal(t, "marta", ticket.Operator)
	assert.Equal(t, "2024-01-08T09:00:00", ticket.OpenedAt)
	assert.True(t, ticket.IsOpen())
	assert.True(t, ticket.IsValid())
	assert.Zero(t, ticket.ID)
}

func TestManualTicket_CloseAndReopen(t *testing.T) {
	open := NewManualTicket("network", "marta", "2024-01-08T09:00:00")

	closed := open.Close("2024-01-08T11:00:00")
	assert.False(t, closed.IsOpen())
	assert.Equal(t, "2024-01-08T11:00:00", closed.ClosedAtValue())
	assert.True(t, open.IsOpen(), "Close must not modify the receiver")

	reopened := closed.Reopen()
	assert.True(t, reopened.IsOpen())
	assert.Equal(t, "", reopened.ClosedAtValue())
}

func TestManualTicket_BlankClosedAtIsOpen(t *testing.T) {
	ticket := NewManualTicket("network", "marta", "2024-01-08T09:00:00").Close("  ")
	assert.True(t, ticket.IsOpen())
}

func TestManualTicket_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		ticket ManualTicket
		want   bool
	}{
		{"complete", NewManualTicket("network", "", "2024-01-08T09:00:00"), true},
		{"missing service", NewManualTicket("", "marta", "2024-01-08T09:00:00"), false},
		{"missing opened at", NewManualTicket("network", "marta", ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.IsValid())
		})
	}
}

func TestTicketFilter_IsEmpty(t *testing.T) {
	assert.True(t, TicketFilter{}.IsEmpty())
	service := "network"
	assert.False(t, TicketFilter{Service: &service}.IsEmpty())
	assert.False(t, TicketFilter{OpenOnly: true}.IsEmpty())
}
