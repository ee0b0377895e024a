package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/domain"
)

func TestReportingService_RowFor(t *testing.T) {
	reporting := setupTestServices(t).ReportingService

	tests := []struct {
		name           string
		ticket         domain.ManualTicket
		wantDuration   string
		wantComputable bool
		wantOutOfHours bool
	}{
		{
			name:           "closed inside hours",
			ticket:         domain.NewManualTicket("network", "marta", "2024-01-08T09:00:00").Close("2024-01-08T10:30:00"),
			wantDuration:   "1h 30m",
			wantComputable: true,
		},
		{
			name:           "opened friday night",
			ticket:         domain.NewManualTicket("network", "marta", "2024-01-05T20:30:00").Close("2024-01-08T09:00:00"),
			wantDuration:   "1h 0m",
			wantComputable: true,
			wantOutOfHours: true,
		},
		{
			name:   "still open",
			ticket: domain.NewManualTicket("network", "marta", "2024-01-08T09:00:00"),
		},
		{
			name:           "weekend only",
			ticket:         domain.NewManualTicket("network", "marta", "2024-01-06T10:00:00").Close("2024-01-06T12:00:00"),
			wantOutOfHours: true,
		},
		{
			name:   "unparseable opening",
			ticket: domain.NewManualTicket("network", "marta", "soon").Close("2024-01-06T12:00:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := tt.ticket
			row := reporting.RowFor(&ticket)
			assert.Equal(t, tt.wantDuration, row.WorkingDuration)
			assert.Equal(t, tt.wantComputable, row.Computable)
			assert.Equal(t, tt.wantOutOfHours, row.OutOfHours)
			if !row.Computable {
				assert.Zero(t, row.WorkingMinutes)
			}
		})
	}
}

func TestReportingService_BuildSLAReport(t *testing.T) {
	container := setupTestServices(t)
	ctx := context.Background()

	impl := container.ReportingService.(*reportingServiceImpl)
	impl.now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) }

	inputs := []TicketInput{
		{Service: "network", OpenedAt: "2024-01-08T09:00:00", ClosedAt: strPtr("2024-01-08T10:30:00")},
		{Service: "network", OpenedAt: "2024-01-05T20:30:00", ClosedAt: strPtr("2024-01-08T09:00:00")},
		{Service: "network", OpenedAt: "2024-01-09T09:00:00"},
		{Service: "storage", OpenedAt: "2024-01-08T11:00:00", ClosedAt: strPtr("2024-01-08T11:20:00")},
	}
	for _, in := range inputs {
		_, err := container.TicketService.CreateTicket(ctx, in)
		require.NoError(t, err)
	}

	report, err := container.ReportingService.BuildSLAReport(ctx, domain.TicketFilter{Service: strPtr("network")})
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "2024-01-05T20:30:00", report.Rows[0].Ticket.OpenedAt)
	assert.Equal(t, 3, report.Totals.TicketCount)
	assert.Equal(t, 1, report.Totals.OpenCount)
	assert.Equal(t, 2, report.Totals.ComputableCount)
	assert.Equal(t, 1, report.Totals.OutOfHoursCount)
	assert.InDelta(t, 150.0, report.Totals.TotalWorkingMinutes, 1e-9)
	assert.Equal(t, "2h 30m", report.Totals.TotalWorking)
	assert.Equal(t, "1h 15m", report.Totals.AverageWorking)
	assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), report.GeneratedAt)
}

func TestReportingService_EmptyReport(t *testing.T) {
	container := setupTestServices(t)

	report, err := container.ReportingService.BuildSLAReport(context.Background(), domain.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Equal(t, "0m", report.Totals.TotalWorking)
	assert.Empty(t, report.Totals.AverageWorking)
}
