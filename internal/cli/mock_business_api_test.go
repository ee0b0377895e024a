package cli

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/errors"
	"ops-dashboard/internal/services"
)

// mockBusinessAPI keeps tickets in memory and uses a real UTC calendar for
// the business-hours figures
type mockBusinessAPI struct {
	calendar *businesshours.Calendar
	tickets  map[int64]*domain.ManualTicket
	nextID   int64
	closed   int
}

// newMockBusinessAPI creates a new mock BusinessAPI instance
func newMockBusinessAPI() *mockBusinessAPI {
	return &mockBusinessAPI{
		calendar: businesshours.Default(time.UTC),
		tickets:  make(map[int64]*domain.ManualTicket),
		nextID:   1,
	}
}

func (m *mockBusinessAPI) CreateTicket(ctx context.Context, input services.TicketInput) (*domain.ManualTicket, error) {
	if strings.TrimSpace(input.Service) == "" {
		return nil, errors.NewValidationError("service is required", nil)
	}
	ticket := domain.NewManualTicket(input.Service, input.Operator, input.OpenedAt)
	ticket.Customer = input.Customer
	ticket.Description = input.Description
	ticket.ClosedAt = input.ClosedAt
	ticket.ID = m.nextID
	m.nextID++
	m.tickets[ticket.ID] = &ticket

	created := ticket
	return &created, nil
}

func (m *mockBusinessAPI) GetTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, errors.NewNotFoundError("ticket", strconv.FormatInt(id, 10))
	}
	found := *ticket
	return &found, nil
}

func (m *mockBusinessAPI) ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.ManualTicket, error) {
	var tickets []*domain.ManualTicket
	for _, t := range m.tickets {
		if filter.Service != nil && t.Service != *filter.Service {
			continue
		}
		if filter.Operator != nil && t.Operator != *filter.Operator {
			continue
		}
		if filter.OpenOnly && !t.IsOpen() {
			continue
		}
		found := *t
		tickets = append(tickets, &found)
	}
	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].OpenedAt != tickets[j].OpenedAt {
			return tickets[i].OpenedAt < tickets[j].OpenedAt
		}
		return tickets[i].ID < tickets[j].ID
	})
	return tickets, nil
}

func (m *mockBusinessAPI) UpdateTicket(ctx context.Context, id int64, input services.TicketInput) (*domain.ManualTicket, error) {
	if _, err := m.GetTicket(ctx, id); err != nil {
		return nil, err
	}
	ticket := domain.NewManualTicket(input.Service, input.Operator, input.OpenedAt)
	ticket.ID = id
	ticket.ClosedAt = input.ClosedAt
	m.tickets[id] = &ticket
	return m.GetTicket(ctx, id)
}

func (m *mockBusinessAPI) CloseTicket(ctx context.Context, id int64, closedAt string) (*domain.ManualTicket, error) {
	ticket, err := m.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if closedAt == "" {
		closedAt = m.calendar.FormatTimestamp(timeNow())
	}
	closed := ticket.Close(closedAt)
	m.tickets[id] = &closed
	return m.GetTicket(ctx, id)
}

func (m *mockBusinessAPI) ReopenTicket(ctx context.Context, id int64) (*domain.ManualTicket, error) {
	ticket, err := m.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	reopened := ticket.Reopen()
	m.tickets[id] = &reopened
	return m.GetTicket(ctx, id)
}

func (m *mockBusinessAPI) DeleteTicket(ctx context.Context, id int64) error {
	if _, ok := m.tickets[id]; !ok {
		return errors.NewNotFoundError("ticket", strconv.FormatInt(id, 10))
	}
	delete(m.tickets, id)
	return nil
}

func (m *mockBusinessAPI) SLAReport(ctx context.Context, filter domain.TicketFilter) (*services.SLAReport, error) {
	return services.NewReportingService(m, m.calendar).BuildSLAReport(ctx, filter)
}

func (m *mockBusinessAPI) ParseFilter(params api.FilterParams) (domain.TicketFilter, error) {
	filter := domain.TicketFilter{OpenOnly: params.OpenOnly}
	if params.Service != "" {
		filter.Service = &params.Service
	}
	if params.Operator != "" {
		filter.Operator = &params.Operator
	}
	if params.From != "" {
		return filter, errors.NewInvalidInputError("from", params.From, "not supported by the mock")
	}
	return filter, nil
}

func (m *mockBusinessAPI) WorkingDuration(start, end string) *services.DurationResult {
	return services.NewCalculatorService(m.calendar).WorkingDuration(start, end)
}

func (m *mockBusinessAPI) IsOutOfHours(at string) *api.OutOfHoursResult {
	return &api.OutOfHoursResult{At: at, OutOfHours: m.calendar.IsOutOfHours(at)}
}

func (m *mockBusinessAPI) Calendar() *businesshours.Calendar {
	return m.calendar
}

// setupTestAppWithMockBusinessAPI returns an App over the mock writing to a buffer
func setupTestAppWithMockBusinessAPI(t *testing.T) (*App, *mockBusinessAPI, *bytes.Buffer) {
	t.Helper()
	mock := newMockBusinessAPI()
	out := &bytes.Buffer{}
	app := NewApp(mock, config.NewConfig()).WithIO(strings.NewReader(""), out)
	return app, mock, out
}

// runCLI executes the root command over the mock with the given stdin
func runCLI(t *testing.T, mock *mockBusinessAPI, stdin string, args ...string) (string, error) {
	t.Helper()
	factory := func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
		return mock, func() error { mock.closed++; return nil }, nil
	}

	root := NewRootCommand(config.NewLoader(), factory)
	out := &bytes.Buffer{}
	root.Command().SetArgs(args)
	root.Command().SetIn(strings.NewReader(stdin))
	root.Command().SetOut(out)
	root.Command().SetErr(&bytes.Buffer{})

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// fixNow pins timeNow for the duration of a test
func fixNow(t *testing.T, now time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = old })
}

func seedTicket(t *testing.T, mock *mockBusinessAPI, service, opened string, closed *string) *domain.ManualTicket {
	t.Helper()
	ticket, err := mock.CreateTicket(context.Background(), services.TicketInput{
		Service:  service,
		Operator: "marta",
		OpenedAt: opened,
		ClosedAt: closed,
	})
	require.NoError(t, err)
	return ticket
}

func strPtr(s string) *string {
	return &s
}
