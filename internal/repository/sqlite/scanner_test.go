package sqlite

import (
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"ops-dashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return stderrors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}
	return nil
}

// TestRows implements the Rows interface over a list of scanners
type TestRows struct {
	scanners []*TestScanner
	pos      int
	err      error
}

func (tr *TestRows) Next() bool {
	if tr.pos >= len(tr.scanners) {
		return false
	}
	tr.pos++
	return true
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.scanners[tr.pos-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func ticketRow(id int64, closed sql.NullString, createdAt string) *TestScanner {
	return &TestScanner{data: []interface{}{
		id, "network", "marta", "ACME", "VPN down",
		"2024-01-08T09:00:00", closed,
		createdAt, "2024-01-08T09:05:00Z",
	}}
}

func TestScanTicket(t *testing.T) {
	closed := "2024-01-08T11:30:00"

	tests := []struct {
		name        string
		scanner     *TestScanner
		expected    *repository.Ticket
		expectError bool
	}{
		{
			name:    "closed ticket",
			scanner: ticketRow(1, sql.NullString{String: closed, Valid: true}, "2024-01-08T09:01:00.5Z"),
			expected: &repository.Ticket{
				ID: 1, Service: "network", Operator: "marta", Customer: "ACME", Description: "VPN down",
				OpenedAt:  "2024-01-08T09:00:00",
				ClosedAt:  &closed,
				CreatedAt: time.Date(2024, 1, 8, 9, 1, 0, 500_000_000, time.UTC),
				UpdatedAt: time.Date(2024, 1, 8, 9, 5, 0, 0, time.UTC),
			},
		},
		{
			name:    "open ticket",
			scanner: ticketRow(2, sql.NullString{}, "2024-01-08T09:01:00Z"),
			expected: &repository.Ticket{
				ID: 2, Service: "network", Operator: "marta", Customer: "ACME", Description: "VPN down",
				OpenedAt:  "2024-01-08T09:00:00",
				CreatedAt: time.Date(2024, 1, 8, 9, 1, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, 1, 8, 9, 5, 0, 0, time.UTC),
			},
		},
		{
			name:        "scan error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
		{
			name:        "corrupt bookkeeping timestamp",
			scanner:     ticketRow(3, sql.NullString{}, "yesterday"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScanTicket(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanTickets(t *testing.T) {
	rows := &TestRows{scanners: []*TestScanner{
		ticketRow(1, sql.NullString{}, "2024-01-08T09:01:00Z"),
		ticketRow(2, sql.NullString{}, "2024-01-08T09:02:00Z"),
	}}

	tickets, err := ScanTickets(rows)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(1), tickets[0].ID)
	assert.Equal(t, int64(2), tickets[1].ID)

	_, err = ScanTickets(&TestRows{err: stderrors.New("cursor broke")})
	assert.Error(t, err)

	_, err = ScanTickets(&TestRows{scanners: []*TestScanner{{err: stderrors.New("bad row")}}})
	assert.Error(t, err)
}

func TestFormatTimeForDB(t *testing.T) {
	ts := time.Date(2024, 1, 8, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	formatted := FormatTimeForDB(ts)
	assert.Equal(t, "2024-01-08T09:30:00Z", formatted)

	parsed, err := ParseTimeFromDB(formatted)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Nil(t, NullableString(nil))
	s := "x"
	assert.Equal(t, "x", NullableString(&s))
}
