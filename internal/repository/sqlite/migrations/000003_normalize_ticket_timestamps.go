package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func init() {
	RegisterGoMigration(3, "normalize_ticket_timestamps", upNormalizeTicketTimestamps, downNormalizeTicketTimestamps)
}

// CanonicalLayout is the zone-less local timestamp shape stored for
// opened_at and closed_at. It sorts lexicographically in time order.
const CanonicalLayout = "2006-01-02T15:04:05"

// legacy shapes written by the dashboard's older form fields
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// upNormalizeTicketTimestamps rewrites zone-less opened_at and closed_at
// values into CanonicalLayout. Values carrying an offset, or that cannot be
// parsed, are left as they are.
func upNormalizeTicketTimestamps(tx *sql.Tx) error {
	type row struct {
		id       int64
		openedAt string
		closedAt sql.NullString
	}
	var rows []row

	// read everything first, SQLite cannot update while a cursor is open on the table
	cursor, err := tx.Query("SELECT id, opened_at, closed_at FROM manual_tickets")
	if err != nil {
		return fmt.Errorf("failed to query tickets: %w", err)
	}
	for cursor.Next() {
		var r row
		if err := cursor.Scan(&r.id, &r.openedAt, &r.closedAt); err != nil {
			cursor.Close()
			return fmt.Errorf("failed to scan ticket: %w", err)
		}
		rows = append(rows, r)
	}
	if err := cursor.Err(); err != nil {
		cursor.Close()
		return fmt.Errorf("error iterating tickets: %w", err)
	}
	cursor.Close()

	stmt, err := tx.Prepare("UPDATE manual_tickets SET opened_at = ?, closed_at = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	updated, skipped := 0, 0
	for _, r := range rows {
		opened, okOpened := NormalizeTimestamp(r.openedAt)
		if !okOpened {
			skipped++
			log.Warn().Int64("ticket_id", r.id).Str("opened_at", r.openedAt).Msg("leaving unrecognised opened_at as is")
			opened = r.openedAt
		}

		closed := r.closedAt
		if closed.Valid {
			if v, ok := NormalizeTimestamp(closed.String); ok {
				closed.String = v
			} else {
				skipped++
				log.Warn().Int64("ticket_id", r.id).Str("closed_at", closed.String).Msg("leaving unrecognised closed_at as is")
			}
		}

		if opened == r.openedAt && closed == r.closedAt {
			continue
		}
		if _, err := stmt.Exec(opened, closed, r.id); err != nil {
			return fmt.Errorf("failed to update ticket %d: %w", r.id, err)
		}
		updated++
	}

	log.Info().Int("tickets", len(rows)).Int("updated", updated).Int("skipped", skipped).Msg("normalized ticket timestamps")
	return nil
}

// downNormalizeTicketTimestamps is a no-op; the original spellings are not kept.
func downNormalizeTicketTimestamps(*sql.Tx) error {
	return nil
}

// NormalizeTimestamp rewrites a zone-less timestamp into CanonicalLayout.
// ok is false for values with an offset and for anything unparseable.
func NormalizeTimestamp(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(CanonicalLayout, s); err == nil {
		return t.Format(CanonicalLayout), true
	}
	for _, layout := range legacyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalLayout), true
		}
	}
	return raw, false
}
