package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thenoetrevino/labelpick/internal/models"
)

// ErrTicketNotFound is returned when a ticket id does not exist
var ErrTicketNotFound = errors.New("ticket not found")

// ============================================================================
// Label Operations
// ============================================================================

// CreateLabel creates a new label
func CreateLabel(ctx context.Context, db *sql.DB, name, color string) (*models.Label, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO labels (name, color) VALUES (?, ?)`,
		name, color,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Label{ID: int(id), Name: name, Color: color}, nil
}

// GetAllLabels retrieves all labels ordered by name
func GetAllLabels(ctx context.Context, db *sql.DB) ([]models.Label, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, color FROM labels ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []models.Label{}
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}

	return labels, rows.Err()
}

// ============================================================================
// Ticket Operations
// ============================================================================

// CreateTicket creates a new ticket and returns its id
func CreateTicket(ctx context.Context, db *sql.DB, title string) (int, error) {
	result, err := db.ExecContext(ctx, `INSERT INTO tickets (title) VALUES (?)`, title)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// TicketExists reports whether the ticket id exists
func TicketExists(ctx context.Context, db *sql.DB, ticketID int) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE id = ?`, ticketID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetLabelsForTicket retrieves the labels attached to a ticket, ordered by name
func GetLabelsForTicket(ctx context.Context, db *sql.DB, ticketID int) ([]models.Label, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT l.id, l.name, l.color
		FROM labels l
		INNER JOIN ticket_labels tl ON l.id = tl.label_id
		WHERE tl.ticket_id = ?
		ORDER BY l.name, l.id`,
		ticketID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []models.Label{}
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// SetTicketLabels replaces all labels for a ticket
func SetTicketLabels(ctx context.Context, db *sql.DB, ticketID int, labelIDs []int) error {
	exists, err := TicketExists(ctx, db, ticketID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTicketNotFound
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Remove all existing labels
	if _, err := tx.ExecContext(ctx, `DELETE FROM ticket_labels WHERE ticket_id = ?`, ticketID); err != nil {
		return err
	}

	// Add new labels
	for _, labelID := range labelIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO ticket_labels (ticket_id, label_id) VALUES (?, ?)`,
			ticketID, labelID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
