package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const organizerColumns = `event_id, organizer_id, discount_percentage, ticket_amount, code, created_at`

func scanOrganizer(row scanner) (*model.EventOrganizer, error) {
	var (
		o                model.EventOrganizer
		discount, amount sql.NullInt64
	)
	err := row.Scan(&o.EventID, &o.OrganizerID, &discount, &amount, &o.Code, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrganizerNotFound
	}
	if err != nil {
		return nil, err
	}
	o.DiscountPercentage = intPtr(discount)
	o.TicketAmount = intPtr(amount)
	return &o, nil
}

// GetUser loads the account an organizer entry points at.
func (t *sqlTx) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(t.tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// ListEventOrganizers returns the event's organizers ordered by organizer
// id.  The event row lock taken by the caller already serializes writers.
func (t *sqlTx) ListEventOrganizers(ctx context.Context, eventID uint64) ([]model.EventOrganizer, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT `+organizerColumns+` FROM event_organizers WHERE event_id = ? ORDER BY organizer_id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.EventOrganizer
	for rows.Next() {
		o, err := scanOrganizer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (t *sqlTx) GetEventOrganizerByCode(ctx context.Context, eventID uint64, code string) (*model.EventOrganizer, error) {
	return scanOrganizer(t.tx.QueryRowContext(ctx,
		`SELECT `+organizerColumns+` FROM event_organizers WHERE event_id = ? AND code = ?`, eventID, code))
}

func (t *sqlTx) InsertEventOrganizer(ctx context.Context, o *model.EventOrganizer) error {
	const q = `INSERT INTO event_organizers (event_id, organizer_id, discount_percentage, ticket_amount, code, created_at)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q, o.EventID, o.OrganizerID, nullInt(o.DiscountPercentage),
		nullInt(o.TicketAmount), o.Code, o.CreatedAt.UTC())
	return translate(err)
}

// UpdateEventOrganizer rewrites the declared allowance.  The code is fixed
// for the lifetime of the row.
func (t *sqlTx) UpdateEventOrganizer(ctx context.Context, o *model.EventOrganizer) error {
	const q = `UPDATE event_organizers SET discount_percentage = ?, ticket_amount = ?
               WHERE event_id = ? AND organizer_id = ?`
	_, err := t.tx.ExecContext(ctx, q, nullInt(o.DiscountPercentage), nullInt(o.TicketAmount), o.EventID, o.OrganizerID)
	return err
}

func (t *sqlTx) DeleteEventOrganizer(ctx context.Context, eventID, organizerID uint64) error {
	_, err := t.tx.ExecContext(ctx,
		`DELETE FROM event_organizers WHERE event_id = ? AND organizer_id = ?`, eventID, organizerID)
	return err
}
