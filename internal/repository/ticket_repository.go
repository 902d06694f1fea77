package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const ticketColumns = `id, event_id, ticket_type_id, ticket_group_id, organizer_id, full_name, dni, mail,
       phone, gender, birth_date, scanned, scanned_by_user_id, scanned_at, created_at`

func scanTicket(row scanner) (*model.EmittedTicket, error) {
	var (
		tk                   model.EmittedTicket
		orgID, scannedBy     sql.NullInt64
		birthDate, scannedAt sql.NullTime
	)
	err := row.Scan(&tk.ID, &tk.EventID, &tk.TicketTypeID, &tk.TicketGroupID, &orgID,
		&tk.FullName, &tk.DNI, &tk.Mail, &tk.Phone, &tk.Gender, &birthDate,
		&tk.Scanned, &scannedBy, &scannedAt, &tk.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	tk.OrganizerID = uint64Ptr(orgID)
	tk.BirthDate = timePtr(birthDate)
	tk.ScannedByUserID = uint64Ptr(scannedBy)
	tk.ScannedAt = timePtr(scannedAt)
	return &tk, nil
}

func (t *sqlTx) InsertTicket(ctx context.Context, tk *model.EmittedTicket) error {
	const q = `INSERT INTO emitted_tickets (event_id, ticket_type_id, ticket_group_id, organizer_id,
                      full_name, dni, mail, phone, gender, birth_date, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, tk.EventID, tk.TicketTypeID, tk.TicketGroupID, nullUint64(tk.OrganizerID),
		tk.FullName, tk.DNI, tk.Mail, tk.Phone, tk.Gender, nullTime(tk.BirthDate), tk.CreatedAt.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tk.ID = uint64(id)
	return nil
}

func (t *sqlTx) DeleteTicket(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM emitted_tickets WHERE id = ?`, id)
	return err
}

func (t *sqlTx) GetTicketForUpdate(ctx context.Context, id uint64) (*model.EmittedTicket, error) {
	return scanTicket(t.tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM emitted_tickets WHERE id = ? FOR UPDATE`, id))
}

// FindPersonalTicket returns the organizer's entry pass for the event.
func (t *sqlTx) FindPersonalTicket(ctx context.Context, eventID, organizerID uint64) (*model.EmittedTicket, error) {
	return scanTicket(t.tx.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM emitted_tickets
         WHERE event_id = ? AND organizer_id = ?
         ORDER BY id LIMIT 1 FOR UPDATE`, eventID, organizerID))
}

// MarkScanned flips scanned once; false means another scan got there first.
func (t *sqlTx) MarkScanned(ctx context.Context, id, scannedBy uint64, at time.Time) (bool, error) {
	const q = `UPDATE emitted_tickets SET scanned = 1, scanned_by_user_id = ?, scanned_at = ?
               WHERE id = ? AND scanned = 0`
	res, err := t.tx.ExecContext(ctx, q, scannedBy, at.UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
