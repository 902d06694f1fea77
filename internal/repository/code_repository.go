package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const codeColumns = `id, event_id, organizer_id, ticket_group_id, code, ticket_id, created_at`

func scanCode(row scanner) (*model.OrganizerCode, error) {
	var (
		c        model.OrganizerCode
		ticketID sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.EventID, &c.OrganizerID, &c.TicketGroupID, &c.Code, &ticketID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	c.TicketID = uint64Ptr(ticketID)
	return &c, nil
}

func scanCodes(rows *sql.Rows) ([]model.OrganizerCode, error) {
	defer rows.Close()
	var out []model.OrganizerCode
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// InsertCodes writes a batch of unredeemed codes in one statement.  A
// collision on (event_id, code) surfaces as model.ErrConflict.
func (t *sqlTx) InsertCodes(ctx context.Context, codes []model.OrganizerCode) error {
	if len(codes) == 0 {
		return nil
	}
	query := `INSERT INTO organizer_codes (event_id, organizer_id, ticket_group_id, code, created_at) VALUES `
	args := make([]interface{}, 0, len(codes)*5)
	for i, c := range codes {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, c.EventID, c.OrganizerID, c.TicketGroupID, c.Code, c.CreatedAt.UTC())
	}
	_, err := t.tx.ExecContext(ctx, query, args...)
	return translate(err)
}

// CountCodes counts the organizer's rows; the allowance columns are never
// trusted for resizing.
func (t *sqlTx) CountCodes(ctx context.Context, eventID, organizerID uint64) (model.CodeStats, error) {
	var s model.CodeStats
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(ticket_id) FROM organizer_codes WHERE event_id = ? AND organizer_id = ?`,
		eventID, organizerID).Scan(&s.Total, &s.Redeemed)
	return s, err
}

// LockUnredeemedCodes selects the oldest unredeemed rows FOR UPDATE.
// limit 0 locks all of them.
func (t *sqlTx) LockUnredeemedCodes(ctx context.Context, eventID, organizerID uint64, limit int) ([]model.OrganizerCode, error) {
	q := `SELECT ` + codeColumns + ` FROM organizer_codes
          WHERE event_id = ? AND organizer_id = ? AND ticket_id IS NULL
          ORDER BY created_at, id`
	args := []interface{}{eventID, organizerID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	q += ` FOR UPDATE`
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanCodes(rows)
}

// DeleteCodes deletes the given rows as long as they are still unredeemed
// and reports how many went.
func (t *sqlTx) DeleteCodes(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := t.tx.ExecContext(ctx,
		`DELETE FROM organizer_codes WHERE ticket_id IS NULL AND id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RedeemCode attaches ticketID only while the code is unredeemed.  Zero
// rows changed means the code is unknown or somebody else redeemed it.
func (t *sqlTx) RedeemCode(ctx context.Context, eventID uint64, code string, ticketID uint64) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE organizer_codes SET ticket_id = ? WHERE event_id = ? AND code = ? AND ticket_id IS NULL`,
		ticketID, eventID, code)
	if err != nil {
		return 0, translate(err)
	}
	return res.RowsAffected()
}

func (t *sqlTx) GetCode(ctx context.Context, eventID uint64, code string) (*model.OrganizerCode, error) {
	return scanCode(t.tx.QueryRowContext(ctx,
		`SELECT `+codeColumns+` FROM organizer_codes WHERE event_id = ? AND code = ?`, eventID, code))
}

// TakenCodes lists invitation and discount codes already used by the event.
func (t *sqlTx) TakenCodes(ctx context.Context, eventID uint64) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT code FROM organizer_codes WHERE event_id = ?
         UNION ALL
         SELECT code FROM event_organizers WHERE event_id = ?`, eventID, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
