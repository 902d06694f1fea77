package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const groupColumns = `id, event_id, status, amount_tickets, is_organizer_group, organizer_id,
       buyer_email, payment_ref, created_at, updated_at`

func scanGroup(row scanner) (*model.TicketGroup, error) {
	var (
		g          model.TicketGroup
		orgID      sql.NullInt64
		buyer, ref sql.NullString
	)
	err := row.Scan(&g.ID, &g.EventID, &g.Status, &g.AmountTickets, &g.IsOrganizerGroup, &orgID,
		&buyer, &ref, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTicketGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	g.OrganizerID = uint64Ptr(orgID)
	g.BuyerEmail = stringPtr(buyer)
	g.PaymentRef = stringPtr(ref)
	return &g, nil
}

func (t *sqlTx) InsertTicketGroup(ctx context.Context, g *model.TicketGroup) error {
	const q = `INSERT INTO ticket_groups (event_id, status, amount_tickets, is_organizer_group, organizer_id,
                      buyer_email, payment_ref, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, g.EventID, g.Status, g.AmountTickets, g.IsOrganizerGroup,
		nullUint64(g.OrganizerID), nullString(g.BuyerEmail), nullString(g.PaymentRef),
		g.CreatedAt.UTC(), g.UpdatedAt.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

func (t *sqlTx) GetTicketGroupForUpdate(ctx context.Context, id uint64) (*model.TicketGroup, error) {
	return scanGroup(t.tx.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM ticket_groups WHERE id = ? FOR UPDATE`, id))
}

// FindOrganizerGroup locks the event's personal-pass group.
func (t *sqlTx) FindOrganizerGroup(ctx context.Context, eventID uint64) (*model.TicketGroup, error) {
	return scanGroup(t.tx.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM ticket_groups
         WHERE event_id = ? AND is_organizer_group = 1
         ORDER BY id LIMIT 1 FOR UPDATE`, eventID))
}

// FindOrganizerCodeGroup locks the group that owns one organizer's
// invitation codes.
func (t *sqlTx) FindOrganizerCodeGroup(ctx context.Context, eventID, organizerID uint64) (*model.TicketGroup, error) {
	return scanGroup(t.tx.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM ticket_groups
         WHERE event_id = ? AND organizer_id = ? AND is_organizer_group = 0
         ORDER BY id LIMIT 1 FOR UPDATE`, eventID, organizerID))
}

// AdjustGroupAmount moves amount_tickets in place so the counter never
// depends on a value read earlier in the transaction.
func (t *sqlTx) AdjustGroupAmount(ctx context.Context, groupID uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	const q = `UPDATE ticket_groups
               SET amount_tickets = amount_tickets + ?, updated_at = UTC_TIMESTAMP(6)
               WHERE id = ?`
	res, err := t.tx.ExecContext(ctx, q, delta, groupID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrTicketGroupNotFound
	}
	return nil
}

func (t *sqlTx) UpdateTicketGroupStatus(ctx context.Context, groupID uint64, status model.TicketGroupStatus, paymentRef *string) error {
	const q = `UPDATE ticket_groups SET status = ?, payment_ref = ?, updated_at = UTC_TIMESTAMP(6) WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, nullString(paymentRef), groupID)
	return err
}

// InsertGroupLines writes every reservation line in one statement.
func (t *sqlTx) InsertGroupLines(ctx context.Context, lines []model.TicketTypePerGroup) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO ticket_type_per_group (ticket_group_id, ticket_type_id, amount) VALUES `
	args := make([]interface{}, 0, len(lines)*3)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, l.TicketGroupID, l.TicketTypeID, l.Amount)
	}
	_, err := t.tx.ExecContext(ctx, query, args...)
	return translate(err)
}

func (t *sqlTx) ListGroupLines(ctx context.Context, groupID uint64) ([]model.TicketTypePerGroup, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT ticket_group_id, ticket_type_id, amount FROM ticket_type_per_group
         WHERE ticket_group_id = ? ORDER BY ticket_type_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TicketTypePerGroup
	for rows.Next() {
		var l model.TicketTypePerGroup
		if err := rows.Scan(&l.TicketGroupID, &l.TicketTypeID, &l.Amount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// DeleteExpiredBooked removes BOOKED groups created before cutoff.  Their
// reservation lines cascade.  eventID 0 sweeps every event.
func (t *sqlTx) DeleteExpiredBooked(ctx context.Context, eventID uint64, cutoff time.Time) (int64, error) {
	q := `DELETE FROM ticket_groups WHERE status = 'BOOKED' AND created_at < ?`
	args := []interface{}{cutoff.UTC()}
	if eventID != 0 {
		q += ` AND event_id = ?`
		args = append(args, eventID)
	}
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
