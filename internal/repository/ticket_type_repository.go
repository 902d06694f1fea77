package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const ticketTypeColumns = `id, event_id, name, category, price_cents, max_available, max_per_purchase,
       sale_ends_at, scan_ends_at, created_at`

// ListTicketTypes returns the event's ticket types, organizer type
// included, ordered by id, with their seller restrictions.
func (t *sqlTx) ListTicketTypes(ctx context.Context, eventID uint64) ([]model.TicketType, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT `+ticketTypeColumns+` FROM ticket_types WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	var out []model.TicketType
	index := map[uint64]int{}
	for rows.Next() {
		var (
			tt               model.TicketType
			saleEnd, scanEnd sql.NullTime
		)
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Category, &tt.PriceCents,
			&tt.MaxAvailable, &tt.MaxPerPurchase, &saleEnd, &scanEnd, &tt.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		tt.SaleEndsAt = timePtr(saleEnd)
		tt.ScanEndsAt = timePtr(scanEnd)
		index[tt.ID] = len(out)
		out = append(out, tt)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	const sellers = `SELECT s.ticket_type_id, s.organizer_id
                     FROM ticket_type_sellers s
                     JOIN ticket_types tt ON tt.id = s.ticket_type_id
                     WHERE tt.event_id = ?
                     ORDER BY s.ticket_type_id, s.organizer_id`
	srows, err := t.tx.QueryContext(ctx, sellers, eventID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var typeID, orgID uint64
		if err := srows.Scan(&typeID, &orgID); err != nil {
			return nil, err
		}
		if i, ok := index[typeID]; ok {
			out[i].SellerIDs = append(out[i].SellerIDs, orgID)
		}
	}
	return out, srows.Err()
}

func (t *sqlTx) InsertTicketType(ctx context.Context, tt *model.TicketType) error {
	const q = `INSERT INTO ticket_types (event_id, name, category, price_cents, max_available,
                      max_per_purchase, sale_ends_at, scan_ends_at, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, tt.EventID, tt.Name, tt.Category, tt.PriceCents, tt.MaxAvailable,
		tt.MaxPerPurchase, nullTime(tt.SaleEndsAt), nullTime(tt.ScanEndsAt), tt.CreatedAt.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tt.ID = uint64(id)
	return t.replaceSellers(ctx, tt.ID, tt.SellerIDs)
}

func (t *sqlTx) UpdateTicketType(ctx context.Context, tt *model.TicketType) error {
	const q = `UPDATE ticket_types
               SET name = ?, category = ?, price_cents = ?, max_available = ?, max_per_purchase = ?,
                   sale_ends_at = ?, scan_ends_at = ?
               WHERE id = ?`
	if _, err := t.tx.ExecContext(ctx, q, tt.Name, tt.Category, tt.PriceCents, tt.MaxAvailable,
		tt.MaxPerPurchase, nullTime(tt.SaleEndsAt), nullTime(tt.ScanEndsAt), tt.ID); err != nil {
		return translate(err)
	}
	return t.replaceSellers(ctx, tt.ID, tt.SellerIDs)
}

// DeleteTicketType removes the type; seller rows and stale reservation
// lines go with it through ON DELETE CASCADE.
func (t *sqlTx) DeleteTicketType(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM ticket_types WHERE id = ?`, id)
	return err
}

// TicketTypeUsage counts emitted tickets of the type plus quantities held
// by BOOKED groups created at or after heldSince.
func (t *sqlTx) TicketTypeUsage(ctx context.Context, ticketTypeID uint64, heldSince time.Time) (model.TicketTypeUsage, error) {
	const q = `SELECT
                 (SELECT COUNT(*) FROM emitted_tickets WHERE ticket_type_id = ?),
                 (SELECT COALESCE(SUM(p.amount), 0)
                    FROM ticket_type_per_group p
                    JOIN ticket_groups g ON g.id = p.ticket_group_id
                   WHERE p.ticket_type_id = ? AND g.status = 'BOOKED' AND g.created_at >= ?)`
	var u model.TicketTypeUsage
	err := t.tx.QueryRowContext(ctx, q, ticketTypeID, ticketTypeID, heldSince.UTC()).Scan(&u.Emitted, &u.Held)
	return u, err
}

func (t *sqlTx) replaceSellers(ctx context.Context, ticketTypeID uint64, sellerIDs []uint64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM ticket_type_sellers WHERE ticket_type_id = ?`, ticketTypeID); err != nil {
		return err
	}
	if len(sellerIDs) == 0 {
		return nil
	}
	query := `INSERT INTO ticket_type_sellers (ticket_type_id, organizer_id) VALUES `
	args := make([]interface{}, 0, len(sellerIDs)*2)
	for i, id := range sellerIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, ticketTypeID, id)
	}
	_, err := t.tx.ExecContext(ctx, query, args...)
	return translate(err)
}
