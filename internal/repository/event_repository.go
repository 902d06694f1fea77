package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

const eventColumns = `id, slug, name, description, starts_at, ends_at, location, category,
       invite_condition, is_active, is_deleted, created_at, updated_at`

func scanEvent(row scanner) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Slug, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt,
		&e.Location, &e.Category, &e.InviteCondition, &e.IsActive, &e.IsDeleted,
		&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// InsertEvent stores e and fills in its generated ID.
func (t *sqlTx) InsertEvent(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (slug, name, description, starts_at, ends_at, location, category,
                      invite_condition, is_active, is_deleted, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, e.Slug, e.Name, e.Description, e.StartsAt.UTC(), e.EndsAt.UTC(),
		e.Location, e.Category, e.InviteCondition, e.IsActive, e.IsDeleted, e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// UpdateEvent rewrites the mutable columns.  slug and invite_condition
// never change after insert.
func (t *sqlTx) UpdateEvent(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
               SET name = ?, description = ?, starts_at = ?, ends_at = ?, location = ?,
                   category = ?, is_active = ?, is_deleted = ?, updated_at = ?
               WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, e.Name, e.Description, e.StartsAt.UTC(), e.EndsAt.UTC(),
		e.Location, e.Category, e.IsActive, e.IsDeleted, e.UpdatedAt.UTC(), e.ID)
	return err
}

func (t *sqlTx) GetEvent(ctx context.Context, id uint64) (*model.Event, error) {
	return scanEvent(t.tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
}

// GetEventForUpdate takes the row lock that serializes every write to one
// event: organizer reconciliation, checkout counting, ticket type edits.
func (t *sqlTx) GetEventForUpdate(ctx context.Context, id uint64) (*model.Event, error) {
	return scanEvent(t.tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ? FOR UPDATE`, id))
}

func (t *sqlTx) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return scanEvent(t.tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = ?`, slug))
}

// ListEvents pages through active, non-deleted events in id order.
func (t *sqlTx) ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + `
               FROM events
               WHERE is_active = 1 AND is_deleted = 0
               ORDER BY id
               LIMIT ? OFFSET ?`
	rows, err := t.tx.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
