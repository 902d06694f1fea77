package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// CodePool manages one organizer's invitation codes for one event.  Every
// method runs inside the caller's transaction and moves the owning group's
// amount_tickets in the same step as the rows it touches.
type CodePool struct {
	tx          Tx
	eventID     uint64
	organizerID uint64
	codes       *CodeGenerator
	now         time.Time
}

// NewCodePool scopes a pool to (eventID, organizerID).  now stamps created
// rows so shrink order stays deterministic.
func NewCodePool(tx Tx, eventID, organizerID uint64, codes *CodeGenerator, now time.Time) *CodePool {
	return &CodePool{tx: tx, eventID: eventID, organizerID: organizerID, codes: codes, now: now}
}

// Grow creates n unredeemed codes on the organizer's dedicated group,
// creating the group on first use.  It returns the new codes.
func (p *CodePool) Grow(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	group, err := p.codeGroup(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]model.OrganizerCode, 0, n)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		code, err := p.codes.Next()
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.OrganizerCode{
			EventID:       p.eventID,
			OrganizerID:   p.organizerID,
			TicketGroupID: group.ID,
			Code:          code,
			CreatedAt:     p.now,
		})
		out = append(out, code)
	}
	if err := p.tx.InsertCodes(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert codes: %w", err)
	}
	if err := p.tx.AdjustGroupAmount(ctx, group.ID, n); err != nil {
		return nil, fmt.Errorf("grow group %d: %w", group.ID, err)
	}
	return out, nil
}

// Shrink deletes the n oldest unredeemed codes.  Redeemed rows are never
// candidates.
func (p *CodePool) Shrink(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	rows, err := p.tx.LockUnredeemedCodes(ctx, p.eventID, p.organizerID, n)
	if err != nil {
		return fmt.Errorf("lock unredeemed codes: %w", err)
	}
	if len(rows) < n {
		return fmt.Errorf("%w: organizer %d has %d, need %d", model.ErrInsufficientUnredeemed, p.organizerID, len(rows), n)
	}
	return p.delete(ctx, rows)
}

// RevokeAll deletes every unredeemed code of the organizer and returns how
// many were removed.
func (p *CodePool) RevokeAll(ctx context.Context) (int, error) {
	rows, err := p.tx.LockUnredeemedCodes(ctx, p.eventID, p.organizerID, 0)
	if err != nil {
		return 0, fmt.Errorf("lock unredeemed codes: %w", err)
	}
	if err := p.delete(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (p *CodePool) delete(ctx context.Context, rows []model.OrganizerCode) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(rows))
	perGroup := map[uint64]int{}
	var order []uint64
	for _, r := range rows {
		ids = append(ids, r.ID)
		if _, seen := perGroup[r.TicketGroupID]; !seen {
			order = append(order, r.TicketGroupID)
		}
		perGroup[r.TicketGroupID]++
	}
	deleted, err := p.tx.DeleteCodes(ctx, ids)
	if err != nil {
		return fmt.Errorf("delete codes: %w", err)
	}
	if int(deleted) != len(ids) {
		return fmt.Errorf("%w: deleted %d of %d codes", model.ErrConflict, deleted, len(ids))
	}
	for _, gid := range order {
		if err := p.tx.AdjustGroupAmount(ctx, gid, -perGroup[gid]); err != nil {
			return fmt.Errorf("shrink group %d: %w", gid, err)
		}
	}
	return nil
}

func (p *CodePool) codeGroup(ctx context.Context) (*model.TicketGroup, error) {
	g, err := p.tx.FindOrganizerCodeGroup(ctx, p.eventID, p.organizerID)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, model.ErrTicketGroupNotFound) {
		return nil, fmt.Errorf("find code group: %w", err)
	}
	orgID := p.organizerID
	g = &model.TicketGroup{
		EventID:     p.eventID,
		Status:      model.GroupFree,
		OrganizerID: &orgID,
		CreatedAt:   p.now,
		UpdatedAt:   p.now,
	}
	if err := p.tx.InsertTicketGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("create code group: %w", err)
	}
	return g, nil
}

// RedeemCode attaches ticketID to the unredeemed code matched by
// (eventID, code) and returns the row with its organizer attribution.
// The conditional update is what makes two concurrent redemptions of one
// code impossible.
func RedeemCode(ctx context.Context, tx Tx, eventID uint64, code string, ticketID uint64) (*model.OrganizerCode, error) {
	norm, ok := NormalizeCode(code)
	if !ok {
		return nil, model.ErrCodeNotFound
	}
	n, err := tx.RedeemCode(ctx, eventID, norm, ticketID)
	if err != nil {
		return nil, fmt.Errorf("redeem code: %w", err)
	}
	row, err := tx.GetCode(ctx, eventID, norm)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrAlreadyRedeemed
	}
	return row, nil
}
