package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// ReserveLine asks for amount tickets of one type.
type ReserveLine struct {
	TicketTypeID uint64 `json:"ticket_type_id"`
	Amount       int    `json:"amount"`
}

// ReserveInput starts a checkout.
type ReserveInput struct {
	BuyerEmail string        `json:"buyer_email"`
	Lines      []ReserveLine `json:"lines"`
}

// AttendeeLine is one ticket to emit at confirmation.
type AttendeeLine struct {
	TicketTypeID uint64 `json:"ticket_type_id"`
	model.Attendee
}

// ConfirmInput completes a checkout.  DiscountCode is an organizer's
// TRADITIONAL code; PaymentRef is required when the total is not zero.
type ConfirmInput struct {
	Attendees    []AttendeeLine `json:"attendees"`
	DiscountCode string         `json:"discount_code,omitempty"`
	PaymentRef   *string        `json:"payment_ref,omitempty"`
}

// ConfirmResult is what a confirmed checkout produced.
type ConfirmResult struct {
	Group        *model.TicketGroup    `json:"group"`
	Tickets      []model.EmittedTicket `json:"tickets"`
	TotalCents   uint64                `json:"total_cents"`
	DiscountPct  int                   `json:"discount_pct,omitempty"`
	SoldByUserID *uint64               `json:"sold_by_user_id,omitempty"`
}

// CheckoutService drives purchase groups through BOOKED to PAID or FREE
// and marks tickets scanned at the door.
type CheckoutService struct {
	store  Store
	queue  NotificationQueue
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration
}

func NewCheckoutService(store Store, queue NotificationQueue, clk clock.Clock, logger *slog.Logger, ttl time.Duration) *CheckoutService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CheckoutService{store: store, queue: queue, clock: clk, logger: logger, ttl: ttl}
}

// Reserve holds capacity for a buyer as a BOOKED group.  The event row is
// locked while capacity is counted, and expired holds of the event are
// purged first so abandoned checkouts do not block the sale.
func (c *CheckoutService) Reserve(ctx context.Context, eventID uint64, in ReserveInput) (*model.TicketGroup, error) {
	if len(in.Lines) == 0 {
		return nil, model.Invalid("lines", "at least one line is required")
	}
	email := strings.TrimSpace(in.BuyerEmail)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, model.Invalid("buyer_email", "is not a valid address")
	}
	seen := map[uint64]struct{}{}
	for i, l := range in.Lines {
		if l.Amount < 1 {
			return nil, model.Invalid(fmt.Sprintf("lines[%d].amount", i), "must be at least 1")
		}
		if _, dup := seen[l.TicketTypeID]; dup {
			return nil, model.Invalid(fmt.Sprintf("lines[%d].ticket_type_id", i), "listed twice")
		}
		seen[l.TicketTypeID] = struct{}{}
	}

	now := c.clock.Now()
	cutoff := now.Add(-c.ttl)
	var group *model.TicketGroup
	err := c.store.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsDeleted || !ev.IsActive {
			return model.ErrEventNotFound
		}
		if _, err := tx.DeleteExpiredBooked(ctx, eventID, cutoff); err != nil {
			return fmt.Errorf("purge expired reservations: %w", err)
		}

		for _, l := range in.Lines {
			tt, err := sellableType(ctx, tx, eventID, l.TicketTypeID)
			if err != nil {
				return err
			}
			if tt.SaleEndsAt != nil && !now.Before(*tt.SaleEndsAt) {
				return fmt.Errorf("%w: %q", model.ErrSaleClosed, tt.Name)
			}
			if l.Amount > tt.MaxPerPurchase {
				return fmt.Errorf("%w: %q allows %d", model.ErrPurchaseLimit, tt.Name, tt.MaxPerPurchase)
			}
			usage, err := tx.TicketTypeUsage(ctx, tt.ID, cutoff)
			if err != nil {
				return err
			}
			if !ledger.CanTake(tt.MaxAvailable, usage.Emitted, usage.Held, l.Amount) {
				return fmt.Errorf("%w: %q has %d left", model.ErrSoldOut, tt.Name, ledger.Remaining(tt.MaxAvailable, usage.Emitted, usage.Held))
			}
		}

		group = &model.TicketGroup{
			EventID:    eventID,
			Status:     model.GroupBooked,
			BuyerEmail: &email,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.InsertTicketGroup(ctx, group); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		lines := make([]model.TicketTypePerGroup, 0, len(in.Lines))
		for _, l := range in.Lines {
			lines = append(lines, model.TicketTypePerGroup{TicketGroupID: group.ID, TicketTypeID: l.TicketTypeID, Amount: l.Amount})
		}
		return tx.InsertGroupLines(ctx, lines)
	})
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "reservation created",
		slog.Uint64("event_id", eventID),
		slog.Uint64("group_id", group.ID),
	)
	return group, nil
}

// Confirm emits the reserved tickets and moves the group to its terminal
// state: FREE when nothing is owed, PAID otherwise.
func (c *CheckoutService) Confirm(ctx context.Context, groupID uint64, in ConfirmInput) (*ConfirmResult, error) {
	for i, a := range in.Attendees {
		if strings.TrimSpace(a.FullName) == "" {
			return nil, model.Invalid(fmt.Sprintf("attendees[%d].full_name", i), "is required")
		}
	}

	now := c.clock.Now()
	res := &ConfirmResult{}
	var notes []model.Notification
	err := c.store.WithTx(ctx, func(tx Tx) error {
		g, err := tx.GetTicketGroupForUpdate(ctx, groupID)
		if err != nil {
			return err
		}
		if g.IsOrganizerGroup || g.OrganizerID != nil {
			return model.ErrTicketGroupNotFound
		}
		if g.Status != model.GroupBooked {
			return fmt.Errorf("%w: group is %s", model.ErrInvalidTransition, g.Status)
		}
		if g.CreatedAt.Before(now.Add(-c.ttl)) {
			return model.ErrReservationExpired
		}
		ev, err := tx.GetEvent(ctx, g.EventID)
		if err != nil {
			return err
		}

		lines, err := tx.ListGroupLines(ctx, g.ID)
		if err != nil {
			return err
		}
		want := map[uint64]int{}
		for _, l := range lines {
			want[l.TicketTypeID] = l.Amount
		}
		got := map[uint64]int{}
		for _, a := range in.Attendees {
			got[a.TicketTypeID]++
		}
		for id, n := range want {
			if got[id] != n {
				return model.Invalid("attendees", "ticket type %d needs %d attendees, got %d", id, n, got[id])
			}
		}
		if len(got) != len(want) {
			return model.Invalid("attendees", "attendee for a ticket type that was not reserved")
		}

		types := map[uint64]*model.TicketType{}
		var total uint64
		for _, l := range lines {
			tt, err := sellableType(ctx, tx, g.EventID, l.TicketTypeID)
			if err != nil {
				return err
			}
			types[tt.ID] = tt
			total += uint64(tt.PriceCents) * uint64(l.Amount)
		}

		if in.DiscountCode != "" {
			if ev.InviteCondition != model.InviteTraditional {
				return model.Invalid("discount_code", "event does not use discount codes")
			}
			norm, ok := NormalizeCode(in.DiscountCode)
			if !ok {
				return model.Invalid("discount_code", "is malformed")
			}
			o, err := tx.GetEventOrganizerByCode(ctx, g.EventID, norm)
			if errors.Is(err, model.ErrOrganizerNotFound) {
				return model.Invalid("discount_code", "is unknown")
			}
			if err != nil {
				return err
			}
			for _, tt := range types {
				if !tt.SellableBy(o.OrganizerID) {
					return fmt.Errorf("%w: organizer %d, %q", model.ErrNotSeller, o.OrganizerID, tt.Name)
				}
			}
			res.DiscountPct = o.Discount()
			res.SoldByUserID = &o.OrganizerID
			total = total * uint64(100-o.Discount()) / 100
		}
		res.TotalCents = total

		status := model.GroupFree
		if total > 0 {
			status = model.GroupPaid
			if in.PaymentRef == nil || strings.TrimSpace(*in.PaymentRef) == "" {
				return model.Invalid("payment_ref", "is required for paid checkouts")
			}
		}
		if !g.Status.CanTransitionTo(status) {
			return model.ErrInvalidTransition
		}

		for _, a := range in.Attendees {
			t := model.EmittedTicket{
				Attendee:      a.Attendee,
				TicketTypeID:  a.TicketTypeID,
				TicketGroupID: g.ID,
				EventID:       g.EventID,
				CreatedAt:     now,
			}
			if err := tx.InsertTicket(ctx, &t); err != nil {
				return fmt.Errorf("emit ticket: %w", err)
			}
			res.Tickets = append(res.Tickets, t)
			if t.Mail != "" {
				notes = append(notes, ticketNotification(ev, types[t.TicketTypeID], &t, now))
			}
		}
		if err := tx.AdjustGroupAmount(ctx, g.ID, len(res.Tickets)); err != nil {
			return fmt.Errorf("grow group: %w", err)
		}
		if err := tx.UpdateTicketGroupStatus(ctx, g.ID, status, in.PaymentRef); err != nil {
			return fmt.Errorf("confirm group: %w", err)
		}
		g.Status = status
		g.AmountTickets += len(res.Tickets)
		g.PaymentRef = in.PaymentRef
		res.Group = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "reservation confirmed",
		slog.Uint64("group_id", groupID),
		slog.String("status", string(res.Group.Status)),
		slog.Int("tickets", len(res.Tickets)),
	)
	dispatch(ctx, c.queue, c.logger, notes)
	return res, nil
}

// ScanTicket marks a ticket as used at the door.  A ticket scans once and
// only until its type's scan window closes.
func (c *CheckoutService) ScanTicket(ctx context.Context, p model.Principal, ticketID uint64) (*model.EmittedTicket, error) {
	if !p.CanScan() {
		return nil, model.ErrForbidden
	}
	now := c.clock.Now()
	var out *model.EmittedTicket
	err := c.store.WithTx(ctx, func(tx Tx) error {
		t, err := tx.GetTicketForUpdate(ctx, ticketID)
		if err != nil {
			return err
		}
		if t.Scanned {
			return model.ErrAlreadyScanned
		}
		types, err := tx.ListTicketTypes(ctx, t.EventID)
		if err != nil {
			return err
		}
		for _, tt := range types {
			if tt.ID == t.TicketTypeID && tt.ScanEndsAt != nil && now.After(*tt.ScanEndsAt) {
				return model.ErrScanWindowClosed
			}
		}
		ok, err := tx.MarkScanned(ctx, t.ID, p.UserID, now)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrAlreadyScanned
		}
		uid := p.UserID
		t.Scanned = true
		t.ScannedByUserID = &uid
		t.ScannedAt = &now
		out = t
		return nil
	})
	return out, err
}
