package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// OrganizerCodeResult answers a TRADITIONAL discount code lookup.
type OrganizerCodeResult struct {
	Valid              bool   `json:"valid"`
	OrganizerID        uint64 `json:"organizer_id,omitempty"`
	DiscountPercentage int    `json:"discount_percentage,omitempty"`
}

// InvitationCodeResult answers an INVITATION code lookup.  AlreadyUsed is
// set when the code exists but was redeemed.
type InvitationCodeResult struct {
	Valid       bool   `json:"valid"`
	OrganizerID uint64 `json:"organizer_id,omitempty"`
	AlreadyUsed bool   `json:"already_used"`
}

// RedemptionGateway validates codes at checkout and turns one invitation
// code into one emitted ticket.  A redeemed ticket draws on its type's
// max_available like a sale, and holds younger than ttl count against it.
type RedemptionGateway struct {
	store  Store
	queue  NotificationQueue
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration
}

func NewRedemptionGateway(store Store, queue NotificationQueue, clk clock.Clock, logger *slog.Logger, ttl time.Duration) *RedemptionGateway {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedemptionGateway{store: store, queue: queue, clock: clk, logger: logger, ttl: ttl}
}

// ValidateOrganizerCode looks up the organizer owning a discount code.
// Discount codes are reusable so nothing is consumed.
func (g *RedemptionGateway) ValidateOrganizerCode(ctx context.Context, eventID uint64, code string) (OrganizerCodeResult, error) {
	norm, ok := NormalizeCode(code)
	if !ok {
		return OrganizerCodeResult{}, nil
	}
	var res OrganizerCodeResult
	err := g.store.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsDeleted {
			return model.ErrEventNotFound
		}
		if ev.InviteCondition != model.InviteTraditional {
			return nil
		}
		o, err := tx.GetEventOrganizerByCode(ctx, eventID, norm)
		if errors.Is(err, model.ErrOrganizerNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res = OrganizerCodeResult{Valid: true, OrganizerID: o.OrganizerID, DiscountPercentage: o.Discount()}
		return nil
	})
	return res, err
}

// ValidateInvitationCode reports whether an invitation code can still be
// redeemed.  The row is not locked; redemption re-checks atomically.
func (g *RedemptionGateway) ValidateInvitationCode(ctx context.Context, eventID uint64, code string) (InvitationCodeResult, error) {
	norm, ok := NormalizeCode(code)
	if !ok {
		return InvitationCodeResult{}, nil
	}
	var res InvitationCodeResult
	err := g.store.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsDeleted {
			return model.ErrEventNotFound
		}
		if ev.InviteCondition != model.InviteInvitation {
			return nil
		}
		c, err := tx.GetCode(ctx, eventID, norm)
		if errors.Is(err, model.ErrCodeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.Redeemed() {
			res = InvitationCodeResult{AlreadyUsed: true}
			return nil
		}
		res = InvitationCodeResult{Valid: true, OrganizerID: c.OrganizerID}
		return nil
	})
	return res, err
}

// RedeemInvitation emits a ticket into the code's group and redeems the
// code in the same transaction.  One unredeemed code becomes one emitted
// ticket, so the group's amount_tickets does not move.
func (g *RedemptionGateway) RedeemInvitation(ctx context.Context, eventID uint64, code string, ticketTypeID uint64, who model.Attendee) (*model.EmittedTicket, error) {
	norm, ok := NormalizeCode(code)
	if !ok {
		return nil, model.ErrCodeNotFound
	}
	if strings.TrimSpace(who.FullName) == "" {
		return nil, model.Invalid("full_name", "is required")
	}

	now := g.clock.Now()
	var (
		ticket *model.EmittedTicket
		note   model.Notification
	)
	err := g.store.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsDeleted {
			return model.ErrEventNotFound
		}
		if ev.InviteCondition != model.InviteInvitation {
			return model.Invalid("code", "event %d does not use invitation codes", eventID)
		}
		c, err := tx.GetCode(ctx, eventID, norm)
		if err != nil {
			return err
		}
		if c.Redeemed() {
			return model.ErrAlreadyRedeemed
		}
		tt, err := sellableType(ctx, tx, eventID, ticketTypeID)
		if err != nil {
			return err
		}
		if !tt.SellableBy(c.OrganizerID) {
			return fmt.Errorf("%w: organizer %d, %q", model.ErrNotSeller, c.OrganizerID, tt.Name)
		}
		if tt.SaleEndsAt != nil && !now.Before(*tt.SaleEndsAt) {
			return fmt.Errorf("%w: %q", model.ErrSaleClosed, tt.Name)
		}
		usage, err := tx.TicketTypeUsage(ctx, tt.ID, now.Add(-g.ttl))
		if err != nil {
			return err
		}
		if !ledger.CanTake(tt.MaxAvailable, usage.Emitted, usage.Held, 1) {
			return fmt.Errorf("%w: %q", model.ErrSoldOut, tt.Name)
		}

		ticket = &model.EmittedTicket{
			Attendee:      who,
			TicketTypeID:  tt.ID,
			TicketGroupID: c.TicketGroupID,
			EventID:       eventID,
			CreatedAt:     now,
		}
		if err := tx.InsertTicket(ctx, ticket); err != nil {
			return fmt.Errorf("emit ticket: %w", err)
		}
		if _, err := RedeemCode(ctx, tx, eventID, norm, ticket.ID); err != nil {
			return err
		}
		note = ticketNotification(ev, tt, ticket, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.logger.InfoContext(ctx, "invitation redeemed",
		slog.Uint64("event_id", eventID),
		slog.Uint64("ticket_id", ticket.ID),
	)
	if note.Recipient != "" {
		dispatch(ctx, g.queue, g.logger, []model.Notification{note})
	}
	return ticket, nil
}

// sellableType loads a client ticket type of the event.  The organizer
// type is never sellable.
func sellableType(ctx context.Context, tx Tx, eventID, ticketTypeID uint64) (*model.TicketType, error) {
	types, err := tx.ListTicketTypes(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if t.ID == ticketTypeID && !t.IsOrganizerType() {
			return &t, nil
		}
	}
	return nil, model.ErrTicketTypeNotFound
}

func ticketNotification(ev *model.Event, tt *model.TicketType, t *model.EmittedTicket, now time.Time) model.Notification {
	return model.Notification{
		ID:             uuid.NewString(),
		Kind:           model.NotifyTicketIssued,
		Recipient:      t.Mail,
		RecipientName:  t.FullName,
		EventID:        ev.ID,
		EventName:      ev.Name,
		EventLocation:  ev.Location,
		EventStartsAt:  ev.StartsAt,
		TicketID:       t.ID,
		TicketTypeName: tt.Name,
		CreatedAt:      now,
	}
}
