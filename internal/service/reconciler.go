package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// OrganizerInput is one entry of the desired organizer list.  TRADITIONAL
// events read DiscountPercentage, INVITATION events read TicketAmount.
type OrganizerInput struct {
	OrganizerID        uint64 `json:"organizer_id"`
	DiscountPercentage *int   `json:"discount_percentage,omitempty"`
	TicketAmount       *int   `json:"ticket_amount,omitempty"`
}

func (o OrganizerInput) discount() int {
	if o.DiscountPercentage == nil {
		return 0
	}
	return *o.DiscountPercentage
}

func (o OrganizerInput) allowance() int {
	if o.TicketAmount == nil {
		return 0
	}
	return *o.TicketAmount
}

// ReconcileResult lists what a reconciliation changed.  Notifications are
// only delivered once the surrounding transaction commits.
type ReconcileResult struct {
	Added         []uint64
	Removed       []uint64
	Updated       []uint64
	Notifications []model.Notification
}

// Changed reports whether any organizer row was touched.
func (r *ReconcileResult) Changed() bool {
	return len(r.Added)+len(r.Removed)+len(r.Updated) > 0
}

// Reconciler converges an event's persisted organizers to a desired list.
type Reconciler struct {
	maxPerOrganizer int
	logger          *slog.Logger
}

// NewReconciler returns a Reconciler that caps INVITATION allowances at
// maxPerOrganizer (0 disables the cap).
func NewReconciler(maxPerOrganizer int, logger *slog.Logger) *Reconciler {
	return &Reconciler{maxPerOrganizer: maxPerOrganizer, logger: logger}
}

// Validate checks the desired list against the event's mode without
// touching the store.
func (r *Reconciler) Validate(cond model.InviteCondition, desired []OrganizerInput) error {
	seen := make(map[uint64]struct{}, len(desired))
	for i, o := range desired {
		field := fmt.Sprintf("organizers[%d]", i)
		if o.OrganizerID == 0 {
			return model.Invalid(field+".organizer_id", "is required")
		}
		if _, dup := seen[o.OrganizerID]; dup {
			return model.Invalid(field+".organizer_id", "organizer %d listed twice", o.OrganizerID)
		}
		seen[o.OrganizerID] = struct{}{}

		switch cond {
		case model.InviteTraditional:
			if o.TicketAmount != nil {
				return model.Invalid(field+".ticket_amount", "not allowed for %s events", cond)
			}
			if d := o.discount(); d < 0 || d > 100 {
				return model.Invalid(field+".discount_percentage", "must be between 0 and 100")
			}
		case model.InviteInvitation:
			if o.DiscountPercentage != nil {
				return model.Invalid(field+".discount_percentage", "not allowed for %s events", cond)
			}
			if o.TicketAmount == nil {
				return model.Invalid(field+".ticket_amount", "is required")
			}
			if err := ledger.CheckOrganizerAllowance(*o.TicketAmount, r.maxPerOrganizer); err != nil {
				return model.Invalid(field+".ticket_amount", "%v", err)
			}
		default:
			return model.ErrInvalidInviteCondition
		}
	}
	return nil
}

// Reconcile applies the add/remove/resize steps for ev inside tx, then sets
// the organizer ticket type's capacity to the final organizer count.
func (r *Reconciler) Reconcile(ctx context.Context, tx Tx, ev *model.Event, organizerType *model.TicketType, desired []OrganizerInput, codes *CodeGenerator, now time.Time) (*ReconcileResult, error) {
	if organizerType == nil {
		return nil, model.ErrOrganizerTicketTypeMissing
	}
	current, err := tx.ListEventOrganizers(ctx, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}

	byID := make(map[uint64]model.EventOrganizer, len(current))
	for _, o := range current {
		byID[o.OrganizerID] = o
	}
	want := make(map[uint64]OrganizerInput, len(desired))
	for _, o := range desired {
		want[o.OrganizerID] = o
	}

	var added, kept []OrganizerInput
	var removed []model.EventOrganizer
	for _, o := range current {
		if _, ok := want[o.OrganizerID]; !ok {
			removed = append(removed, o)
		}
	}
	for _, o := range desired {
		if _, ok := byID[o.OrganizerID]; ok {
			kept = append(kept, o)
		} else {
			added = append(added, o)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i].OrganizerID < added[j].OrganizerID })
	sort.Slice(kept, func(i, j int) bool { return kept[i].OrganizerID < kept[j].OrganizerID })

	res := &ReconcileResult{}

	for _, o := range removed {
		if err := r.remove(ctx, tx, ev, o, codes, now); err != nil {
			return nil, fmt.Errorf("remove organizer %d: %w", o.OrganizerID, err)
		}
		res.Removed = append(res.Removed, o.OrganizerID)
	}

	for _, o := range added {
		n, err := r.add(ctx, tx, ev, organizerType, o, codes, now)
		if err != nil {
			return nil, fmt.Errorf("add organizer %d: %w", o.OrganizerID, err)
		}
		res.Added = append(res.Added, o.OrganizerID)
		res.Notifications = append(res.Notifications, n)
	}

	for _, o := range kept {
		changed, err := r.keep(ctx, tx, ev, byID[o.OrganizerID], o, codes, now)
		if err != nil {
			return nil, err
		}
		if changed {
			res.Updated = append(res.Updated, o.OrganizerID)
		}
	}

	if organizerType.MaxAvailable != len(desired) {
		organizerType.MaxAvailable = len(desired)
		if err := tx.UpdateTicketType(ctx, organizerType); err != nil {
			return nil, fmt.Errorf("sync organizer ticket type: %w", err)
		}
	}

	if res.Changed() {
		r.logger.InfoContext(ctx, "organizers reconciled",
			slog.Uint64("event_id", ev.ID),
			slog.Int("added", len(res.Added)),
			slog.Int("removed", len(res.Removed)),
			slog.Int("updated", len(res.Updated)),
		)
	}
	return res, nil
}

// remove revokes unused capacity and the personal pass.  Redeemed codes and
// the tickets they produced stay, and so does a pass that was already
// scanned at the door.
func (r *Reconciler) remove(ctx context.Context, tx Tx, ev *model.Event, o model.EventOrganizer, codes *CodeGenerator, now time.Time) error {
	if ev.InviteCondition == model.InviteInvitation {
		pool := NewCodePool(tx, ev.ID, o.OrganizerID, codes, now)
		if _, err := pool.RevokeAll(ctx); err != nil {
			return err
		}
	}
	pass, err := tx.FindPersonalTicket(ctx, ev.ID, o.OrganizerID)
	switch {
	case errors.Is(err, model.ErrTicketNotFound):
	case err != nil:
		return fmt.Errorf("find personal ticket: %w", err)
	case !pass.Scanned:
		if err := tx.DeleteTicket(ctx, pass.ID); err != nil {
			return fmt.Errorf("delete personal ticket: %w", err)
		}
		if err := tx.AdjustGroupAmount(ctx, pass.TicketGroupID, -1); err != nil {
			return fmt.Errorf("shrink organizer group: %w", err)
		}
	}
	return tx.DeleteEventOrganizer(ctx, ev.ID, o.OrganizerID)
}

func (r *Reconciler) add(ctx context.Context, tx Tx, ev *model.Event, organizerType *model.TicketType, in OrganizerInput, codes *CodeGenerator, now time.Time) (model.Notification, error) {
	user, err := tx.GetUser(ctx, in.OrganizerID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Notification{}, fmt.Errorf("%w: user %d", model.ErrOrganizerNotFound, in.OrganizerID)
	}
	if err != nil {
		return model.Notification{}, err
	}
	if !user.IsOrganizer() {
		return model.Notification{}, model.Invalid("organizer_id", "user %d is not an organizer", in.OrganizerID)
	}

	code, err := codes.Next()
	if err != nil {
		return model.Notification{}, err
	}
	row := &model.EventOrganizer{EventID: ev.ID, OrganizerID: in.OrganizerID, Code: code, CreatedAt: now}
	if ev.InviteCondition == model.InviteInvitation {
		amount := in.allowance()
		row.TicketAmount = &amount
	} else {
		d := in.discount()
		row.DiscountPercentage = &d
	}
	if err := tx.InsertEventOrganizer(ctx, row); err != nil {
		return model.Notification{}, fmt.Errorf("insert event organizer: %w", err)
	}

	pass, err := r.personalPass(ctx, tx, ev, organizerType, user, now)
	if err != nil {
		return model.Notification{}, err
	}

	n := model.Notification{
		ID:             uuid.NewString(),
		Kind:           model.NotifyOrganizerPass,
		Recipient:      user.Email,
		RecipientName:  user.FullName,
		EventID:        ev.ID,
		EventName:      ev.Name,
		EventLocation:  ev.Location,
		EventStartsAt:  ev.StartsAt,
		TicketID:       pass.ID,
		TicketTypeName: organizerType.Name,
		CreatedAt:      now,
	}
	if ev.InviteCondition == model.InviteInvitation {
		// Redeemed codes left from an earlier membership still count.
		stats, err := tx.CountCodes(ctx, ev.ID, in.OrganizerID)
		if err != nil {
			return model.Notification{}, fmt.Errorf("count codes of organizer %d: %w", in.OrganizerID, err)
		}
		granted, err := r.resizeCodes(ctx, tx, ev.ID, in.OrganizerID, stats, in.allowance(), codes, now)
		if err != nil {
			return model.Notification{}, err
		}
		n.InviteCodes = granted
	} else {
		n.DiscountCode = code
		n.DiscountPct = in.discount()
	}
	return n, nil
}

// personalPass emits the organizer's entry ticket into the event's
// organizer group.  A scanned pass kept from an earlier removal is reused
// so the organizer never holds two.
func (r *Reconciler) personalPass(ctx context.Context, tx Tx, ev *model.Event, organizerType *model.TicketType, user *model.User, now time.Time) (*model.EmittedTicket, error) {
	existing, err := tx.FindPersonalTicket(ctx, ev.ID, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrTicketNotFound) {
		return nil, fmt.Errorf("find personal ticket: %w", err)
	}

	group, err := tx.FindOrganizerGroup(ctx, ev.ID)
	if errors.Is(err, model.ErrTicketGroupNotFound) {
		group = &model.TicketGroup{
			EventID:          ev.ID,
			Status:           model.GroupFree,
			IsOrganizerGroup: true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		err = tx.InsertTicketGroup(ctx, group)
	}
	if err != nil {
		return nil, fmt.Errorf("organizer group: %w", err)
	}

	orgID := user.ID
	pass := &model.EmittedTicket{
		Attendee: model.Attendee{
			FullName: user.FullName,
			DNI:      user.DNI,
			Mail:     user.Email,
			Phone:    user.Phone,
		},
		TicketTypeID:  organizerType.ID,
		TicketGroupID: group.ID,
		EventID:       ev.ID,
		OrganizerID:   &orgID,
		CreatedAt:     now,
	}
	if err := tx.InsertTicket(ctx, pass); err != nil {
		return nil, fmt.Errorf("emit personal ticket: %w", err)
	}
	if err := tx.AdjustGroupAmount(ctx, group.ID, 1); err != nil {
		return nil, fmt.Errorf("grow organizer group: %w", err)
	}
	return pass, nil
}

// keep applies a discount change or converges the organizer's code rows to
// the declared allowance.  Code counts are taken from the rows themselves.
func (r *Reconciler) keep(ctx context.Context, tx Tx, ev *model.Event, cur model.EventOrganizer, want OrganizerInput, codes *CodeGenerator, now time.Time) (bool, error) {
	if ev.InviteCondition == model.InviteTraditional {
		if cur.Discount() == want.discount() && cur.DiscountPercentage != nil {
			return false, nil
		}
		d := want.discount()
		cur.DiscountPercentage = &d
		cur.TicketAmount = nil
		if err := tx.UpdateEventOrganizer(ctx, &cur); err != nil {
			return false, fmt.Errorf("update organizer %d: %w", cur.OrganizerID, err)
		}
		return true, nil
	}

	stats, err := tx.CountCodes(ctx, ev.ID, cur.OrganizerID)
	if err != nil {
		return false, fmt.Errorf("count codes of organizer %d: %w", cur.OrganizerID, err)
	}
	desired := want.allowance()
	if stats.Total == desired && cur.TicketAmount != nil && cur.Allowance() == desired {
		return false, nil
	}
	if _, err := r.resizeCodes(ctx, tx, ev.ID, cur.OrganizerID, stats, desired, codes, now); err != nil {
		return false, err
	}
	if cur.Allowance() != desired || cur.TicketAmount == nil {
		cur.TicketAmount = &desired
		cur.DiscountPercentage = nil
		if err := tx.UpdateEventOrganizer(ctx, &cur); err != nil {
			return false, fmt.Errorf("update organizer %d: %w", cur.OrganizerID, err)
		}
	}
	r.logger.InfoContext(ctx, "organizer allowance resized",
		slog.Uint64("event_id", ev.ID),
		slog.Uint64("organizer_id", cur.OrganizerID),
		slog.Int("from", stats.Total),
		slog.Int("to", desired),
		slog.Int("redeemed", stats.Redeemed),
	)
	return true, nil
}

// resizeCodes moves the organizer's code rows from stats.Total to desired
// and returns any codes it created.  Redeemed rows are never removed.
func (r *Reconciler) resizeCodes(ctx context.Context, tx Tx, eventID, organizerID uint64, stats model.CodeStats, desired int, codes *CodeGenerator, now time.Time) ([]string, error) {
	delta, err := ledger.ValidateResizeOf(fmt.Sprintf("organizer %d", organizerID), stats.Total, desired, stats.Redeemed)
	if err != nil {
		return nil, err
	}
	pool := NewCodePool(tx, eventID, organizerID, codes, now)
	switch {
	case delta > 0:
		return pool.Grow(ctx, delta)
	case delta < 0:
		return nil, pool.Shrink(ctx, -delta)
	}
	return nil, nil
}
