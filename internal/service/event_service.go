package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// Options tunes the engine.  Zero values fall back to defaults.
type Options struct {
	ReservationTTL         time.Duration
	MaxTicketsPerOrganizer int
	CodeAttempts           int
}

func (o Options) withDefaults() Options {
	if o.ReservationTTL <= 0 {
		o.ReservationTTL = 10 * time.Minute
	}
	if o.CodeAttempts <= 0 {
		o.CodeAttempts = 64
	}
	return o
}

// TicketTypeInput is one desired ticket type.  ID 0 creates a new type;
// a known ID updates it; persisted types missing from the list are deleted.
type TicketTypeInput struct {
	ID             uint64               `json:"id"`
	Name           string               `json:"name"`
	Category       model.TicketCategory `json:"category"`
	PriceCents     uint32               `json:"price_cents"`
	MaxAvailable   int                  `json:"max_available"`
	MaxPerPurchase int                  `json:"max_per_purchase"`
	SaleEndsAt     *time.Time           `json:"sale_ends_at,omitempty"`
	ScanEndsAt     *time.Time           `json:"scan_ends_at,omitempty"`
	SellerIDs      []uint64             `json:"seller_ids,omitempty"`
}

// EventInput is the full desired state submitted by create and update.
// InviteCondition may be left empty on update.
type EventInput struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	StartsAt        time.Time             `json:"starts_at"`
	EndsAt          time.Time             `json:"ends_at"`
	Location        string                `json:"location"`
	Category        string                `json:"category"`
	InviteCondition model.InviteCondition `json:"invite_condition"`
	IsActive        bool                  `json:"is_active"`
	TicketTypes     []TicketTypeInput     `json:"ticket_types"`
	Organizers      []OrganizerInput      `json:"organizers"`
}

// EventResult is returned by create and update.
type EventResult struct {
	Event       *model.Event       `json:"event"`
	TicketTypes []model.TicketType `json:"ticket_types"`
	Organizers  *ReconcileResult   `json:"-"`
}

// TicketTypeView is a sellable type with what is left of it.
type TicketTypeView struct {
	model.TicketType
	Remaining int `json:"remaining"`
}

// EventView is the public payload of an event.
type EventView struct {
	Event       model.Event      `json:"event"`
	TicketTypes []TicketTypeView `json:"ticket_types"`
}

// EventService creates and updates events together with their ticket
// types and organizers as one unit of work.
type EventService struct {
	store      Store
	queue      NotificationQueue
	reconciler *Reconciler
	reaper     *Reaper
	clock      clock.Clock
	logger     *slog.Logger
	opts       Options
}

func NewEventService(store Store, queue NotificationQueue, clk clock.Clock, logger *slog.Logger, opts Options) *EventService {
	opts = opts.withDefaults()
	return &EventService{
		store:      store,
		queue:      queue,
		reconciler: NewReconciler(opts.MaxTicketsPerOrganizer, logger),
		reaper:     NewReaper(store, opts.ReservationTTL, clk, logger),
		clock:      clk,
		logger:     logger,
		opts:       opts,
	}
}

// Reaper exposes the service's reaper for the background scheduler.
func (s *EventService) Reaper() *Reaper { return s.reaper }

// CreateEvent inserts the event, its ticket types (plus the organizer type)
// and its organizers in one transaction.
func (s *EventService) CreateEvent(ctx context.Context, p model.Principal, in EventInput) (*EventResult, error) {
	if !p.CanManageEvents() {
		return nil, model.ErrForbidden
	}
	if !in.InviteCondition.Valid() {
		return nil, model.Invalid("invite_condition", "must be %s or %s", model.InviteTraditional, model.InviteInvitation)
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if err := s.reconciler.Validate(in.InviteCondition, in.Organizers); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var res *EventResult
	err := s.store.WithTx(ctx, func(tx Tx) error {
		ev := &model.Event{
			Slug:            newSlug(in.Name),
			InviteCondition: in.InviteCondition,
			CreatedAt:       now,
		}
		applyEventFields(ev, in)
		ev.UpdatedAt = now
		if err := tx.InsertEvent(ctx, ev); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		var err error
		res, err = s.apply(ctx, tx, ev, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event created",
		slog.Uint64("event_id", res.Event.ID),
		slog.String("slug", res.Event.Slug),
		slog.Uint64("by", p.UserID),
	)
	s.dispatch(ctx, res.Organizers.Notifications)
	return res, nil
}

// UpdateEvent converges an existing event to the desired state.  The event
// row is locked first so concurrent edits of one event serialize.
func (s *EventService) UpdateEvent(ctx context.Context, p model.Principal, eventID uint64, in EventInput) (*EventResult, error) {
	if !p.CanManageEvents() {
		return nil, model.ErrForbidden
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var res *EventResult
	err := s.store.WithTx(ctx, func(tx Tx) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsDeleted {
			return model.ErrEventNotFound
		}
		if in.InviteCondition != "" && in.InviteCondition != ev.InviteCondition {
			return model.ErrInviteConditionImmutable
		}
		if ev.InviteCondition == model.InviteInvitation && len(in.Organizers) == 0 {
			return model.ErrEmptyOrganizerList
		}
		if err := s.reconciler.Validate(ev.InviteCondition, in.Organizers); err != nil {
			return err
		}

		if eventFieldsChanged(ev, in) {
			applyEventFields(ev, in)
			ev.UpdatedAt = now
			if err := tx.UpdateEvent(ctx, ev); err != nil {
				return fmt.Errorf("update event: %w", err)
			}
		}
		res, err = s.apply(ctx, tx, ev, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Organizers.Changed() {
		s.logger.InfoContext(ctx, "event updated",
			slog.Uint64("event_id", eventID),
			slog.Uint64("by", p.UserID),
		)
	}
	s.dispatch(ctx, res.Organizers.Notifications)
	return res, nil
}

// apply runs ticket type reconciliation and then the organizer reconciler.
// The organizer type has to exist before personal passes reference it.
func (s *EventService) apply(ctx context.Context, tx Tx, ev *model.Event, in EventInput, now time.Time) (*EventResult, error) {
	types, orgType, err := s.reconcileTicketTypes(ctx, tx, ev, in.TicketTypes, now)
	if err != nil {
		return nil, err
	}
	codes, err := NewCodeGenerator(ctx, tx, ev.ID, s.opts.CodeAttempts)
	if err != nil {
		return nil, err
	}
	rec, err := s.reconciler.Reconcile(ctx, tx, ev, orgType, in.Organizers, codes, now)
	if err != nil {
		return nil, err
	}
	return &EventResult{Event: ev, TicketTypes: types, Organizers: rec}, nil
}

// reconcileTicketTypes deletes, updates and inserts client ticket types and
// makes sure the organizer type exists.  Capacity already emitted or held
// is never cut.
func (s *EventService) reconcileTicketTypes(ctx context.Context, tx Tx, ev *model.Event, desired []TicketTypeInput, now time.Time) ([]model.TicketType, *model.TicketType, error) {
	current, err := tx.ListTicketTypes(ctx, ev.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list ticket types: %w", err)
	}
	heldSince := now.Add(-s.opts.ReservationTTL)

	var orgType *model.TicketType
	byID := make(map[uint64]model.TicketType, len(current))
	for _, t := range current {
		if t.IsOrganizerType() {
			orgType = &t
			continue
		}
		byID[t.ID] = t
	}

	want := make(map[uint64]struct{}, len(desired))
	for i, d := range desired {
		if d.ID == 0 {
			continue
		}
		if orgType != nil && d.ID == orgType.ID {
			return nil, nil, fmt.Errorf("ticket_types[%d]: %w", i, model.ErrReservedTicketTypeName)
		}
		if _, ok := byID[d.ID]; !ok {
			return nil, nil, model.Invalid(fmt.Sprintf("ticket_types[%d].id", i), "ticket type %d does not belong to event %d", d.ID, ev.ID)
		}
		want[d.ID] = struct{}{}
	}

	for _, t := range current {
		if t.IsOrganizerType() {
			continue
		}
		if _, ok := want[t.ID]; ok {
			continue
		}
		usage, err := tx.TicketTypeUsage(ctx, t.ID, heldSince)
		if err != nil {
			return nil, nil, fmt.Errorf("usage of ticket type %d: %w", t.ID, err)
		}
		if usage.Consumed() > 0 {
			return nil, nil, fmt.Errorf("%w: %q has %d emitted and %d held", model.ErrTicketTypeInUse, t.Name, usage.Emitted, usage.Held)
		}
		if err := tx.DeleteTicketType(ctx, t.ID); err != nil {
			return nil, nil, fmt.Errorf("delete ticket type %d: %w", t.ID, err)
		}
	}

	out := make([]model.TicketType, 0, len(desired)+1)
	for _, d := range desired {
		if d.ID == 0 {
			t := model.TicketType{EventID: ev.ID, CreatedAt: now}
			applyTicketTypeFields(&t, d)
			if err := tx.InsertTicketType(ctx, &t); err != nil {
				return nil, nil, fmt.Errorf("insert ticket type %q: %w", d.Name, err)
			}
			out = append(out, t)
			continue
		}
		t := byID[d.ID]
		if !ticketTypeChanged(t, d) {
			out = append(out, t)
			continue
		}
		if d.MaxAvailable != t.MaxAvailable {
			usage, err := tx.TicketTypeUsage(ctx, t.ID, heldSince)
			if err != nil {
				return nil, nil, fmt.Errorf("usage of ticket type %d: %w", t.ID, err)
			}
			if _, err := ledger.ValidateResizeOf(fmt.Sprintf("ticket type %q", t.Name), t.MaxAvailable, d.MaxAvailable, usage.Consumed()); err != nil {
				return nil, nil, err
			}
		}
		applyTicketTypeFields(&t, d)
		if err := tx.UpdateTicketType(ctx, &t); err != nil {
			return nil, nil, fmt.Errorf("update ticket type %d: %w", t.ID, err)
		}
		out = append(out, t)
	}

	if orgType == nil {
		orgType = &model.TicketType{
			EventID:        ev.ID,
			Name:           model.OrganizerTicketTypeName,
			Category:       model.CategoryFree,
			MaxPerPurchase: 1,
			CreatedAt:      now,
		}
		if err := tx.InsertTicketType(ctx, orgType); err != nil {
			return nil, nil, fmt.Errorf("insert organizer ticket type: %w", err)
		}
	}
	return out, orgType, nil
}

// GetEventBySlug reaps abandoned reservations of the event and then returns
// its public payload.  A failed reap is logged and the read continues.
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*EventView, error) {
	var ev *model.Event
	err := s.store.WithTx(ctx, func(tx Tx) error {
		var err error
		ev, err = tx.GetEventBySlug(ctx, slug)
		return err
	})
	if err != nil {
		return nil, err
	}
	if ev.IsDeleted {
		return nil, model.ErrEventNotFound
	}
	if _, err := s.reaper.ReapEvent(ctx, ev.ID); err != nil {
		s.logger.WarnContext(ctx, "reap on read failed", slog.Uint64("event_id", ev.ID), slog.Any("error", err))
	}

	view := &EventView{Event: *ev}
	heldSince := s.clock.Now().Add(-s.opts.ReservationTTL)
	err = s.store.WithTx(ctx, func(tx Tx) error {
		types, err := tx.ListTicketTypes(ctx, ev.ID)
		if err != nil {
			return err
		}
		for _, t := range types {
			if t.IsOrganizerType() {
				continue
			}
			usage, err := tx.TicketTypeUsage(ctx, t.ID, heldSince)
			if err != nil {
				return err
			}
			view.TicketTypes = append(view.TicketTypes, TicketTypeView{
				TicketType: t,
				Remaining:  ledger.Remaining(t.MaxAvailable, usage.Emitted, usage.Held),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListEvents returns active, non-deleted events.
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var out []model.Event
	err := s.store.WithTx(ctx, func(tx Tx) error {
		var err error
		out, err = tx.ListEvents(ctx, limit, offset)
		return err
	})
	return out, err
}

// dispatch enqueues notifications after commit.  Delivery problems never
// undo the ledger change they describe.
func (s *EventService) dispatch(ctx context.Context, ns []model.Notification) {
	dispatch(ctx, s.queue, s.logger, ns)
}

func dispatch(ctx context.Context, q NotificationQueue, logger *slog.Logger, ns []model.Notification) {
	if q == nil || len(ns) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, n := range ns {
		if err := q.Enqueue(ctx, n); err != nil {
			logger.ErrorContext(ctx, "enqueue notification failed",
				slog.String("notification_id", n.ID),
				slog.String("kind", string(n.Kind)),
				slog.Uint64("ticket_id", n.TicketID),
				slog.Any("error", err),
			)
		}
	}
}

func (s *EventService) validate(in EventInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return model.Invalid("name", "is required")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return model.Invalid("starts_at", "schedule window is required")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return model.Invalid("ends_at", "must be after starts_at")
	}
	if in.InviteCondition != "" && !in.InviteCondition.Valid() {
		return model.ErrInvalidInviteCondition
	}

	organizers := make(map[uint64]struct{}, len(in.Organizers))
	for _, o := range in.Organizers {
		organizers[o.OrganizerID] = struct{}{}
	}
	names := make(map[string]struct{}, len(in.TicketTypes))
	for i, t := range in.TicketTypes {
		field := fmt.Sprintf("ticket_types[%d]", i)
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return model.Invalid(field+".name", "is required")
		}
		if strings.EqualFold(name, model.OrganizerTicketTypeName) {
			return fmt.Errorf("%s: %w", field, model.ErrReservedTicketTypeName)
		}
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			return model.Invalid(field+".name", "%q listed twice", name)
		}
		names[key] = struct{}{}
		switch t.Category {
		case model.CategoryFree:
			if t.PriceCents != 0 {
				return model.Invalid(field+".price_cents", "must be 0 for FREE tickets")
			}
		case model.CategoryPaid:
			if t.PriceCents == 0 {
				return model.Invalid(field+".price_cents", "must be positive for PAID tickets")
			}
		default:
			return model.Invalid(field+".category", "must be FREE or PAID")
		}
		if t.MaxAvailable < 0 {
			return model.Invalid(field+".max_available", "must not be negative")
		}
		if t.MaxPerPurchase < 1 {
			return model.Invalid(field+".max_per_purchase", "must be at least 1")
		}
		for _, id := range t.SellerIDs {
			if _, ok := organizers[id]; !ok {
				return model.Invalid(field+".seller_ids", "organizer %d is not part of the event", id)
			}
		}
	}
	return nil
}

func applyEventFields(ev *model.Event, in EventInput) {
	ev.Name = strings.TrimSpace(in.Name)
	ev.Description = in.Description
	ev.StartsAt = in.StartsAt.UTC()
	ev.EndsAt = in.EndsAt.UTC()
	ev.Location = in.Location
	ev.Category = in.Category
	ev.IsActive = in.IsActive
}

func eventFieldsChanged(ev *model.Event, in EventInput) bool {
	return ev.Name != strings.TrimSpace(in.Name) ||
		ev.Description != in.Description ||
		!ev.StartsAt.Equal(in.StartsAt) ||
		!ev.EndsAt.Equal(in.EndsAt) ||
		ev.Location != in.Location ||
		ev.Category != in.Category ||
		ev.IsActive != in.IsActive
}

func applyTicketTypeFields(t *model.TicketType, d TicketTypeInput) {
	t.Name = strings.TrimSpace(d.Name)
	t.Category = d.Category
	t.PriceCents = d.PriceCents
	t.MaxAvailable = d.MaxAvailable
	t.MaxPerPurchase = d.MaxPerPurchase
	t.SaleEndsAt = d.SaleEndsAt
	t.ScanEndsAt = d.ScanEndsAt
	t.SellerIDs = slices.Clone(d.SellerIDs)
}

func ticketTypeChanged(t model.TicketType, d TicketTypeInput) bool {
	return t.Name != strings.TrimSpace(d.Name) ||
		t.Category != d.Category ||
		t.PriceCents != d.PriceCents ||
		t.MaxAvailable != d.MaxAvailable ||
		t.MaxPerPurchase != d.MaxPerPurchase ||
		!timesEqual(t.SaleEndsAt, d.SaleEndsAt) ||
		!timesEqual(t.ScanEndsAt, d.ScanEndsAt) ||
		!slices.Equal(t.SellerIDs, d.SellerIDs)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// newSlug builds "<name>-<8 hex>" so two events with one name never
// collide.
func newSlug(name string) string {
	base := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if len(base) > 48 {
		base = strings.TrimRight(base[:48], "-")
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// IsCapacityError reports whether err should be shown to the user as a
// capacity problem.
func IsCapacityError(err error) bool {
	return errors.Is(err, ledger.ErrCapacityBelowConsumed) ||
		errors.Is(err, model.ErrInsufficientUnredeemed) ||
		errors.Is(err, model.ErrTicketTypeInUse) ||
		errors.Is(err, model.ErrSoldOut)
}
