package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service/mocks"
)

var (
	admin     = model.Principal{UserID: 100, Role: model.RoleAdmin}
	doorStaff = model.Principal{UserID: 101, Role: model.RoleTicketing}
	t0        = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
)

func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	store    *memStore
	queue    *mocks.MockNotificationQueue
	clock    *clock.FakeClock
	events   *EventService
	gateway  *RedemptionGateway
	checkout *CheckoutService

	mu   sync.Mutex
	sent []model.Notification
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithOptions(t, Options{MaxTicketsPerOrganizer: 50})
}

func newFixtureWithOptions(t *testing.T, opts Options) *fixture {
	t.Helper()
	store := newMemStore()
	for id := uint64(1); id <= 6; id++ {
		store.addUser(model.User{
			ID:       id,
			Email:    fmt.Sprintf("org%d@example.com", id),
			Role:     model.RoleOrganizer,
			FullName: fmt.Sprintf("Organizer %d", id),
			DNI:      fmt.Sprintf("3000000%d", id),
		})
	}
	store.addUser(model.User{ID: 100, Email: "admin@example.com", Role: model.RoleAdmin})
	store.addUser(model.User{ID: 101, Email: "door@example.com", Role: model.RoleTicketing})

	f := &fixture{
		store: store,
		queue: mocks.NewMockNotificationQueue(t),
		clock: clock.Fake(t0),
	}
	f.queue.EXPECT().Enqueue(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, n model.Notification) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.sent = append(f.sent, n)
		return nil
	}).Maybe()

	log := newTestLogger(t)
	f.events = NewEventService(store, f.queue, f.clock, log, opts)
	f.gateway = NewRedemptionGateway(store, f.queue, f.clock, log, opts.ReservationTTL)
	f.checkout = NewCheckoutService(store, f.queue, f.clock, log, opts.ReservationTTL)
	return f
}

func (f *fixture) notifications() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Notification(nil), f.sent...)
}

func amount(n int) *int { return &n }

func invitee(id uint64, n int) OrganizerInput {
	return OrganizerInput{OrganizerID: id, TicketAmount: amount(n)}
}

func seller(id uint64, pct int) OrganizerInput {
	return OrganizerInput{OrganizerID: id, DiscountPercentage: amount(pct)}
}

func eventInput(cond model.InviteCondition, orgs ...OrganizerInput) EventInput {
	return EventInput{
		Name:            "Summer Party",
		Description:     "rooftop",
		StartsAt:        t0.Add(72 * time.Hour),
		EndsAt:          t0.Add(78 * time.Hour),
		Location:        "Club Central",
		Category:        "party",
		InviteCondition: cond,
		IsActive:        true,
		TicketTypes: []TicketTypeInput{
			{Name: "General", Category: model.CategoryPaid, PriceCents: 2000, MaxAvailable: 100, MaxPerPurchase: 4},
			{Name: "Guest", Category: model.CategoryFree, MaxAvailable: 20, MaxPerPurchase: 2},
		},
		Organizers: orgs,
	}
}

// nextInput rebuilds the desired state from a result so an update can keep
// everything and change only what the test touches.
func nextInput(res *EventResult, orgs ...OrganizerInput) EventInput {
	ev := res.Event
	in := EventInput{
		Name:        ev.Name,
		Description: ev.Description,
		StartsAt:    ev.StartsAt,
		EndsAt:      ev.EndsAt,
		Location:    ev.Location,
		Category:    ev.Category,
		IsActive:    ev.IsActive,
		Organizers:  orgs,
	}
	for _, t := range res.TicketTypes {
		in.TicketTypes = append(in.TicketTypes, TicketTypeInput{
			ID:             t.ID,
			Name:           t.Name,
			Category:       t.Category,
			PriceCents:     t.PriceCents,
			MaxAvailable:   t.MaxAvailable,
			MaxPerPurchase: t.MaxPerPurchase,
			SaleEndsAt:     t.SaleEndsAt,
			ScanEndsAt:     t.ScanEndsAt,
			SellerIDs:      t.SellerIDs,
		})
	}
	return in
}

func (f *fixture) create(t *testing.T, in EventInput) *EventResult {
	t.Helper()
	res, err := f.events.CreateEvent(context.Background(), admin, in)
	require.NoError(t, err)
	requireInvariants(t, f.store, res.Event.ID)
	return res
}

// unredeemedCodes returns the organizer's unredeemed codes ordered by id.
func (f *fixture) unredeemedCodes(eventID, organizerID uint64) []model.OrganizerCode {
	var out []model.OrganizerCode
	for _, c := range f.store.snapshot().codesOf(eventID, organizerID) {
		if !c.Redeemed() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// redeemNewest redeems the organizer's n newest codes through the gateway.
func (f *fixture) redeemNewest(t *testing.T, res *EventResult, organizerID uint64, n int) []model.EmittedTicket {
	t.Helper()
	codes := f.unredeemedCodes(res.Event.ID, organizerID)
	require.GreaterOrEqual(t, len(codes), n)
	var out []model.EmittedTicket
	for i := 0; i < n; i++ {
		c := codes[len(codes)-1-i]
		tk, err := f.gateway.RedeemInvitation(context.Background(), res.Event.ID, c.Code, res.TicketTypes[0].ID, model.Attendee{
			FullName: fmt.Sprintf("Guest %d", i),
			Mail:     fmt.Sprintf("guest%d@example.com", i),
		})
		require.NoError(t, err)
		out = append(out, *tk)
	}
	return out
}

func groupAmount(g *model.TicketGroup) int {
	if g == nil {
		return 0
	}
	return g.AmountTickets
}
