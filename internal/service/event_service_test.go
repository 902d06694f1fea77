package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/ledger"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service/mocks"
)

func TestCreateEvent_MaterializesOrganizerType(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteTraditional, seller(1, 10), seller(2, 5)))

	assert.True(t, strings.HasPrefix(res.Event.Slug, "summer-party-"), res.Event.Slug)
	require.Len(t, res.TicketTypes, 2)
	for _, tt := range res.TicketTypes {
		assert.False(t, tt.IsOrganizerType())
	}
	ot := f.store.snapshot().organizerType(res.Event.ID)
	require.NotNil(t, ot)
	assert.Equal(t, model.CategoryFree, ot.Category)
	assert.Equal(t, 2, ot.MaxAvailable)
}

func TestCreateEvent_RequiresManagerRole(t *testing.T) {
	f := newFixture(t)
	for _, role := range []string{model.RoleOrganizer, model.RoleTicketing, ""} {
		_, err := f.events.CreateEvent(context.Background(), model.Principal{UserID: 1, Role: role}, eventInput(model.InviteTraditional))
		assert.ErrorIs(t, err, model.ErrForbidden, role)
	}
	chief := model.Principal{UserID: 7, Role: model.RoleChiefOrganizer}
	_, err := f.events.CreateEvent(context.Background(), chief, eventInput(model.InviteTraditional))
	assert.NoError(t, err)
}

func TestCreateEvent_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *EventInput)
		wantErr error
	}{
		{"blank name", func(in *EventInput) { in.Name = "  " }, model.ErrValidation},
		{"ends before start", func(in *EventInput) { in.EndsAt = in.StartsAt.Add(-time.Hour) }, model.ErrValidation},
		{"unknown condition", func(in *EventInput) { in.InviteCondition = "LOTTERY" }, model.ErrValidation},
		{"reserved type name", func(in *EventInput) { in.TicketTypes[1].Name = "organizer" }, model.ErrReservedTicketTypeName},
		{"duplicate type name", func(in *EventInput) { in.TicketTypes[1].Name = "general" }, model.ErrValidation},
		{"paid without price", func(in *EventInput) { in.TicketTypes[0].PriceCents = 0 }, model.ErrValidation},
		{"free with price", func(in *EventInput) { in.TicketTypes[1].PriceCents = 500 }, model.ErrValidation},
		{"negative capacity", func(in *EventInput) { in.TicketTypes[0].MaxAvailable = -1 }, model.ErrValidation},
		{"zero per purchase", func(in *EventInput) { in.TicketTypes[0].MaxPerPurchase = 0 }, model.ErrValidation},
		{"seller not organizer", func(in *EventInput) { in.TicketTypes[0].SellerIDs = []uint64{4} }, model.ErrValidation},
		{"amount on traditional", func(in *EventInput) { in.Organizers = []OrganizerInput{invitee(1, 2)} }, model.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := eventInput(model.InviteTraditional, seller(1, 10))
			tc.mutate(&in)
			_, err := f.events.CreateEvent(context.Background(), admin, in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, f.store.writeCount())
		})
	}
}

func TestCreateEvent_AllowanceAboveConfiguredMaximum(t *testing.T) {
	f := newFixtureWithOptions(t, Options{MaxTicketsPerOrganizer: 10})
	_, err := f.events.CreateEvent(context.Background(), admin, eventInput(model.InviteInvitation, invitee(1, 11)))
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "organizers[0].ticket_amount", verr.Field)

	f.create(t, eventInput(model.InviteInvitation, invitee(1, 10)))
}

func TestCreateEvent_EnqueueFailureKeepsCommit(t *testing.T) {
	store := newMemStore()
	store.addUser(model.User{ID: 1, Email: "org1@example.com", Role: model.RoleOrganizer})
	store.addUser(model.User{ID: 2, Email: "org2@example.com", Role: model.RoleOrganizer})
	q := mocks.NewMockNotificationQueue(t)
	q.EXPECT().Enqueue(mock.Anything, mock.Anything).Return(errors.New("broker down")).Times(2)

	svc := NewEventService(store, q, clock.Fake(t0), newTestLogger(t), Options{})
	res, err := svc.CreateEvent(context.Background(), admin, eventInput(model.InviteInvitation, invitee(1, 2), invitee(2, 2)))
	require.NoError(t, err)
	requireInvariants(t, store, res.Event.ID)
	assert.Len(t, store.snapshot().eventOrganizers(res.Event.ID), 2)
}

func TestUpdateEvent_InviteConditionImmutable(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteTraditional, seller(1, 10)))

	in := nextInput(res, invitee(1, 3))
	in.InviteCondition = model.InviteInvitation
	_, err := f.events.UpdateEvent(context.Background(), admin, res.Event.ID, in)
	assert.ErrorIs(t, err, model.ErrInviteConditionImmutable)

	in = nextInput(res, seller(1, 10))
	in.InviteCondition = model.InviteTraditional
	_, err = f.events.UpdateEvent(context.Background(), admin, res.Event.ID, in)
	assert.NoError(t, err)
}

func TestUpdateEvent_InvitationNeedsOrganizers(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteInvitation, invitee(1, 3)))
	writes := f.store.writeCount()

	_, err := f.events.UpdateEvent(context.Background(), admin, res.Event.ID, nextInput(res))
	assert.ErrorIs(t, err, model.ErrEmptyOrganizerList)
	assert.Equal(t, writes, f.store.writeCount())
}

func TestUpdateEvent_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteTraditional))
	_, err := f.events.UpdateEvent(context.Background(), admin, res.Event.ID+1000, nextInput(res))
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}

func TestUpdateEvent_EditsEventFields(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteTraditional))
	f.clock.Advance(time.Hour)

	in := nextInput(res)
	in.Name = "Winter Party"
	in.Location = "Warehouse"
	out, err := f.events.UpdateEvent(context.Background(), admin, res.Event.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Winter Party", out.Event.Name)
	assert.Equal(t, res.Event.Slug, out.Event.Slug)
	assert.Equal(t, t0.Add(time.Hour), f.store.snapshot().events[res.Event.ID].UpdatedAt)
}

func TestUpdateEvent_TicketTypeCapacityNeverBelowConsumed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteTraditional))
	general := res.TicketTypes[0]
	buy(t, f, res.Event.ID, general.ID, 3)

	in := nextInput(res)
	in.TicketTypes[0].MaxAvailable = 2
	_, err := f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	assert.ErrorIs(t, err, ledger.ErrCapacityBelowConsumed)
	assert.True(t, IsCapacityError(err))

	in.TicketTypes[0].MaxAvailable = 3
	_, err = f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	require.NoError(t, err)
	requireInvariants(t, f.store, res.Event.ID)
}

func TestUpdateEvent_DeleteTicketTypeInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteTraditional))
	guest := res.TicketTypes[1]
	_, err := f.checkout.Reserve(ctx, res.Event.ID, ReserveInput{
		BuyerEmail: "buyer@example.com",
		Lines:      []ReserveLine{{TicketTypeID: guest.ID, Amount: 1}},
	})
	require.NoError(t, err)

	in := nextInput(res)
	in.TicketTypes = in.TicketTypes[:1]
	_, err = f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	assert.ErrorIs(t, err, model.ErrTicketTypeInUse)

	// once the hold expires the type can go
	f.clock.Advance(11 * time.Minute)
	out, err := f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	require.NoError(t, err)
	assert.Len(t, out.TicketTypes, 1)
	assert.NotContains(t, f.store.snapshot().types, guest.ID)
}

func TestUpdateEvent_RejectsForeignOrOrganizerTypeID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteTraditional))
	other := f.create(t, eventInput(model.InviteTraditional))

	in := nextInput(res)
	in.TicketTypes[0].ID = other.TicketTypes[0].ID
	_, err := f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	assert.ErrorIs(t, err, model.ErrValidation)

	in = nextInput(res)
	in.TicketTypes[0].ID = f.store.snapshot().organizerType(res.Event.ID).ID
	in.TicketTypes[0].Name = "VIP"
	_, err = f.events.UpdateEvent(ctx, admin, res.Event.ID, in)
	assert.ErrorIs(t, err, model.ErrReservedTicketTypeName)
}

func TestGetEventBySlug_ShowsRemainingAndHidesOrganizerType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteTraditional, seller(1, 0)))
	buy(t, f, res.Event.ID, res.TicketTypes[0].ID, 2)

	view, err := f.events.GetEventBySlug(ctx, res.Event.Slug)
	require.NoError(t, err)
	require.Len(t, view.TicketTypes, 2)
	assert.Equal(t, "General", view.TicketTypes[0].Name)
	assert.Equal(t, 98, view.TicketTypes[0].Remaining)
	assert.Equal(t, 20, view.TicketTypes[1].Remaining)

	_, err = f.events.GetEventBySlug(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}

func TestListEvents_Pages(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.create(t, eventInput(model.InviteTraditional))
	}
	inactive := eventInput(model.InviteTraditional)
	inactive.IsActive = false
	f.create(t, inactive)

	got, err := f.events.ListEvents(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	got, err = f.events.ListEvents(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewSlug(t *testing.T) {
	s := newSlug("  Rock & Roll Night!! ")
	assert.Regexp(t, `^rock-roll-night-[0-9a-f]{8}$`, s)
	assert.NotEqual(t, s, newSlug("  Rock & Roll Night!! "))
	assert.Regexp(t, `^[0-9a-f]{8}$`, newSlug("!!!"))
	assert.LessOrEqual(t, len(newSlug(strings.Repeat("a", 80))), 48+9)
}

// buy reserves and confirms qty tickets of one type.
func buy(t *testing.T, f *fixture, eventID, ticketTypeID uint64, qty int) *ConfirmResult {
	t.Helper()
	ctx := context.Background()
	g, err := f.checkout.Reserve(ctx, eventID, ReserveInput{
		BuyerEmail: "buyer@example.com",
		Lines:      []ReserveLine{{TicketTypeID: ticketTypeID, Amount: qty}},
	})
	require.NoError(t, err)
	attendees := make([]AttendeeLine, qty)
	for i := range attendees {
		attendees[i] = AttendeeLine{TicketTypeID: ticketTypeID, Attendee: model.Attendee{FullName: "Buyer", Mail: "buyer@example.com"}}
	}
	ref := "pay_123"
	res, err := f.checkout.Confirm(ctx, g.ID, ConfirmInput{Attendees: attendees, PaymentRef: &ref})
	require.NoError(t, err)
	return res
}
