package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestValidateInvitationCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteInvitation, invitee(3, 2)))
	codes := f.unredeemedCodes(res.Event.ID, 3)
	f.redeemNewest(t, res, 3, 1)

	got, err := f.gateway.ValidateInvitationCode(ctx, res.Event.ID, strings.ToLower(codes[0].Code))
	require.NoError(t, err)
	assert.Equal(t, InvitationCodeResult{Valid: true, OrganizerID: 3}, got)

	got, err = f.gateway.ValidateInvitationCode(ctx, res.Event.ID, codes[1].Code)
	require.NoError(t, err)
	assert.Equal(t, InvitationCodeResult{AlreadyUsed: true}, got)

	for _, bad := range []string{"", "XYZ123", "ABCDEFG", "12 34"} {
		got, err = f.gateway.ValidateInvitationCode(ctx, res.Event.ID, bad)
		require.NoError(t, err)
		assert.False(t, got.Valid, bad)
	}

	// discount codes do not open invitation events
	orgCode := f.store.snapshot().eventOrganizers(res.Event.ID)[0].Code
	oc, err := f.gateway.ValidateOrganizerCode(ctx, res.Event.ID, orgCode)
	require.NoError(t, err)
	assert.False(t, oc.Valid)

	_, err = f.gateway.ValidateInvitationCode(ctx, res.Event.ID+500, codes[0].Code)
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}

func TestRedeemInvitation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteInvitation, invitee(1, 2)))
	code := f.unredeemedCodes(res.Event.ID, 1)[0]
	group := f.store.snapshot().codeGroup(res.Event.ID, 1)
	sent := len(f.notifications())

	ticket, err := f.gateway.RedeemInvitation(ctx, res.Event.ID, code.Code, res.TicketTypes[1].ID, model.Attendee{FullName: "Lu", Mail: "lu@example.com"})
	require.NoError(t, err)
	assert.Equal(t, group.ID, ticket.TicketGroupID)
	assert.Nil(t, ticket.OrganizerID)
	requireInvariants(t, f.store, res.Event.ID)

	st := f.store.snapshot()
	assert.Equal(t, group.AmountTickets, st.groups[group.ID].AmountTickets)
	redeemed := st.codes[code.ID]
	require.NotNil(t, redeemed.TicketID)
	assert.Equal(t, ticket.ID, *redeemed.TicketID)

	notes := f.notifications()[sent:]
	require.Len(t, notes, 1)
	assert.Equal(t, "lu@example.com", notes[0].Recipient)
	assert.Equal(t, ticket.ID, notes[0].TicketID)

	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, code.Code, res.TicketTypes[1].ID, model.Attendee{FullName: "Mo"})
	assert.ErrorIs(t, err, model.ErrAlreadyRedeemed)
	assert.Len(t, f.store.snapshot().tickets, len(st.tickets))
}

func TestRedeemInvitation_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteInvitation, invitee(1, 1)))
	code := f.unredeemedCodes(res.Event.ID, 1)[0].Code
	who := model.Attendee{FullName: "Lu"}

	_, err := f.gateway.RedeemInvitation(ctx, res.Event.ID, "ZZZZZZ", res.TicketTypes[0].ID, who)
	assert.ErrorIs(t, err, model.ErrCodeNotFound)

	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, code, res.TicketTypes[0].ID, model.Attendee{})
	assert.ErrorIs(t, err, model.ErrValidation)

	ot := f.store.snapshot().organizerType(res.Event.ID)
	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, code, ot.ID, who)
	assert.ErrorIs(t, err, model.ErrTicketTypeNotFound)

	trad := f.create(t, eventInput(model.InviteTraditional, seller(2, 5)))
	_, err = f.gateway.RedeemInvitation(ctx, trad.Event.ID, code, trad.TicketTypes[0].ID, who)
	assert.ErrorIs(t, err, model.ErrValidation)

	requireInvariants(t, f.store, res.Event.ID)
	assert.Len(t, f.unredeemedCodes(res.Event.ID, 1), 1)
}

func TestRedeemInvitation_AfterRemovalCodeIsGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.create(t, eventInput(model.InviteInvitation, invitee(1, 1), invitee(2, 2)))
	code := f.unredeemedCodes(res.Event.ID, 2)[0].Code

	_, err := f.events.UpdateEvent(ctx, admin, res.Event.ID, nextInput(res, invitee(1, 1)))
	require.NoError(t, err)

	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, code, res.TicketTypes[0].ID, model.Attendee{FullName: "Lu"})
	assert.ErrorIs(t, err, model.ErrCodeNotFound)
}

func TestRedeemInvitation_SellerRestriction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := eventInput(model.InviteInvitation, invitee(1, 1), invitee(2, 2))
	in.TicketTypes[0].SellerIDs = []uint64{1}
	res := f.create(t, in)
	general, guest := res.TicketTypes[0].ID, res.TicketTypes[1].ID
	who := model.Attendee{FullName: "Lu"}

	other := f.unredeemedCodes(res.Event.ID, 2)
	_, err := f.gateway.RedeemInvitation(ctx, res.Event.ID, other[0].Code, general, who)
	assert.ErrorIs(t, err, model.ErrNotSeller)
	assert.Len(t, f.unredeemedCodes(res.Event.ID, 2), 2)

	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, other[0].Code, guest, who)
	require.NoError(t, err)

	own := f.unredeemedCodes(res.Event.ID, 1)[0].Code
	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, own, general, who)
	require.NoError(t, err)
	requireInvariants(t, f.store, res.Event.ID)
}

func TestRedeemInvitation_DrawsOnTicketTypeCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := eventInput(model.InviteInvitation, invitee(1, 3))
	in.TicketTypes[1].MaxAvailable = 1
	res := f.create(t, in)
	guest := res.TicketTypes[1].ID
	codes := f.unredeemedCodes(res.Event.ID, 1)
	who := model.Attendee{FullName: "Lu"}

	_, err := f.gateway.RedeemInvitation(ctx, res.Event.ID, codes[0].Code, guest, who)
	require.NoError(t, err)
	_, err = f.gateway.RedeemInvitation(ctx, res.Event.ID, codes[1].Code, guest, who)
	assert.ErrorIs(t, err, model.ErrSoldOut)

	view, err := f.events.GetEventBySlug(ctx, res.Event.Slug)
	require.NoError(t, err)
	for _, tv := range view.TicketTypes {
		if tv.ID == guest {
			assert.Zero(t, tv.Remaining)
		}
	}
	assert.Len(t, f.unredeemedCodes(res.Event.ID, 1), 2)
	requireInvariants(t, f.store, res.Event.ID)
}

func TestRedeemInvitation_SaleClosed(t *testing.T) {
	f := newFixture(t)
	in := eventInput(model.InviteInvitation, invitee(1, 1))
	ends := t0.Add(time.Hour)
	in.TicketTypes[0].SaleEndsAt = &ends
	res := f.create(t, in)
	code := f.unredeemedCodes(res.Event.ID, 1)[0].Code

	f.clock.Advance(2 * time.Hour)
	_, err := f.gateway.RedeemInvitation(context.Background(), res.Event.ID, code, res.TicketTypes[0].ID, model.Attendee{FullName: "Lu"})
	assert.ErrorIs(t, err, model.ErrSaleClosed)
	assert.Len(t, f.unredeemedCodes(res.Event.ID, 1), 1)
}
