package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestReaper_ReadPurgesExpiredReservations(t *testing.T) {
	f := newFixture(t)
	res := f.create(t, eventInput(model.InviteTraditional))
	general := res.TicketTypes[0].ID

	stale := reserveOne(t, f, res.Event.ID, general, 3)
	f.clock.Advance(9 * time.Minute)
	fresh := reserveOne(t, f, res.Event.ID, general, 1)
	f.clock.Advance(2 * time.Minute)

	view, err := f.events.GetEventBySlug(context.Background(), res.Event.Slug)
	require.NoError(t, err)
	assert.Equal(t, 99, view.TicketTypes[0].Remaining)

	st := f.store.snapshot()
	assert.NotContains(t, st.groups, stale.ID)
	assert.Contains(t, st.groups, fresh.ID)
	for _, l := range st.lines {
		assert.NotEqual(t, stale.ID, l.TicketGroupID)
	}
}

func TestReaper_ReapAllSkipsConfirmedAndFreshGroups(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, eventInput(model.InviteTraditional))
	b := f.create(t, eventInput(model.InviteInvitation, invitee(1, 2)))

	reserveOne(t, f, a.Event.ID, a.TicketTypes[0].ID, 1)
	reserveOne(t, f, b.Event.ID, b.TicketTypes[1].ID, 1)
	paid := buy(t, f, a.Event.ID, a.TicketTypes[0].ID, 1)
	f.clock.Advance(15 * time.Minute)
	fresh := reserveOne(t, f, a.Event.ID, a.TicketTypes[1].ID, 1)

	n, err := f.events.Reaper().ReapAll(context.Background())
	require.NoError(t, err)
	// a's stale hold was already purged by the fresh reservation
	assert.Equal(t, int64(1), n)

	n, err = f.events.Reaper().ReapAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	st := f.store.snapshot()
	assert.Contains(t, st.groups, paid.Group.ID)
	assert.Contains(t, st.groups, fresh.ID)
	assert.NotNil(t, st.organizerGroup(b.Event.ID))
	assert.NotNil(t, st.codeGroup(b.Event.ID, 1))
	requireInvariants(t, f.store, a.Event.ID)
	requireInvariants(t, f.store, b.Event.ID)
}

func TestReaper_Cutoff(t *testing.T) {
	f := newFixture(t)
	r := NewReaper(f.store, 10*time.Minute, f.clock, newTestLogger(t))
	assert.Equal(t, t0.Add(-10*time.Minute), r.Cutoff())

	n, err := r.ReapAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
