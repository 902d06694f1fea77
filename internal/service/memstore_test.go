package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory Store.  Each transaction works on a deep copy of
// the state that replaces it only on commit, so a failed fn leaves nothing
// behind.  Transactions are serialized by a mutex.
type memStore struct {
	mu     sync.Mutex
	state  *memState
	writes int
	calls  map[string]int
	failAt map[string]int
}

type memState struct {
	nextID     uint64
	events     map[uint64]model.Event
	types      map[uint64]model.TicketType
	groups     map[uint64]model.TicketGroup
	lines      []model.TicketTypePerGroup
	tickets    map[uint64]model.EmittedTicket
	users      map[uint64]model.User
	organizers map[[2]uint64]model.EventOrganizer
	codes      map[uint64]model.OrganizerCode
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			events:     map[uint64]model.Event{},
			types:      map[uint64]model.TicketType{},
			groups:     map[uint64]model.TicketGroup{},
			tickets:    map[uint64]model.EmittedTicket{},
			users:      map[uint64]model.User{},
			organizers: map[[2]uint64]model.EventOrganizer{},
			codes:      map[uint64]model.OrganizerCode{},
		},
		calls:  map[string]int{},
		failAt: map[string]int{},
	}
}

// failOn makes the nth call (counted from now) of method fail.
func (m *memStore) failOn(method string, nth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method] = 0
	m.failAt[method] = nth
}

func (m *memStore) addUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.users[u.ID] = u
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// snapshot returns a copy of the committed state for assertions.
func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memTx{store: m, st: m.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.st
	m.writes += tx.writes
	return nil
}

func (s *memState) clone() *memState {
	c := &memState{
		nextID:     s.nextID,
		events:     make(map[uint64]model.Event, len(s.events)),
		types:      make(map[uint64]model.TicketType, len(s.types)),
		groups:     make(map[uint64]model.TicketGroup, len(s.groups)),
		lines:      slices.Clone(s.lines),
		tickets:    make(map[uint64]model.EmittedTicket, len(s.tickets)),
		users:      make(map[uint64]model.User, len(s.users)),
		organizers: make(map[[2]uint64]model.EventOrganizer, len(s.organizers)),
		codes:      make(map[uint64]model.OrganizerCode, len(s.codes)),
	}
	for k, v := range s.events {
		c.events[k] = v
	}
	for k, v := range s.types {
		v.SellerIDs = slices.Clone(v.SellerIDs)
		c.types[k] = v
	}
	for k, v := range s.groups {
		c.groups[k] = v
	}
	for k, v := range s.tickets {
		c.tickets[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.organizers {
		c.organizers[k] = v
	}
	for k, v := range s.codes {
		c.codes[k] = v
	}
	return c
}

type memTx struct {
	store  *memStore
	st     *memState
	writes int
}

func (t *memTx) id() uint64 {
	t.st.nextID++
	return t.st.nextID
}

// write records a mutation and trips any injected failure.
func (t *memTx) write(method string) error {
	t.store.calls[method]++
	if n, ok := t.store.failAt[method]; ok && t.store.calls[method] == n {
		return fmt.Errorf("%s: %w", method, errInjected)
	}
	t.writes++
	return nil
}

func (t *memTx) InsertEvent(_ context.Context, e *model.Event) error {
	if err := t.write("InsertEvent"); err != nil {
		return err
	}
	e.ID = t.id()
	t.st.events[e.ID] = *e
	return nil
}

func (t *memTx) UpdateEvent(_ context.Context, e *model.Event) error {
	if err := t.write("UpdateEvent"); err != nil {
		return err
	}
	t.st.events[e.ID] = *e
	return nil
}

func (t *memTx) GetEvent(_ context.Context, id uint64) (*model.Event, error) {
	e, ok := t.st.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	return &e, nil
}

func (t *memTx) GetEventForUpdate(ctx context.Context, id uint64) (*model.Event, error) {
	return t.GetEvent(ctx, id)
}

func (t *memTx) GetEventBySlug(_ context.Context, slug string) (*model.Event, error) {
	for _, e := range t.st.events {
		if e.Slug == slug {
			return &e, nil
		}
	}
	return nil, model.ErrEventNotFound
}

func (t *memTx) ListEvents(_ context.Context, limit, offset int) ([]model.Event, error) {
	var out []model.Event
	for _, e := range t.st.events {
		if e.IsActive && !e.IsDeleted {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) ListTicketTypes(_ context.Context, eventID uint64) ([]model.TicketType, error) {
	var out []model.TicketType
	for _, tt := range t.st.types {
		if tt.EventID == eventID {
			tt.SellerIDs = slices.Clone(tt.SellerIDs)
			out = append(out, tt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) InsertTicketType(_ context.Context, tt *model.TicketType) error {
	if err := t.write("InsertTicketType"); err != nil {
		return err
	}
	tt.ID = t.id()
	v := *tt
	v.SellerIDs = slices.Clone(tt.SellerIDs)
	t.st.types[tt.ID] = v
	return nil
}

func (t *memTx) UpdateTicketType(_ context.Context, tt *model.TicketType) error {
	if err := t.write("UpdateTicketType"); err != nil {
		return err
	}
	if _, ok := t.st.types[tt.ID]; !ok {
		return model.ErrTicketTypeNotFound
	}
	v := *tt
	v.SellerIDs = slices.Clone(tt.SellerIDs)
	t.st.types[tt.ID] = v
	return nil
}

func (t *memTx) DeleteTicketType(_ context.Context, id uint64) error {
	if err := t.write("DeleteTicketType"); err != nil {
		return err
	}
	delete(t.st.types, id)
	return nil
}

func (t *memTx) TicketTypeUsage(_ context.Context, ticketTypeID uint64, heldSince time.Time) (model.TicketTypeUsage, error) {
	var u model.TicketTypeUsage
	for _, tk := range t.st.tickets {
		if tk.TicketTypeID == ticketTypeID {
			u.Emitted++
		}
	}
	for _, l := range t.st.lines {
		g, ok := t.st.groups[l.TicketGroupID]
		if ok && l.TicketTypeID == ticketTypeID && g.Status == model.GroupBooked && !g.CreatedAt.Before(heldSince) {
			u.Held += l.Amount
		}
	}
	return u, nil
}

func (t *memTx) InsertTicketGroup(_ context.Context, g *model.TicketGroup) error {
	if err := t.write("InsertTicketGroup"); err != nil {
		return err
	}
	g.ID = t.id()
	t.st.groups[g.ID] = *g
	return nil
}

func (t *memTx) GetTicketGroupForUpdate(_ context.Context, id uint64) (*model.TicketGroup, error) {
	g, ok := t.st.groups[id]
	if !ok {
		return nil, model.ErrTicketGroupNotFound
	}
	return &g, nil
}

func (t *memTx) FindOrganizerGroup(_ context.Context, eventID uint64) (*model.TicketGroup, error) {
	for _, g := range t.st.groups {
		if g.EventID == eventID && g.IsOrganizerGroup {
			return &g, nil
		}
	}
	return nil, model.ErrTicketGroupNotFound
}

func (t *memTx) FindOrganizerCodeGroup(_ context.Context, eventID, organizerID uint64) (*model.TicketGroup, error) {
	for _, g := range t.st.groups {
		if g.EventID == eventID && g.OrganizerID != nil && *g.OrganizerID == organizerID {
			return &g, nil
		}
	}
	return nil, model.ErrTicketGroupNotFound
}

func (t *memTx) AdjustGroupAmount(_ context.Context, groupID uint64, delta int) error {
	if err := t.write("AdjustGroupAmount"); err != nil {
		return err
	}
	g, ok := t.st.groups[groupID]
	if !ok {
		return model.ErrTicketGroupNotFound
	}
	g.AmountTickets += delta
	t.st.groups[groupID] = g
	return nil
}

func (t *memTx) UpdateTicketGroupStatus(_ context.Context, groupID uint64, status model.TicketGroupStatus, paymentRef *string) error {
	if err := t.write("UpdateTicketGroupStatus"); err != nil {
		return err
	}
	g, ok := t.st.groups[groupID]
	if !ok {
		return model.ErrTicketGroupNotFound
	}
	g.Status = status
	g.PaymentRef = paymentRef
	t.st.groups[groupID] = g
	return nil
}

func (t *memTx) InsertGroupLines(_ context.Context, lines []model.TicketTypePerGroup) error {
	if err := t.write("InsertGroupLines"); err != nil {
		return err
	}
	t.st.lines = append(t.st.lines, lines...)
	return nil
}

func (t *memTx) ListGroupLines(_ context.Context, groupID uint64) ([]model.TicketTypePerGroup, error) {
	var out []model.TicketTypePerGroup
	for _, l := range t.st.lines {
		if l.TicketGroupID == groupID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (t *memTx) DeleteExpiredBooked(_ context.Context, eventID uint64, cutoff time.Time) (int64, error) {
	var doomed []uint64
	for id, g := range t.st.groups {
		if g.Status == model.GroupBooked && (eventID == 0 || g.EventID == eventID) && g.CreatedAt.Before(cutoff) {
			doomed = append(doomed, id)
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}
	if err := t.write("DeleteExpiredBooked"); err != nil {
		return 0, err
	}
	for _, id := range doomed {
		delete(t.st.groups, id)
	}
	t.st.lines = slices.DeleteFunc(t.st.lines, func(l model.TicketTypePerGroup) bool {
		return slices.Contains(doomed, l.TicketGroupID)
	})
	return int64(len(doomed)), nil
}

func (t *memTx) InsertTicket(_ context.Context, tk *model.EmittedTicket) error {
	if err := t.write("InsertTicket"); err != nil {
		return err
	}
	tk.ID = t.id()
	t.st.tickets[tk.ID] = *tk
	return nil
}

func (t *memTx) DeleteTicket(_ context.Context, id uint64) error {
	if err := t.write("DeleteTicket"); err != nil {
		return err
	}
	delete(t.st.tickets, id)
	return nil
}

func (t *memTx) GetTicketForUpdate(_ context.Context, id uint64) (*model.EmittedTicket, error) {
	tk, ok := t.st.tickets[id]
	if !ok {
		return nil, model.ErrTicketNotFound
	}
	return &tk, nil
}

func (t *memTx) FindPersonalTicket(_ context.Context, eventID, organizerID uint64) (*model.EmittedTicket, error) {
	for _, tk := range t.st.tickets {
		if tk.EventID == eventID && tk.OrganizerID != nil && *tk.OrganizerID == organizerID {
			return &tk, nil
		}
	}
	return nil, model.ErrTicketNotFound
}

func (t *memTx) MarkScanned(_ context.Context, id, scannedBy uint64, at time.Time) (bool, error) {
	tk, ok := t.st.tickets[id]
	if !ok || tk.Scanned {
		return false, nil
	}
	if err := t.write("MarkScanned"); err != nil {
		return false, err
	}
	tk.Scanned = true
	tk.ScannedByUserID = &scannedBy
	tk.ScannedAt = &at
	t.st.tickets[id] = tk
	return true, nil
}

func (t *memTx) GetUser(_ context.Context, id uint64) (*model.User, error) {
	u, ok := t.st.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (t *memTx) ListEventOrganizers(_ context.Context, eventID uint64) ([]model.EventOrganizer, error) {
	var out []model.EventOrganizer
	for k, o := range t.st.organizers {
		if k[0] == eventID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrganizerID < out[j].OrganizerID })
	return out, nil
}

func (t *memTx) GetEventOrganizerByCode(_ context.Context, eventID uint64, code string) (*model.EventOrganizer, error) {
	for k, o := range t.st.organizers {
		if k[0] == eventID && strings.EqualFold(o.Code, code) {
			return &o, nil
		}
	}
	return nil, model.ErrOrganizerNotFound
}

func (t *memTx) InsertEventOrganizer(_ context.Context, o *model.EventOrganizer) error {
	if err := t.write("InsertEventOrganizer"); err != nil {
		return err
	}
	key := [2]uint64{o.EventID, o.OrganizerID}
	if _, dup := t.st.organizers[key]; dup {
		return model.ErrConflict
	}
	t.st.organizers[key] = *o
	return nil
}

func (t *memTx) UpdateEventOrganizer(_ context.Context, o *model.EventOrganizer) error {
	if err := t.write("UpdateEventOrganizer"); err != nil {
		return err
	}
	key := [2]uint64{o.EventID, o.OrganizerID}
	if _, ok := t.st.organizers[key]; !ok {
		return model.ErrOrganizerNotFound
	}
	t.st.organizers[key] = *o
	return nil
}

func (t *memTx) DeleteEventOrganizer(_ context.Context, eventID, organizerID uint64) error {
	if err := t.write("DeleteEventOrganizer"); err != nil {
		return err
	}
	delete(t.st.organizers, [2]uint64{eventID, organizerID})
	return nil
}

func (t *memTx) InsertCodes(_ context.Context, codes []model.OrganizerCode) error {
	if err := t.write("InsertCodes"); err != nil {
		return err
	}
	for _, c := range codes {
		for _, existing := range t.st.codes {
			if existing.EventID == c.EventID && existing.Code == c.Code {
				return model.ErrConflict
			}
		}
		c.ID = t.id()
		t.st.codes[c.ID] = c
	}
	return nil
}

func (t *memTx) CountCodes(_ context.Context, eventID, organizerID uint64) (model.CodeStats, error) {
	var s model.CodeStats
	for _, c := range t.st.codes {
		if c.EventID == eventID && c.OrganizerID == organizerID {
			s.Total++
			if c.Redeemed() {
				s.Redeemed++
			}
		}
	}
	return s, nil
}

func (t *memTx) LockUnredeemedCodes(_ context.Context, eventID, organizerID uint64, limit int) ([]model.OrganizerCode, error) {
	var out []model.OrganizerCode
	for _, c := range t.st.codes {
		if c.EventID == eventID && c.OrganizerID == organizerID && !c.Redeemed() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) DeleteCodes(_ context.Context, ids []uint64) (int64, error) {
	if err := t.write("DeleteCodes"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := t.st.codes[id]; ok {
			delete(t.st.codes, id)
			n++
		}
	}
	return n, nil
}

func (t *memTx) RedeemCode(_ context.Context, eventID uint64, code string, ticketID uint64) (int64, error) {
	for id, c := range t.st.codes {
		if c.EventID == eventID && c.Code == code && !c.Redeemed() {
			if err := t.write("RedeemCode"); err != nil {
				return 0, err
			}
			c.TicketID = &ticketID
			t.st.codes[id] = c
			return 1, nil
		}
	}
	return 0, nil
}

func (t *memTx) GetCode(_ context.Context, eventID uint64, code string) (*model.OrganizerCode, error) {
	for _, c := range t.st.codes {
		if c.EventID == eventID && c.Code == code {
			return &c, nil
		}
	}
	return nil, model.ErrCodeNotFound
}

func (t *memTx) TakenCodes(_ context.Context, eventID uint64) ([]string, error) {
	var out []string
	for _, c := range t.st.codes {
		if c.EventID == eventID {
			out = append(out, c.Code)
		}
	}
	for k, o := range t.st.organizers {
		if k[0] == eventID {
			out = append(out, o.Code)
		}
	}
	return out, nil
}

// ---- assertions over committed state ----

func (s *memState) codesOf(eventID, organizerID uint64) []model.OrganizerCode {
	var out []model.OrganizerCode
	for _, c := range s.codes {
		if c.EventID == eventID && c.OrganizerID == organizerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memState) organizerType(eventID uint64) *model.TicketType {
	for _, tt := range s.types {
		if tt.EventID == eventID && tt.IsOrganizerType() {
			return &tt
		}
	}
	return nil
}

func (s *memState) organizerGroup(eventID uint64) *model.TicketGroup {
	for _, g := range s.groups {
		if g.EventID == eventID && g.IsOrganizerGroup {
			return &g
		}
	}
	return nil
}

func (s *memState) codeGroup(eventID, organizerID uint64) *model.TicketGroup {
	for _, g := range s.groups {
		if g.EventID == eventID && g.OrganizerID != nil && *g.OrganizerID == organizerID {
			return &g
		}
	}
	return nil
}

func (s *memState) eventOrganizers(eventID uint64) []model.EventOrganizer {
	var out []model.EventOrganizer
	for k, o := range s.organizers {
		if k[0] == eventID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrganizerID < out[j].OrganizerID })
	return out
}

// requireInvariants checks every ledger invariant for one event.
func requireInvariants(t *testing.T, store *memStore, eventID uint64) {
	t.Helper()
	st := store.snapshot()
	ev, ok := st.events[eventID]
	require.True(t, ok, "event %d missing", eventID)
	orgs := st.eventOrganizers(eventID)

	// Redeemed codes of organizers no longer on the event are outside the
	// sum; their rows must all be redeemed.
	if ev.InviteCondition == model.InviteInvitation {
		current := map[uint64]struct{}{}
		declared, redeemed := 0, 0
		for _, o := range orgs {
			current[o.OrganizerID] = struct{}{}
			codes := st.codesOf(eventID, o.OrganizerID)
			assert.Len(t, codes, o.Allowance(), "organizer %d code rows vs declared allowance", o.OrganizerID)
			declared += o.Allowance()
			mine := 0
			for _, c := range codes {
				if c.Redeemed() {
					mine++
				}
			}
			assert.LessOrEqual(t, mine, o.Allowance(), "organizer %d redeemed above allowance", o.OrganizerID)
			redeemed += mine
		}
		assert.GreaterOrEqual(t, declared, redeemed, "declared allowance below redeemed codes")
		for _, c := range st.codes {
			if _, ok := current[c.OrganizerID]; c.EventID == eventID && !ok {
				assert.True(t, c.Redeemed(), "unredeemed code %d left by removed organizer %d", c.ID, c.OrganizerID)
			}
		}
	}

	ot := st.organizerType(eventID)
	require.NotNil(t, ot, "organizer ticket type missing")
	assert.Equal(t, len(orgs), ot.MaxAvailable, "organizer type capacity vs organizer count")

	for gid, g := range st.groups {
		if g.EventID != eventID {
			continue
		}
		live := 0
		for _, tk := range st.tickets {
			if tk.TicketGroupID == gid {
				live++
			}
		}
		for _, c := range st.codes {
			if c.TicketGroupID == gid && !c.Redeemed() {
				live++
			}
		}
		assert.Equal(t, live, g.AmountTickets, "group %d amount_tickets", gid)
	}

	og := st.organizerGroup(eventID)
	for _, o := range orgs {
		passes := 0
		for _, tk := range st.tickets {
			if tk.EventID == eventID && tk.OrganizerID != nil && *tk.OrganizerID == o.OrganizerID {
				passes++
				assert.Equal(t, ot.ID, tk.TicketTypeID)
				require.NotNil(t, og)
				assert.Equal(t, og.ID, tk.TicketGroupID)
			}
		}
		assert.Equal(t, 1, passes, "organizer %d personal passes", o.OrganizerID)
	}
}
