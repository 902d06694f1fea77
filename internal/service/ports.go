package service

import (
	"context"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Store opens units of work against the relational store.  fn runs inside
// one transaction; returning an error rolls every write back.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the set of row operations the engine performs inside a
// transaction.  Lookups that find nothing return the matching model.Err*
// sentinel.
type Tx interface {
	EventTx
	TicketTypeTx
	TicketGroupTx
	TicketTx
	OrganizerTx
	CodeTx
}

type EventTx interface {
	InsertEvent(ctx context.Context, e *model.Event) error
	UpdateEvent(ctx context.Context, e *model.Event) error
	GetEvent(ctx context.Context, id uint64) (*model.Event, error)
	// GetEventForUpdate locks the event row so concurrent edits of one
	// event serialize.
	GetEventForUpdate(ctx context.Context, id uint64) (*model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error)
}

type TicketTypeTx interface {
	ListTicketTypes(ctx context.Context, eventID uint64) ([]model.TicketType, error)
	InsertTicketType(ctx context.Context, t *model.TicketType) error
	UpdateTicketType(ctx context.Context, t *model.TicketType) error
	DeleteTicketType(ctx context.Context, id uint64) error
	// TicketTypeUsage counts emitted tickets and quantities held by BOOKED
	// groups created after heldSince.
	TicketTypeUsage(ctx context.Context, ticketTypeID uint64, heldSince time.Time) (model.TicketTypeUsage, error)
}

type TicketGroupTx interface {
	InsertTicketGroup(ctx context.Context, g *model.TicketGroup) error
	GetTicketGroupForUpdate(ctx context.Context, id uint64) (*model.TicketGroup, error)
	FindOrganizerGroup(ctx context.Context, eventID uint64) (*model.TicketGroup, error)
	FindOrganizerCodeGroup(ctx context.Context, eventID, organizerID uint64) (*model.TicketGroup, error)
	// AdjustGroupAmount applies delta to amount_tickets in place.
	AdjustGroupAmount(ctx context.Context, groupID uint64, delta int) error
	UpdateTicketGroupStatus(ctx context.Context, groupID uint64, status model.TicketGroupStatus, paymentRef *string) error
	InsertGroupLines(ctx context.Context, lines []model.TicketTypePerGroup) error
	ListGroupLines(ctx context.Context, groupID uint64) ([]model.TicketTypePerGroup, error)
	// DeleteExpiredBooked removes BOOKED groups created before cutoff.
	// eventID 0 means every event.
	DeleteExpiredBooked(ctx context.Context, eventID uint64, cutoff time.Time) (int64, error)
}

type TicketTx interface {
	InsertTicket(ctx context.Context, t *model.EmittedTicket) error
	DeleteTicket(ctx context.Context, id uint64) error
	GetTicketForUpdate(ctx context.Context, id uint64) (*model.EmittedTicket, error)
	FindPersonalTicket(ctx context.Context, eventID, organizerID uint64) (*model.EmittedTicket, error)
	MarkScanned(ctx context.Context, id, scannedBy uint64, at time.Time) (bool, error)
}

type OrganizerTx interface {
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	// ListEventOrganizers returns rows ordered by organizer id.
	ListEventOrganizers(ctx context.Context, eventID uint64) ([]model.EventOrganizer, error)
	GetEventOrganizerByCode(ctx context.Context, eventID uint64, code string) (*model.EventOrganizer, error)
	InsertEventOrganizer(ctx context.Context, o *model.EventOrganizer) error
	UpdateEventOrganizer(ctx context.Context, o *model.EventOrganizer) error
	DeleteEventOrganizer(ctx context.Context, eventID, organizerID uint64) error
}

type CodeTx interface {
	InsertCodes(ctx context.Context, codes []model.OrganizerCode) error
	CountCodes(ctx context.Context, eventID, organizerID uint64) (model.CodeStats, error)
	// LockUnredeemedCodes returns up to limit unredeemed codes, oldest
	// first (created_at, then id), locked for the rest of the
	// transaction.  limit 0 returns all of them.
	LockUnredeemedCodes(ctx context.Context, eventID, organizerID uint64, limit int) ([]model.OrganizerCode, error)
	DeleteCodes(ctx context.Context, ids []uint64) (int64, error)
	// RedeemCode attaches ticketID to the code only while it is still
	// unredeemed and reports the number of rows changed.
	RedeemCode(ctx context.Context, eventID uint64, code string, ticketID uint64) (int64, error)
	GetCode(ctx context.Context, eventID uint64, code string) (*model.OrganizerCode, error)
	// TakenCodes lists every code already used in the event, invitation
	// and discount codes alike.
	TakenCodes(ctx context.Context, eventID uint64) ([]string, error)
}

// NotificationQueue hands committed notifications to the delivery
// pipeline.
//
//go:generate mockery --name NotificationQueue --with-expecter --output mocks --outpkg mocks --filename mock_notification_queue.go
type NotificationQueue interface {
	Enqueue(ctx context.Context, n model.Notification) error
}
