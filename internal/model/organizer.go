package model

import "time"

// EventOrganizer is the (event, organizer) join row in `event_organizers`.
// Exactly one of DiscountPercentage (TRADITIONAL) or TicketAmount
// (INVITATION) is set; it is the declared allowance.  Code is the
// organizer's reusable discount code in TRADITIONAL events.
type EventOrganizer struct {
    EventID            uint64    `json:"event_id"`
    OrganizerID        uint64    `json:"organizer_id"`
    DiscountPercentage *int      `json:"discount_percentage,omitempty"`
    TicketAmount       *int      `json:"ticket_amount,omitempty"`
    Code               string    `json:"code"`
    CreatedAt          time.Time `json:"created_at"`
}

// Discount returns the declared discount or 0.
func (o EventOrganizer) Discount() int {
    if o.DiscountPercentage == nil {
        return 0
    }
    return *o.DiscountPercentage
}

// Allowance returns the declared ticket amount or 0.
func (o EventOrganizer) Allowance() int {
    if o.TicketAmount == nil {
        return 0
    }
    return *o.TicketAmount
}

// OrganizerCode is one distributable invitation slot in `organizer_codes`.
// TicketID is nil while the code is unredeemed; once set the row is
// immutable history.
type OrganizerCode struct {
    ID            uint64    `json:"id"`
    EventID       uint64    `json:"event_id"`
    OrganizerID   uint64    `json:"organizer_id"`
    TicketGroupID uint64    `json:"ticket_group_id"`
    Code          string    `json:"code"`
    TicketID      *uint64   `json:"ticket_id,omitempty"`
    CreatedAt     time.Time `json:"created_at"`
}

// Redeemed reports whether the code is attached to a ticket.
func (c OrganizerCode) Redeemed() bool { return c.TicketID != nil }

// CodeStats is a row count of one organizer's codes, taken inside the
// transaction that is about to resize them.
type CodeStats struct {
    Total    int
    Redeemed int
}

// Unredeemed is the number of rows still distributable.
func (s CodeStats) Unredeemed() int { return s.Total - s.Redeemed }
