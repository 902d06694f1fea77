package model

import "time"

// InviteCondition governs what organizers receive for an event.  It is
// fixed when the event is created.
type InviteCondition string

const (
    // InviteTraditional gives each organizer a reusable discount code.
    InviteTraditional InviteCondition = "TRADITIONAL"
    // InviteInvitation gives each organizer a pool of single-use ticket codes.
    InviteInvitation InviteCondition = "INVITATION"
)

// Valid reports whether c is one of the known conditions.
func (c InviteCondition) Valid() bool {
    return c == InviteTraditional || c == InviteInvitation
}

// Event represents a row in the `events` table.  The slug is the public
// identifier used by buyers; the numeric ID is used by staff endpoints.
//
// Fields:
//  ID              – primary key identifier.
//  Slug            – unique public identifier.
//  Name            – display name.
//  Description     – free text shown on the event page.
//  StartsAt/EndsAt – schedule window in UTC.
//  Location        – venue or address.
//  Category        – free-form grouping (concert, party, ...).
//  InviteCondition – TRADITIONAL or INVITATION; immutable.
//  IsActive        – whether the event is on sale.
//  IsDeleted       – soft-delete flag.
type Event struct {
    ID              uint64          `json:"id"`
    Slug            string          `json:"slug"`
    Name            string          `json:"name"`
    Description     string          `json:"description"`
    StartsAt        time.Time       `json:"starts_at"`
    EndsAt          time.Time       `json:"ends_at"`
    Location        string          `json:"location"`
    Category        string          `json:"category"`
    InviteCondition InviteCondition `json:"invite_condition"`
    IsActive        bool            `json:"is_active"`
    IsDeleted       bool            `json:"is_deleted"`
    CreatedAt       time.Time       `json:"created_at"`
    UpdatedAt       time.Time       `json:"updated_at"`
}
