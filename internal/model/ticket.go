package model

import "time"

// OrganizerTicketTypeName names the synthetic ticket type that carries
// organizers' personal entry passes.  Clients cannot create a type with
// this name.
const OrganizerTicketTypeName = "ORGANIZER"

// TicketCategory distinguishes free from paid ticket types.
type TicketCategory string

const (
    CategoryFree TicketCategory = "FREE"
    CategoryPaid TicketCategory = "PAID"
)

// TicketType represents a row in the `ticket_types` table.  SellerIDs is
// stored in `ticket_type_sellers` and restricts which organizers may sell
// the type; empty means unrestricted.
type TicketType struct {
    ID             uint64         `json:"id"`
    EventID        uint64         `json:"event_id"`
    Name           string         `json:"name"`
    Category       TicketCategory `json:"category"`
    PriceCents     uint32         `json:"price_cents"`
    MaxAvailable   int            `json:"max_available"`
    MaxPerPurchase int            `json:"max_per_purchase"`
    SaleEndsAt     *time.Time     `json:"sale_ends_at,omitempty"`
    ScanEndsAt     *time.Time     `json:"scan_ends_at,omitempty"`
    SellerIDs      []uint64       `json:"seller_ids,omitempty"`
    CreatedAt      time.Time      `json:"created_at"`
}

// IsOrganizerType reports whether t is the synthetic organizer type.
func (t TicketType) IsOrganizerType() bool { return t.Name == OrganizerTicketTypeName }

// SellableBy reports whether organizerID may sell t.
func (t TicketType) SellableBy(organizerID uint64) bool {
    if len(t.SellerIDs) == 0 {
        return true
    }
    for _, id := range t.SellerIDs {
        if id == organizerID {
            return true
        }
    }
    return false
}

// TicketGroupStatus is the lifecycle state of a ticket group.
type TicketGroupStatus string

const (
    // GroupBooked is a checkout hold with no confirmed payment yet.
    GroupBooked TicketGroupStatus = "BOOKED"
    // GroupFree is a confirmed zero-cost purchase or an allocation.
    GroupFree TicketGroupStatus = "FREE"
    // GroupPaid is a confirmed paid purchase.
    GroupPaid TicketGroupStatus = "PAID"
)

// CanTransitionTo reports whether a group in status s may move to next.
// BOOKED is the only non-terminal state.
func (s TicketGroupStatus) CanTransitionTo(next TicketGroupStatus) bool {
    return s == GroupBooked && (next == GroupFree || next == GroupPaid)
}

// TicketGroup represents a row in the `ticket_groups` table.
//
// Fields:
//  AmountTickets    – maintained counter of emitted tickets plus unredeemed
//                     codes attributed to the group.  Updated in the same
//                     statement sequence as every insert/delete against it.
//  IsOrganizerGroup – the single per-event group holding personal passes.
//  OrganizerID      – set on an organizer's dedicated invitation code group.
//  BuyerEmail       – checkout contact for purchase groups.
//  PaymentRef       – external payment reference for PAID groups.
type TicketGroup struct {
    ID               uint64            `json:"id"`
    EventID          uint64            `json:"event_id"`
    Status           TicketGroupStatus `json:"status"`
    AmountTickets    int               `json:"amount_tickets"`
    IsOrganizerGroup bool              `json:"is_organizer_group"`
    OrganizerID      *uint64           `json:"organizer_id,omitempty"`
    BuyerEmail       *string           `json:"buyer_email,omitempty"`
    PaymentRef       *string           `json:"payment_ref,omitempty"`
    CreatedAt        time.Time         `json:"created_at"`
    UpdatedAt        time.Time         `json:"updated_at"`
}

// TicketTypePerGroup is the quantity of one ticket type reserved within a
// purchase-flow group.
type TicketTypePerGroup struct {
    TicketGroupID uint64 `json:"ticket_group_id"`
    TicketTypeID  uint64 `json:"ticket_type_id"`
    Amount        int    `json:"amount"`
}

// Attendee holds the identity fields printed on a ticket.
type Attendee struct {
    FullName  string     `json:"full_name"`
    DNI       string     `json:"dni"`
    Mail      string     `json:"mail"`
    Phone     string     `json:"phone"`
    Gender    string     `json:"gender"`
    BirthDate *time.Time `json:"birth_date,omitempty"`
}

// EmittedTicket represents a row in the `emitted_tickets` table.  The
// attendee fields never change after insert and Scanned flips once.
// OrganizerID is only set on an organizer's personal pass.
type EmittedTicket struct {
    ID              uint64     `json:"id"`
    Attendee
    TicketTypeID    uint64     `json:"ticket_type_id"`
    TicketGroupID   uint64     `json:"ticket_group_id"`
    EventID         uint64     `json:"event_id"`
    OrganizerID     *uint64    `json:"organizer_id,omitempty"`
    Scanned         bool       `json:"scanned"`
    ScannedByUserID *uint64    `json:"scanned_by_user_id,omitempty"`
    ScannedAt       *time.Time `json:"scanned_at,omitempty"`
    CreatedAt       time.Time  `json:"created_at"`
}

// TicketTypeUsage is the consumed capacity of one ticket type: tickets
// already emitted and quantities held by live BOOKED groups.
type TicketTypeUsage struct {
    Emitted int
    Held    int
}

// Consumed is the capacity a resize may not go below.
func (u TicketTypeUsage) Consumed() int { return u.Emitted + u.Held }
