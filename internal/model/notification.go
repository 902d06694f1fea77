package model

import "time"

// NotificationKind tells the consumer which mail template to use.
type NotificationKind string

const (
    // NotifyOrganizerPass is sent when an organizer is added to an event.
    NotifyOrganizerPass NotificationKind = "organizer_pass"
    // NotifyTicketIssued is sent for tickets emitted at checkout or redemption.
    NotifyTicketIssued NotificationKind = "ticket_issued"
)

// Notification is queued after a ledger mutation commits.  It carries
// everything the consumer needs to render the attachment and send the mail
// without reading the database again.
type Notification struct {
    ID             string           `json:"id"`
    Kind           NotificationKind `json:"kind"`
    Recipient      string           `json:"recipient"`
    RecipientName  string           `json:"recipient_name"`
    EventID        uint64           `json:"event_id"`
    EventName      string           `json:"event_name"`
    EventLocation  string           `json:"event_location"`
    EventStartsAt  time.Time        `json:"event_starts_at"`
    TicketID       uint64           `json:"ticket_id"`
    TicketTypeName string           `json:"ticket_type_name"`
    DiscountCode   string           `json:"discount_code,omitempty"`
    DiscountPct    int              `json:"discount_pct,omitempty"`
    InviteCodes    []string         `json:"invite_codes,omitempty"`
    Attempt        int              `json:"attempt"`
    CreatedAt      time.Time        `json:"created_at"`
}

// TicketDocument is the input of the PDF renderer.  It is a pure function
// of ticket and event fields.
type TicketDocument struct {
    TicketID       uint64
    HolderName     string
    TicketTypeName string
    EventName      string
    EventLocation  string
    EventStartsAt  time.Time
}

// Attachment is a named file sent with a mail.
type Attachment struct {
    Filename    string
    ContentType string
    Data        []byte
}

// Mail is what the mailer delivers.
type Mail struct {
    To          string
    Subject     string
    Body        string
    Attachments []Attachment
}
