package model

import (
    "errors"
    "fmt"
)

// Lookups that found nothing.  Handlers translate these into 404.
var (
    ErrEventNotFound       = errors.New("event not found")
    ErrTicketTypeNotFound  = errors.New("ticket type not found")
    ErrTicketGroupNotFound = errors.New("ticket group not found")
    ErrTicketNotFound      = errors.New("ticket not found")
    ErrUserNotFound        = errors.New("user not found")
    ErrCodeNotFound        = errors.New("code not found")
)

// Input rejected before any row was touched.
var (
    ErrValidation                = errors.New("validation error")
    ErrEmptyOrganizerList        = errors.New("invitation events require at least one organizer")
    ErrInviteConditionImmutable  = errors.New("invite condition cannot change after creation")
    ErrReservedTicketTypeName    = errors.New("ticket type name is reserved")
    ErrInvalidInviteCondition    = errors.New("invalid invite condition")
)

// Capacity would be destroyed or oversold.
var (
    ErrInsufficientUnredeemed = errors.New("not enough unredeemed codes")
    ErrSoldOut                = errors.New("ticket type sold out")
    ErrTicketTypeInUse        = errors.New("ticket type has emitted or held tickets")
    ErrPurchaseLimit          = errors.New("purchase exceeds max per purchase")
    ErrSaleClosed             = errors.New("ticket sale has ended")
    ErrNotSeller              = errors.New("organizer may not sell this ticket type")
)

// Conflicts with concurrent edits or logic bugs.  The caller retries with fresh state.
var (
    ErrOrganizerTicketTypeMissing = errors.New("organizer ticket type missing")
    ErrOrganizerNotFound          = errors.New("organizer not found")
    ErrAlreadyRedeemed            = errors.New("code already redeemed")
    ErrCodeSpaceExhausted         = errors.New("could not generate a unique code")
    ErrInvalidTransition          = errors.New("invalid ticket group transition")
    ErrReservationExpired         = errors.New("reservation expired")
    ErrAlreadyScanned             = errors.New("ticket already scanned")
    ErrScanWindowClosed           = errors.New("scan window closed")
    ErrConflict                   = errors.New("conflict")
)

// ErrForbidden is returned when the principal's role does not allow the operation.
var ErrForbidden = errors.New("forbidden")

// ValidationError names the offending input field.  It unwraps to ErrValidation
// so callers can branch with errors.Is.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a *ValidationError.
func Invalid(field, format string, args ...any) error {
    return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
