// Package ledger holds the pure capacity rules shared by the organizer
// reconciler, the ticket type reconciler and checkout.  Nothing here does
// I/O, so every decision can be checked before a row is written.
package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityBelowConsumed is returned when a resize would drop below
	// capacity that was already emitted or redeemed.
	ErrCapacityBelowConsumed = errors.New("capacity below consumed")
	// ErrNegativeCapacity is returned for a negative desired value.
	ErrNegativeCapacity = errors.New("capacity must not be negative")
	// ErrAllowanceAboveMaximum is returned when a desired organizer
	// allowance exceeds the configured per-organizer maximum.
	ErrAllowanceAboveMaximum = errors.New("allowance above maximum")
)

// CapacityError carries the smallest value the caller may ask for.
// Subject names what was being resized, e.g. "organizer 7".
type CapacityError struct {
	Subject string
	Minimum int
	Desired int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: desired %d is below consumed capacity, minimum is %d", e.Subject, e.Desired, e.Minimum)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityBelowConsumed }

// ValidateResize checks a move from current to desired given consumed units
// that may never be destroyed.  It returns the signed delta to apply.
func ValidateResize(current, desired, consumed int) (int, error) {
	if desired < 0 {
		return 0, ErrNegativeCapacity
	}
	if desired < consumed {
		return 0, &CapacityError{Minimum: consumed, Desired: desired}
	}
	return desired - current, nil
}

// ValidateResizeOf is ValidateResize with a subject attached to any
// capacity error.
func ValidateResizeOf(subject string, current, desired, consumed int) (int, error) {
	delta, err := ValidateResize(current, desired, consumed)
	var ce *CapacityError
	if errors.As(err, &ce) {
		ce.Subject = subject
	}
	return delta, err
}

// ClampOrganizerAllowance bounds desired to [0, limit].  A limit of zero or
// less means no upper bound.
func ClampOrganizerAllowance(desired, limit int) int {
	if desired < 0 {
		return 0
	}
	if limit > 0 && desired > limit {
		return limit
	}
	return desired
}

// CheckOrganizerAllowance rejects any value the clamp would alter.  Clients
// clamp before submitting; the server re-checks before commit.
func CheckOrganizerAllowance(desired, limit int) error {
	if desired < 0 {
		return ErrNegativeCapacity
	}
	if ClampOrganizerAllowance(desired, limit) != desired {
		return fmt.Errorf("%w: %d > %d", ErrAllowanceAboveMaximum, desired, limit)
	}
	return nil
}

// Remaining is what is left to sell of a ticket type.
func Remaining(maxAvailable, emitted, held int) int {
	r := maxAvailable - emitted - held
	if r < 0 {
		return 0
	}
	return r
}

// CanTake reports whether qty more units fit.
func CanTake(maxAvailable, emitted, held, qty int) bool {
	return qty > 0 && qty <= Remaining(maxAvailable, emitted, held)
}
