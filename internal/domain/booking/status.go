package booking

import "github.com/slotwise/booking-marketplace/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// MaxPartySize caps how many people a single booking may cover. The
// current product rule is one person per slot.
const MaxPartySize = 1

// ===============================
// Validations
// ===============================

func ValidatePartySize(n int) error {
	if n < 1 || n > MaxPartySize {
		return httperr.ErrBusiness("invalid_party_size")
	}
	return nil
}

// CanCancel define whether a standing booking may still be cancelled.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
