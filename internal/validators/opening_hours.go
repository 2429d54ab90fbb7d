package validators

import (
	"github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/timezone"
)

// IsOpeningHoursValid accepts the firm-facing "HH:MM-HH:MM" encoding.
// An empty value is allowed: the firm simply is not bookable yet.
func IsOpeningHoursValid(raw string) bool {
	if raw == "" {
		return true
	}
	return booking.ValidateOpeningHours(raw) == nil
}

// IsTimezoneValid accepts IANA names; empty falls back to the service
// default.
func IsTimezoneValid(tz string) bool {
	if tz == "" {
		return true
	}
	return timezone.IsValid(tz)
}
