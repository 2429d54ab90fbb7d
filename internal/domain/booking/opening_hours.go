package booking

import (
	"regexp"
	"strconv"

	"github.com/slotwise/booking-marketplace/internal/httperr"
)

var openingHoursRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

// OpeningHours is a firm's daily interval reduced to whole hours. Slots
// are hour-aligned, so the minute components of the stored "HH:MM-HH:MM"
// value are discarded here even though they are validated on write.
type OpeningHours struct {
	StartHour int
	EndHour   int
}

// ValidateOpeningHours checks the raw "HH:MM-HH:MM" encoding without
// reducing it. Open must come strictly before close at hour granularity.
func ValidateOpeningHours(raw string) error {
	_, err := ParseOpeningHours(raw)
	return err
}

func ParseOpeningHours(raw string) (OpeningHours, error) {
	if !openingHoursRe.MatchString(raw) {
		return OpeningHours{}, httperr.ErrBusiness("invalid_opening_hours")
	}

	start, _ := strconv.Atoi(raw[0:2])
	end, _ := strconv.Atoi(raw[6:8])

	if start >= end {
		return OpeningHours{}, httperr.ErrBusiness("invalid_opening_hours")
	}

	return OpeningHours{StartHour: start, EndHour: end}, nil
}

// Contains reports whether the hour of t falls inside the interval.
// The closing hour itself is never bookable.
func (oh OpeningHours) Contains(hour int) bool {
	return hour >= oh.StartHour && hour < oh.EndHour
}
