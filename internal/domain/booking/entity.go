package booking

import "time"

type AvailabilityInput struct {
	FirmID uint
	Date   time.Time // midnight of the requested day, in the firm's location
}
