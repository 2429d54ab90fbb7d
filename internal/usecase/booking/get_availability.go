package booking

import (
	"context"
	"time"

	"github.com/slotwise/booking-marketplace/internal/cache"
	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewGetAvailability(
	repo domain.Repository,
	cache *cache.Availability,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute returns the free "HH:00" labels for one firm and day: every
// whole hour inside the firm's opening interval, minus hours already
// booked, minus hours that have started when the day is today. An empty
// list is a normal answer, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	firm, err := uc.repo.GetFirmByID(ctx, in.FirmID)
	if err != nil {
		return nil, httperr.ErrBusiness("firm_unavailable")
	}

	if firm.OpeningHours == "" {
		return nil, httperr.ErrBusiness("firm_unavailable")
	}

	oh, err := domain.ParseOpeningHours(firm.OpeningHours)
	if err != nil {
		return nil, httperr.ErrBusiness("firm_unavailable")
	}

	now := timezone.NowIn(firm.Timezone)
	today, _ := domain.DayWindow(now)
	if in.Date.Before(today) {
		return nil, httperr.ErrBusiness("past_date")
	}

	if slots, ok := uc.cache.Get(ctx, in.FirmID, in.Date); ok {
		return slots, nil
	}

	dayStart, dayEnd := domain.DayWindow(in.Date)

	bookings, err := uc.repo.ListBookingsForDay(
		ctx,
		in.FirmID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	booked := make([]time.Time, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, b.BookingTime)
	}

	slots := domain.BuildSlots(oh, in.Date, now, booked)

	uc.cache.Set(ctx, in.FirmID, in.Date, slots)

	return slots, nil
}
