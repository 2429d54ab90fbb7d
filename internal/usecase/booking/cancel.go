package booking

import (
	"context"

	"github.com/slotwise/booking-marketplace/internal/audit"
	"github.com/slotwise/booking-marketplace/internal/cache"
	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/models"
	"github.com/slotwise/booking-marketplace/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute removes a standing booking. Customers may only cancel their
// own; admins may cancel any. The row is deleted, which frees the slot
// for rebooking right away.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	role string,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if role != models.RoleAdmin && b.CustomerID != userID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.CanCancel(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteBooking(ctx, b); err != nil {
		return nil, err
	}

	start := b.BookingTime.In(timezone.Location(b.Firm.Timezone))
	day, _ := domain.DayWindow(start)
	uc.cache.Invalidate(ctx, b.FirmID, day)

	uc.audit.Dispatch(audit.Event{
		FirmID:   b.FirmID,
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
