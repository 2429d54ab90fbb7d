package booking

import (
	"context"
	"time"

	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/dto"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/models"
	"github.com/slotwise/booking-marketplace/internal/timezone"
)

type ListFirmBookings struct {
	repo domain.Repository
}

func NewListFirmBookings(
	repo domain.Repository,
) *ListFirmBookings {
	return &ListFirmBookings{
		repo: repo,
	}
}

// Execute lists one firm's bookings for a calendar day. Only the firm's
// owner or an admin may look.
func (uc *ListFirmBookings) Execute(
	ctx context.Context,
	userID uint,
	role string,
	firmID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	firm, err := uc.repo.GetFirmByID(ctx, firmID)
	if err != nil {
		return nil, httperr.ErrBusiness("firm_not_found")
	}

	if role != models.RoleAdmin && firm.OwnerID != userID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	loc := timezone.Location(firm.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.AddDate(0, 0, 1)

	bookings, err := uc.repo.ListFirmBookingsForPeriod(
		ctx,
		firmID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:             b.ID,
			Reference:      b.Reference,
			BookingTime:    b.BookingTime,
			NumberOfPeople: b.NumberOfPeople,
			Status:         b.Status,
			CustomerName:   b.Customer.Name,
		}
		if b.MenuItem != nil {
			item.MenuItemName = b.MenuItem.Name
		}
		out = append(out, item)
	}

	return out, nil
}
