package booking

import (
	"context"

	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/models"
)

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(
	repo domain.Repository,
) *ListCustomerBookings {
	return &ListCustomerBookings{
		repo: repo,
	}
}

func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForCustomer(ctx, customerID)
}
