package booking

import (
	"context"
	"time"

	"github.com/slotwise/booking-marketplace/internal/models"
)

type Repository interface {
	// -------- Firm --------
	GetFirmByID(
		ctx context.Context,
		id uint,
	) (*models.Firm, error)

	// -------- Menu item --------
	GetMenuItem(
		ctx context.Context,
		firmID uint,
		itemID uint,
	) (*models.MenuItem, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking inserts b after re-checking the slot inside the same
	// transaction. The storage-level unique index on
	// (firm_id, booking_time) is the authority; a duplicate insert comes
	// back as the slot_conflict business error.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (cancel) --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Availability / listings --------
	ListBookingsForDay(
		ctx context.Context,
		firmID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	ListFirmBookingsForPeriod(
		ctx context.Context,
		firmID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
