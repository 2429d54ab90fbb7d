package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Firm
// --------------------------------------------------

func (r *BookingGormRepository) GetFirmByID(
	ctx context.Context,
	id uint,
) (*models.Firm, error) {

	var firm models.Firm
	if err := r.db.WithContext(ctx).First(&firm, id).Error; err != nil {
		return nil, err
	}
	return &firm, nil
}

// --------------------------------------------------
// Menu item
// --------------------------------------------------

func (r *BookingGormRepository) GetMenuItem(
	ctx context.Context,
	firmID uint,
	itemID uint,
) (*models.MenuItem, error) {

	var item models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND firm_id = ? AND active = ?", itemID, firmID, true).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBooking re-checks the slot and inserts inside one transaction.
// The pre-check is only an early exit for the common case; the unique
// index on (firm_id, booking_time) settles races between writers, and a
// duplicate-key failure comes back as slot_conflict.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where("firm_id = ? AND booking_time = ?", b.FirmID, b.BookingTime).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		if err := tx.Create(b).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_conflict")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Booking (cancel)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Firm").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBooking removes the row outright so the slot becomes bookable
// again immediately; cancelled bookings are not kept around.
func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Delete(b).Error
}

// --------------------------------------------------
// Availability / listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	firmID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("booking_time").
		Where(
			"firm_id = ? AND booking_time >= ? AND booking_time < ?",
			firmID, start, end,
		).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Firm").
		Preload("MenuItem").
		Where("customer_id = ?", customerID).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListFirmBookingsForPeriod(
	ctx context.Context,
	firmID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("MenuItem").
		Where(
			"firm_id = ? AND booking_time >= ? AND booking_time < ?",
			firmID, start, end,
		).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
