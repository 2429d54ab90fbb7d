package booking

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/slotwise/booking-marketplace/internal/audit"
	infraRepo "github.com/slotwise/booking-marketplace/internal/infra/repository"
	"github.com/slotwise/booking-marketplace/internal/models"
)

// newTestDB opens a per-test in-memory sqlite database. A single pooled
// connection keeps the shared-cache memory DB alive and serializes
// writers the way the production pool would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Firm{},
		&models.MenuItem{},
		&models.Booking{},
		&models.AuditLog{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db))
}

func newRepo(db *gorm.DB) *infraRepo.BookingGormRepository {
	return infraRepo.NewBookingGormRepository(db)
}

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	u := models.User{
		Name:         "Test " + role,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedFirm(t *testing.T, db *gorm.DB, ownerID uint, openingHours string) models.Firm {
	t.Helper()

	f := models.Firm{
		OwnerID:      ownerID,
		Name:         "Test Firm",
		Slug:         uuid.NewString(),
		OpeningHours: openingHours,
		Timezone:     "UTC",
	}
	require.NoError(t, db.Create(&f).Error)
	return f
}

func seedMenuItem(t *testing.T, db *gorm.DB, firmID uint) models.MenuItem {
	t.Helper()

	item := models.MenuItem{
		FirmID: firmID,
		Name:   "Lunch Special",
		Price:  12.5,
		Active: true,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedBooking(t *testing.T, db *gorm.DB, firmID, customerID uint, at time.Time) models.Booking {
	t.Helper()

	b := models.Booking{
		Reference:      uuid.NewString(),
		FirmID:         firmID,
		CustomerID:     customerID,
		BookingTime:    at,
		NumberOfPeople: 1,
		Status:         "confirmed",
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// tomorrowAt is a UTC instant on the next calendar day; far enough out
// to clear the past-time and same-day checks in every test run.
func tomorrowAt(hour int) time.Time {
	now := time.Now().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func tomorrow() time.Time {
	return tomorrowAt(0)
}

func bookingCount(t *testing.T, db *gorm.DB, firmID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).
		Where("firm_id = ?", firmID).
		Count(&count).Error)
	return count
}
