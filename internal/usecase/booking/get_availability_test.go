package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
)

func TestGetAvailability_FullDay(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	firm := seedFirm(t, db, owner.ID, "08:00-11:00")

	uc := NewGetAvailability(newRepo(db), nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: firm.ID,
		Date:   tomorrow(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00", "10:00"}, slots)
}

func TestGetAvailability_ExcludesBookedSlots(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-11:00")

	seedBooking(t, db, firm.ID, customer.ID, tomorrowAt(9))

	uc := NewGetAvailability(newRepo(db), nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: firm.ID,
		Date:   tomorrow(),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "10:00"}, slots)
}

func TestGetAvailability_FullyBookedIsEmptyNotError(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-10:00")

	seedBooking(t, db, firm.ID, customer.ID, tomorrowAt(8))
	seedBooking(t, db, firm.ID, customer.ID, tomorrowAt(9))

	uc := NewGetAvailability(newRepo(db), nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: firm.ID,
		Date:   tomorrow(),
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_PastDate(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	firm := seedFirm(t, db, owner.ID, "08:00-11:00")

	uc := NewGetAvailability(newRepo(db), nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: firm.ID,
		Date:   tomorrow().AddDate(0, 0, -2),
	})

	assert.True(t, httperr.IsBusiness(err, "past_date"))
}

func TestGetAvailability_FirmMissing(t *testing.T) {
	db := newTestDB(t)

	uc := NewGetAvailability(newRepo(db), nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: 9999,
		Date:   tomorrow(),
	})

	assert.True(t, httperr.IsBusiness(err, "firm_unavailable"))
}

func TestGetAvailability_NoOpeningHours(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	firm := seedFirm(t, db, owner.ID, "")

	uc := NewGetAvailability(newRepo(db), nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		FirmID: firm.ID,
		Date:   tomorrow(),
	})

	assert.True(t, httperr.IsBusiness(err, "firm_unavailable"))
}

func TestGetAvailability_Idempotent(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	seedBooking(t, db, firm.ID, customer.ID, tomorrowAt(12))

	uc := NewGetAvailability(newRepo(db), nil)
	in := domain.AvailabilityInput{FirmID: firm.ID, Date: tomorrow()}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
