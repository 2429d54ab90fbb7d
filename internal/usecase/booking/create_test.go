package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/models"
)

func TestCreateBooking_Success(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(10),
		NumberOfPeople: 1,
	})

	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, firm.ID, b.FirmID)
	assert.Equal(t, customer.ID, b.CustomerID)
	assert.Equal(t, int64(1), bookingCount(t, db, firm.ID))
}

func TestCreateBooking_NonCustomerForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	for _, role := range []string{models.RoleOwner, models.RoleAdmin} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			CustomerID:     owner.ID,
			Role:           role,
			FirmID:         firm.ID,
			BookingTime:    tomorrowAt(10),
			NumberOfPeople: 1,
		})

		assert.True(t, httperr.IsBusiness(err, "forbidden"), "role %s", role)
	}

	assert.Equal(t, int64(0), bookingCount(t, db, firm.ID))
}

func TestCreateBooking_MissingFields(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "customer")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	cases := []CreateBookingInput{
		{CustomerID: customer.ID, Role: models.RoleCustomer, BookingTime: tomorrowAt(10), NumberOfPeople: 1}, // no firm
		{CustomerID: customer.ID, Role: models.RoleCustomer, FirmID: 1, NumberOfPeople: 1},                   // no time
		{CustomerID: customer.ID, Role: models.RoleCustomer, FirmID: 1, BookingTime: tomorrowAt(10)},         // no people
	}

	for i, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_request"), "case %d", i)
	}
}

func TestCreateBooking_PartySizeCapped(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(10),
		NumberOfPeople: 2,
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_party_size"))
	assert.Equal(t, int64(0), bookingCount(t, db, firm.ID))
}

func TestCreateBooking_UnalignedTime(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(10).Add(30 * time.Minute),
		NumberOfPeople: 1,
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_booking_time"))
}

func TestCreateBooking_PastTime(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "00:00-23:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(10).AddDate(0, 0, -3),
		NumberOfPeople: 1,
	})

	assert.True(t, httperr.IsBusiness(err, "past_time"))
}

func TestCreateBooking_OutsideOpeningHours(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-11:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	for _, hour := range []int{7, 11, 15} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			CustomerID:     customer.ID,
			Role:           models.RoleCustomer,
			FirmID:         firm.ID,
			BookingTime:    tomorrowAt(hour),
			NumberOfPeople: 1,
		})

		assert.True(t, httperr.IsBusiness(err, "outside_opening_hours"), "hour %d", hour)
	}
}

func TestCreateBooking_MenuItem(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")
	otherFirm := seedFirm(t, db, owner.ID, "08:00-18:00")
	item := seedMenuItem(t, db, otherFirm.ID)

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	// item belongs to another firm
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		MenuItemID:     &item.ID,
		BookingTime:    tomorrowAt(10),
		NumberOfPeople: 1,
	})
	assert.True(t, httperr.IsBusiness(err, "menu_item_not_found"))

	ownItem := seedMenuItem(t, db, firm.ID)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     customer.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		MenuItemID:     &ownItem.ID,
		BookingTime:    tomorrowAt(10),
		NumberOfPeople: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, b.MenuItemID)
	assert.Equal(t, ownItem.ID, *b.MenuItemID)
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	first := seedUser(t, db, "customer")
	second := seedUser(t, db, "customer")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     first.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(9),
		NumberOfPeople: 1,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		CustomerID:     second.ID,
		Role:           models.RoleCustomer,
		FirmID:         firm.ID,
		BookingTime:    tomorrowAt(9),
		NumberOfPeople: 1,
	})

	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
	assert.Equal(t, int64(1), bookingCount(t, db, firm.ID))
}

func TestCreateBooking_SameTimeOtherFirmIsFine(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	customer := seedUser(t, db, "customer")
	firmA := seedFirm(t, db, owner.ID, "08:00-18:00")
	firmB := seedFirm(t, db, owner.ID, "08:00-18:00")

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	for _, firmID := range []uint{firmA.ID, firmB.ID} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			CustomerID:     customer.ID,
			Role:           models.RoleCustomer,
			FirmID:         firmID,
			BookingTime:    tomorrowAt(9),
			NumberOfPeople: 1,
		})
		require.NoError(t, err)
	}
}

// N concurrent writers racing for one slot: exactly one wins, everyone
// else gets slot_conflict.
func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	firm := seedFirm(t, db, owner.ID, "08:00-18:00")

	const n = 8

	customers := make([]models.User, n)
	for i := range customers {
		customers[i] = seedUser(t, db, "customer")
	}

	uc := NewCreateBooking(newRepo(db), newTestDispatcher(db), nil)

	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateBookingInput{
				CustomerID:     customers[i].ID,
				Role:           models.RoleCustomer,
				FirmID:         firm.ID,
				BookingTime:    tomorrowAt(14),
				NumberOfPeople: 1,
			})
		}(i)
	}

	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case httperr.IsBusiness(err, "slot_conflict"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, int64(1), bookingCount(t, db, firm.ID))
}
