package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/slotwise/booking-marketplace/internal/audit"
	"github.com/slotwise/booking-marketplace/internal/cache"
	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/models"
	"github.com/slotwise/booking-marketplace/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	Role       string

	FirmID     uint
	MenuItemID *uint

	BookingTime    time.Time
	NumberOfPeople int
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// 1. Only customers book slots.
	if in.Role != models.RoleCustomer {
		return nil, httperr.ErrBusiness("forbidden")
	}

	// 2. Required fields.
	if in.FirmID == 0 || in.BookingTime.IsZero() || in.NumberOfPeople == 0 {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	if err := domain.ValidatePartySize(in.NumberOfPeople); err != nil {
		return nil, err
	}

	// 3. Firm must exist and have opening hours configured.
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

	// 4. The slot itself: hour-aligned, in the future, inside opening hours.
	// All hour arithmetic happens in the firm's location.
	start := in.BookingTime.In(timezone.Location(firm.Timezone))

	if !domain.SlotAligned(start) {
		return nil, httperr.ErrBusiness("invalid_booking_time")
	}

	now := timezone.NowIn(firm.Timezone)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("past_time")
	}

	if !oh.Contains(start.Hour()) {
		return nil, httperr.ErrBusiness("outside_opening_hours")
	}

	// 5. Optional menu item must belong to the firm and be active.
	if in.MenuItemID != nil {
		if _, err := uc.repo.GetMenuItem(ctx, in.FirmID, *in.MenuItemID); err != nil {
			return nil, httperr.ErrBusiness("menu_item_not_found")
		}
	}

	// 6. Persist. The repository settles slot exclusivity; a lost race
	// surfaces here as slot_conflict exactly like a failed pre-check.
	b := &models.Booking{
		Reference:      uuid.NewString(),
		FirmID:         in.FirmID,
		CustomerID:     in.CustomerID,
		MenuItemID:     in.MenuItemID,
		BookingTime:    start,
		NumberOfPeople: in.NumberOfPeople,
		Status:         string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			uc.audit.Dispatch(audit.Event{
				FirmID: in.FirmID,
				UserID: &in.CustomerID,
				Action: "booking_conflict",
				Entity: "booking",
				Metadata: map[string]any{
					"booking_time": start,
				},
			})
		}
		return nil, err
	}

	day, _ := domain.DayWindow(start)
	uc.cache.Invalidate(ctx, in.FirmID, day)

	uc.audit.Dispatch(audit.Event{
		FirmID:   in.FirmID,
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
