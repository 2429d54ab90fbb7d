package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/slotwise/booking-marketplace/internal/domain/booking"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/httpresp"
	"github.com/slotwise/booking-marketplace/internal/middleware"
	"github.com/slotwise/booking-marketplace/internal/models"
	"github.com/slotwise/booking-marketplace/internal/timezone"
	ucBooking "github.com/slotwise/booking-marketplace/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
	cancelUC       *ucBooking.CancelBooking
	listFirmUC     *ucBooking.ListFirmBookings
	listCustomerUC *ucBooking.ListCustomerBookings
}

func NewBookingHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	listFirmUC *ucBooking.ListFirmBookings,
	listCustomerUC *ucBooking.ListCustomerBookings,
) *BookingHandler {
	return &BookingHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cancelUC:       cancelUC,
		listFirmUC:     listFirmUC,
		listCustomerUC: listCustomerUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BookingTime    time.Time `json:"bookingTime" binding:"required"`
	NumberOfPeople int       `json:"numberOfPeople" binding:"required"`
	FirmID         uint      `json:"firmId" binding:"required"`
	MenuItemID     *uint     `json:"menuItemId"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	firmIDStr := c.Query("firmId")
	dateStr := c.Query("date")

	if firmIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "invalid_request", "firmId and date are required.")
		return
	}

	firmID, err := strconv.ParseUint(firmIDStr, 10, 64)
	if err != nil || firmID == 0 {
		httperr.BadRequest(c, "invalid_request", "firmId must be a positive integer.")
		return
	}

	var firm models.Firm
	if err := h.db.First(&firm, firmID).Error; err != nil {
		httperr.BadRequest(c, "firm_unavailable", "Firm not found or not configured for booking.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(firm.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			FirmID: uint(firmID),
			Date:   date,
		},
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "past_date"):
			httperr.BadRequest(c, "past_date", "The requested date is in the past.")
		case httperr.IsBusiness(err, "firm_unavailable"):
			httperr.BadRequest(c, "firm_unavailable", "Firm not found or not configured for booking.")
		default:
			httperr.Internal(c, "availability_failed", "Could not compute availability.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availableSlots": slots,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "bookingTime, numberOfPeople and firmId are required.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			CustomerID:     userID,
			Role:           role,
			FirmID:         req.FirmID,
			MenuItemID:     req.MenuItemID,
			BookingTime:    req.BookingTime,
			NumberOfPeople: req.NumberOfPeople,
		},
	)

	if err != nil {
		h.mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed.",
		"booking": b,
	})
}

func (h *BookingHandler) mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "forbidden"):
		httperr.Forbidden(c, "forbidden", "Only customers can book slots.")
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "This slot was just taken. Please pick another one.")
	case httperr.IsBusiness(err, "invalid_request"):
		httperr.BadRequest(c, "invalid_request", "bookingTime, numberOfPeople and firmId are required.")
	case httperr.IsBusiness(err, "invalid_party_size"):
		httperr.BadRequest(c, "invalid_party_size", "Bookings are limited to one person per slot.")
	case httperr.IsBusiness(err, "invalid_booking_time"):
		httperr.BadRequest(c, "invalid_booking_time", "bookingTime must start exactly on the hour.")
	case httperr.IsBusiness(err, "past_time"):
		httperr.BadRequest(c, "past_time", "bookingTime is in the past.")
	case httperr.IsBusiness(err, "outside_opening_hours"):
		httperr.BadRequest(c, "outside_opening_hours", "The firm is closed at this time.")
	case httperr.IsBusiness(err, "menu_item_not_found"):
		httperr.BadRequest(c, "menu_item_not_found", "Menu item not found for this firm.")
	case httperr.IsBusiness(err, "firm_unavailable"):
		httperr.BadRequest(c, "firm_unavailable", "Firm not found or not configured for booking.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
	}
}

// ======================================================
// LIST (customer)
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listCustomerUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// LIST (firm, owner/admin)
// ======================================================

func (h *BookingHandler) ListForFirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	firmID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid firm id.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	bookings, err := h.listFirmUC.Execute(
		c.Request.Context(),
		userID,
		role,
		uint(firmID),
		date,
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "firm_not_found"):
			httperr.NotFound(c, "firm_not_found", "Firm not found.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "You do not manage this firm.")
		default:
			httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		}
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL (delete)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(
		c.Request.Context(),
		userID,
		role,
		uint(bookingID),
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "You cannot cancel this booking.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "This booking can no longer be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled.",
		"booking": b,
	})
}
