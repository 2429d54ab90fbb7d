package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotwise/booking-marketplace/internal/audit"
	"github.com/slotwise/booking-marketplace/internal/cache"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/httpresp"
	"github.com/slotwise/booking-marketplace/internal/middleware"
	"github.com/slotwise/booking-marketplace/internal/models"
	"github.com/slotwise/booking-marketplace/internal/validators"
)

type FirmHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewFirmHandler(db *gorm.DB, audit *audit.Dispatcher, availCache *cache.Availability) *FirmHandler {
	return &FirmHandler{db: db, audit: audit, cache: availCache}
}

// --------- Requests ---------

type CreateFirmRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Category    string `json:"category"`

	OpeningHours string `json:"opening_hours"`
	Timezone     string `json:"timezone"`
}

type UpdateFirmRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Category     *string `json:"category,omitempty"`
	OpeningHours *string `json:"opening_hours,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
}

// --------- Public browse ---------

func (h *FirmHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Firm{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var firms []models.Firm
	if err := q.Order("id ASC").Find(&firms).Error; err != nil {
		httperr.Internal(c, "failed_to_list_firms", "Could not list firms.")
		return
	}

	httpresp.List(c, firms)
}

func (h *FirmHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var firm models.Firm
	if err := h.db.First(&firm, id).Error; err != nil {
		httperr.NotFound(c, "firm_not_found", "Firm not found.")
		return
	}

	c.JSON(http.StatusOK, firm)
}

func (h *FirmHandler) ListMenuItems(c *gin.Context) {
	id := c.Param("id")

	var firm models.Firm
	if err := h.db.First(&firm, id).Error; err != nil {
		httperr.NotFound(c, "firm_not_found", "Firm not found.")
		return
	}

	var items []models.MenuItem
	if err := h.db.
		Where("firm_id = ? AND active = ?", firm.ID, true).
		Order("id ASC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_menu_items", "Could not list menu items.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"firm":       firm,
		"menu_items": items,
	})
}

// --------- Owner CRUD ---------

func (h *FirmHandler) ListMine(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var firms []models.Firm
	if err := h.db.
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&firms).Error; err != nil {
		httperr.Internal(c, "failed_to_list_firms", "Could not list firms.")
		return
	}

	httpresp.List(c, firms)
}

func (h *FirmHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !validators.IsOpeningHoursValid(req.OpeningHours) {
		httperr.BadRequest(c, "invalid_opening_hours", "Opening hours must be \"HH:MM-HH:MM\" with open before close.")
		return
	}

	if !validators.IsTimezoneValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Firm{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "A firm with this slug already exists.")
		return
	}

	firm := models.Firm{
		OwnerID:      ownerID,
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		Phone:        req.Phone,
		Address:      req.Address,
		Category:     strings.ToLower(req.Category),
		OpeningHours: req.OpeningHours,
		Timezone:     req.Timezone,
	}

	if err := h.db.Create(&firm).Error; err != nil {
		httperr.Internal(c, "failed_to_create_firm", "Could not create firm.")
		return
	}

	h.audit.Dispatch(audit.Event{
		FirmID:   firm.ID,
		UserID:   &ownerID,
		Action:   "firm_created",
		Entity:   "firm",
		EntityID: &firm.ID,
	})

	c.JSON(http.StatusCreated, firm)
}

func (h *FirmHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	id := c.Param("id")

	var firm models.Firm
	if err := h.db.First(&firm, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "firm_not_found", "Firm not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_firm", "Could not load firm.")
		return
	}

	if role != models.RoleAdmin && firm.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not manage this firm.")
		return
	}

	var req UpdateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.OpeningHours != nil && !validators.IsOpeningHoursValid(*req.OpeningHours) {
		httperr.BadRequest(c, "invalid_opening_hours", "Opening hours must be \"HH:MM-HH:MM\" with open before close.")
		return
	}

	if req.Timezone != nil && !validators.IsTimezoneValid(*req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	if req.Name != nil {
		firm.Name = *req.Name
	}
	if req.Description != nil {
		firm.Description = *req.Description
	}
	if req.Phone != nil {
		firm.Phone = *req.Phone
	}
	if req.Address != nil {
		firm.Address = *req.Address
	}
	if req.Category != nil {
		firm.Category = strings.ToLower(*req.Category)
	}
	slotsShifted := false
	if req.OpeningHours != nil && *req.OpeningHours != firm.OpeningHours {
		firm.OpeningHours = *req.OpeningHours
		slotsShifted = true
	}
	if req.Timezone != nil && *req.Timezone != firm.Timezone {
		firm.Timezone = *req.Timezone
		slotsShifted = true
	}

	if err := h.db.Save(&firm).Error; err != nil {
		httperr.Internal(c, "failed_to_update_firm", "Could not update firm.")
		return
	}

	if slotsShifted {
		h.cache.InvalidateFirm(c.Request.Context(), firm.ID)
	}

	h.audit.Dispatch(audit.Event{
		FirmID:   firm.ID,
		UserID:   &userID,
		Action:   "firm_updated",
		Entity:   "firm",
		EntityID: &firm.ID,
	})

	c.JSON(http.StatusOK, firm)
}
