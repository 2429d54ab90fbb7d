package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotwise/booking-marketplace/internal/audit"
	"github.com/slotwise/booking-marketplace/internal/httperr"
	"github.com/slotwise/booking-marketplace/internal/middleware"
	"github.com/slotwise/booking-marketplace/internal/models"
)

type MenuItemHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMenuItemHandler(db *gorm.DB, audit *audit.Dispatcher) *MenuItemHandler {
	return &MenuItemHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

// --------- Handlers ---------

// firmManagedBy loads the firm and checks that the caller may edit it.
func (h *MenuItemHandler) firmManagedBy(c *gin.Context, firmID string) (*models.Firm, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var firm models.Firm
	if err := h.db.First(&firm, firmID).Error; err != nil {
		httperr.NotFound(c, "firm_not_found", "Firm not found.")
		return nil, false
	}

	if role != models.RoleAdmin && firm.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not manage this firm.")
		return nil, false
	}

	return &firm, true
}

func (h *MenuItemHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	firm, ok := h.firmManagedBy(c, c.Param("id"))
	if !ok {
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	item := models.MenuItem{
		FirmID:      firm.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
		Category:    strings.ToLower(req.Category),
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_menu_item", "Could not create menu item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		FirmID:   firm.ID,
		UserID:   &userID,
		Action:   "menu_item_created",
		Entity:   "menu_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusCreated, item)
}

func (h *MenuItemHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	id := c.Param("id")

	var item models.MenuItem
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "menu_item_not_found", "Menu item not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_menu_item", "Could not load menu item.")
		return
	}

	var firm models.Firm
	if err := h.db.First(&firm, item.FirmID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_firm", "Could not load firm.")
		return
	}

	if role != models.RoleAdmin && firm.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not manage this firm.")
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.Category != nil {
		item.Category = strings.ToLower(*req.Category)
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_menu_item", "Could not update menu item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		FirmID:   firm.ID,
		UserID:   &userID,
		Action:   "menu_item_updated",
		Entity:   "menu_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusOK, item)
}
