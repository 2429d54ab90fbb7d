package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/slotwise/booking-marketplace/internal/audit"
	"github.com/slotwise/booking-marketplace/internal/cache"
	"github.com/slotwise/booking-marketplace/internal/config"
	"github.com/slotwise/booking-marketplace/internal/handlers"
	infraRepo "github.com/slotwise/booking-marketplace/internal/infra/repository"
	"github.com/slotwise/booking-marketplace/internal/middleware"
	"github.com/slotwise/booking-marketplace/internal/models"
	ucBooking "github.com/slotwise/booking-marketplace/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availCache *cache.Availability,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		availCache,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	listFirmBookingsUC := ucBooking.NewListFirmBookings(
		bookingRepo,
	)

	listCustomerBookingsUC := ucBooking.NewListCustomerBookings(
		bookingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	firmHandler := handlers.NewFirmHandler(db, auditDispatcher, availCache)
	menuItemHandler := handlers.NewMenuItemHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		db,
		availabilityUC,
		createBookingUC,
		cancelBookingUC,
		listFirmBookingsUC,
		listCustomerBookingsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BROWSE
		// ------------------------------
		api.GET("/firms", firmHandler.List)
		api.GET("/firms/:id", firmHandler.Get)
		api.GET("/firms/:id/menu-items", firmHandler.ListMenuItems)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings/available", bookingHandler.Availability)
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)

			secured.GET("/firms/:id/bookings", bookingHandler.ListForFirm)

			// ------------------------------
			// FIRM MANAGEMENT (owners)
			// ------------------------------
			owners := secured.Group("/")
			owners.Use(middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
			{
				owners.GET("/me/firms", firmHandler.ListMine)
				owners.POST("/firms", firmHandler.Create)
				owners.PATCH("/firms/:id", firmHandler.Update)

				owners.POST("/firms/:id/menu-items", menuItemHandler.Create)
				owners.PATCH("/menu-items/:id", menuItemHandler.Update)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
