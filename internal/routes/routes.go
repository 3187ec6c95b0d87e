package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/config"
	"github.com/visabridge/agent-scheduler/internal/handlers"
	infraRepo "github.com/visabridge/agent-scheduler/internal/infra/repository"
	"github.com/visabridge/agent-scheduler/internal/middleware"
	ucAvailability "github.com/visabridge/agent-scheduler/internal/usecase/availability"
	ucBooking "github.com/visabridge/agent-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	slotCache := cache.New(cache.NewClient(cfg.RedisURL))

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	getWeekUC := ucAvailability.NewGetWeek(schedulingRepo)
	setWeekUC := ucAvailability.NewSetWeek(schedulingRepo, auditDispatcher, slotCache)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(schedulingRepo, slotCache)

	createBookingUC := ucBooking.NewCreateBooking(
		schedulingRepo,
		auditDispatcher,
		slotCache,
		cfg.AutoConfirm,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		schedulingRepo,
		auditDispatcher,
		slotCache,
	)

	cancelByRefUC := ucBooking.NewCancelByReference(
		schedulingRepo,
		auditDispatcher,
		slotCache,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(schedulingRepo, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteBooking(schedulingRepo, auditDispatcher)
	noShowUC := ucBooking.NewMarkNoShow(schedulingRepo, auditDispatcher)

	rescheduleUC := ucBooking.NewRescheduleBooking(
		schedulingRepo,
		auditDispatcher,
		slotCache,
	)

	listByDateUC := ucBooking.NewListBookingsByDate(schedulingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(getWeekUC, setWeekUC)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		confirmBookingUC,
		completeBookingUC,
		noShowUC,
		rescheduleUC,
		listByDateUC,
		listByMonthUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		getSlotsUC,
		createBookingUC,
		cancelByRefUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (client booking flow)
		// ------------------------------
		api.GET("/agents/:agentID/services", publicHandler.ListServices)
		api.GET("/agents/:agentID/availability", availabilityHandler.Get)
		api.GET("/agents/:agentID/slots", publicHandler.Slots)
		api.POST("/bookings", publicHandler.CreateBooking)
		api.DELETE("/bookings/:reference", publicHandler.CancelBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE (agent back-office)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/profile", meHandler.GetProfile)
			secured.PATCH("/me/profile", meHandler.UpdateProfile)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.PUT("/agents/:agentID/availability", availabilityHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/no-show", bookingHandler.NoShow)
			secured.POST("/me/bookings/:id/reschedule", bookingHandler.Reschedule)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
