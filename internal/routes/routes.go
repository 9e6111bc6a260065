package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	"github.com/agendahub/agenda-api/internal/config"
	"github.com/agendahub/agenda-api/internal/handlers"
	infraRepo "github.com/agendahub/agenda-api/internal/infra/repository"
	"github.com/agendahub/agenda-api/internal/middleware"
	ucAppointment "github.com/agendahub/agenda-api/internal/usecase/appointment"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
)

// RegisterRoutes monta toda a árvore de rotas e devolve o use case de
// cálculo de slots para o warming reaproveitar
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	slotCache *cache.Cache,
	log *zap.Logger,
) *ucAvailability.ComputeSlots {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// 🧠 USE CASES — AVAILABILITY
	// ======================================================
	computeSlotsUC := ucAvailability.NewComputeSlots(
		appointmentRepo,
		slotCache,
		log,
		cfg.SlotWorkers,
		cfg.MaxHorizonDays,
	)

	validateBookingUC := ucAvailability.NewValidateBooking(
		appointmentRepo,
		log,
		cfg.MaxHorizonDays,
	)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		validateBookingUC,
		slotCache,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(db, computeSlotsUC, createAppointmentUC)

	availabilityRuleHandler := handlers.NewAvailabilityRuleHandler(db, slotCache, auditDispatcher)
	timeBlockHandler := handlers.NewTimeBlockHandler(db, slotCache, auditDispatcher)
	holidayHandler := handlers.NewHolidayHandler(db, slotCache, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, slotCache, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		validateBookingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	cacheHandler := handlers.NewCacheHandler(slotCache)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (por slug)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔧 API DO PRESTADOR
		// ------------------------------
		provider := api.Group("/providers/:providerID")
		{
			provider.GET("/availability-rule", availabilityRuleHandler.Get)
			provider.PUT("/availability-rule", availabilityRuleHandler.Put)

			provider.GET("/time-blocks", timeBlockHandler.List)
			provider.POST("/time-blocks", timeBlockHandler.Create)
			provider.DELETE("/time-blocks/:blockID", timeBlockHandler.Deactivate)

			provider.GET("/holidays", holidayHandler.List)
			provider.POST("/holidays", holidayHandler.Create)
			provider.DELETE("/holidays/:holidayID", holidayHandler.Deactivate)

			provider.GET("/services", serviceHandler.List)
			provider.POST("/services", serviceHandler.Create)
			provider.PATCH("/services/:serviceID", serviceHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			provider.POST("/appointments", appointmentHandler.Create)
			provider.POST("/appointments/validate", appointmentHandler.Validate)
			provider.GET("/appointments", appointmentHandler.ListByDate)
			provider.GET("/appointments/month", appointmentHandler.ListByMonth)
			provider.PATCH("/appointments/:appointmentID/confirm", appointmentHandler.Confirm)
			provider.PATCH("/appointments/:appointmentID/cancel", appointmentHandler.Cancel)
			provider.PATCH("/appointments/:appointmentID/complete", appointmentHandler.Complete)

			provider.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// 📊 OPERACIONAL
		// ------------------------------
		api.GET("/cache/stats", cacheHandler.Stats)
	}

	return computeSlotsUC
}
