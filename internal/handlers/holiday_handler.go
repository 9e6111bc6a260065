package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/models"
)

type HolidayHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewHolidayHandler(
	db *gorm.DB,
	slotCache *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) *HolidayHandler {
	return &HolidayHandler{
		db:    db,
		cache: slotCache,
		audit: auditDispatcher,
	}
}

type HolidayRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsRecurring bool   `json:"is_recurring"`
}

func (h *HolidayHandler) List(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var holidays []models.Holiday
	if err := h.db.
		Where("provider_id = ? AND is_active = true", providerID).
		Order("holiday_date ASC").
		Find(&holidays).Error; err != nil {

		httperr.Internal(c, "failed_to_list_holidays", "Erro ao listar feriados.")
		return
	}

	httpresp.List(c, holidays)
}

func (h *HolidayHandler) Create(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	// a data do feriado vive no fuso do prestador
	date, err := parseDateInProvider(&provider, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	holiday := models.Holiday{
		ProviderID:  providerID,
		HolidayDate: date,
		Title:       req.Title,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		IsActive:    true,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Erro ao criar feriado.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "holiday_created",
		Entity:     "holiday",
		EntityID:   &holiday.ID,
	})

	httpresp.Created(c, holiday)
}

func (h *HolidayHandler) Deactivate(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	holidayID := idFromParam(c, "holidayID")
	if holidayID == 0 {
		return
	}

	var holiday models.Holiday
	if err := h.db.
		Where("id = ? AND provider_id = ?", holidayID, providerID).
		First(&holiday).Error; err != nil {

		httperr.NotFound(c, "holiday_not_found", "Feriado não encontrado.")
		return
	}

	if err := h.db.Model(&holiday).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_deactivate_holiday", "Erro ao desativar feriado.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "holiday_deactivated",
		Entity:     "holiday",
		EntityID:   &holiday.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
