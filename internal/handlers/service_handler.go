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

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewServiceHandler(
	db *gorm.DB,
	slotCache *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) *ServiceHandler {
	return &ServiceHandler{
		db:    db,
		cache: slotCache,
		audit: auditDispatcher,
	}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva.")
		return
	}

	service := models.Service{
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "service_created",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	serviceID := idFromParam(c, "serviceID")
	if serviceID == 0 {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.Category = req.Category
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	// duração do serviço muda o fim dos agendamentos futuros
	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "service_updated",
		Entity:     "service",
		EntityID:   &service.ID,
	})

	c.JSON(http.StatusOK, service)
}
