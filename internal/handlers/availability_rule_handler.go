package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/models"
)

type AvailabilityRuleHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewAvailabilityRuleHandler(
	db *gorm.DB,
	slotCache *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) *AvailabilityRuleHandler {
	return &AvailabilityRuleHandler{
		db:    db,
		cache: slotCache,
		audit: auditDispatcher,
	}
}

type AvailabilityRuleRequest struct {
	StartHour       int `json:"start_hour"`
	EndHour         int `json:"end_hour"`
	SlotIntervalMin int `json:"slot_interval_min"`
	BufferMin       int `json:"buffer_min"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

func (h *AvailabilityRuleHandler) Get(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var rule models.AvailabilityRule
	if err := h.db.
		Where("provider_id = ? AND active = true", providerID).
		Order("id DESC").
		First(&rule).Error; err != nil {

		httperr.NotFound(c, "rule_not_found", "Regra de disponibilidade não configurada.")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// Put substitui a regra ativa: a anterior é desativada, nunca
// apagada — agendamentos confirmados não são invalidados
func (h *AvailabilityRuleHandler) Put(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req AvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// valida com o mesmo código do núcleo, antes de tocar o banco
	candidate := avail.Rule{
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
		SlotInterval: req.SlotIntervalMin,
		Buffer:       req.BufferMin,
		Monday:       req.Monday,
		Tuesday:      req.Tuesday,
		Wednesday:    req.Wednesday,
		Thursday:     req.Thursday,
		Friday:       req.Friday,
		Saturday:     req.Saturday,
		Sunday:       req.Sunday,
		LunchStart:   req.LunchStart,
		LunchEnd:     req.LunchEnd,
		Active:       true,
	}
	if err := candidate.Validate(); err != nil {
		httperr.Unprocessable(c, "invalid_rule_configuration", err.Error())
		return
	}

	rule := models.AvailabilityRule{
		ProviderID:      providerID,
		StartHour:       req.StartHour,
		EndHour:         req.EndHour,
		SlotIntervalMin: req.SlotIntervalMin,
		BufferMin:       req.BufferMin,
		Monday:          req.Monday,
		Tuesday:         req.Tuesday,
		Wednesday:       req.Wednesday,
		Thursday:        req.Thursday,
		Friday:          req.Friday,
		Saturday:        req.Saturday,
		Sunday:          req.Sunday,
		LunchStart:      req.LunchStart,
		LunchEnd:        req.LunchEnd,
		Active:          true,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AvailabilityRule{}).
			Where("provider_id = ? AND active = true", providerID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&rule).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_rule", "Erro ao salvar regra.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "availability_rule_replaced",
		Entity:     "availability_rule",
		EntityID:   &rule.ID,
	})

	c.JSON(http.StatusOK, rule)
}
