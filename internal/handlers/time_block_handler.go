package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/models"
)

type TimeBlockHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewTimeBlockHandler(
	db *gorm.DB,
	slotCache *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) *TimeBlockHandler {
	return &TimeBlockHandler{
		db:    db,
		cache: slotCache,
		audit: auditDispatcher,
	}
}

type TimeBlockRequest struct {
	BlockType string `json:"block_type" binding:"required"`

	StartDatetime time.Time `json:"start_datetime" binding:"required"`
	EndDatetime   time.Time `json:"end_datetime" binding:"required"`

	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`

	IsRecurring      bool   `json:"is_recurring"`
	RecurringPattern string `json:"recurring_pattern"`
}

func validBlockType(t string) bool {
	switch avail.BlockType(t) {
	case avail.BlockHoliday, avail.BlockMaintenance, avail.BlockPersonal, avail.BlockRecurring:
		return true
	}
	return false
}

func validPattern(p string) bool {
	switch avail.RecurringPattern(p) {
	case avail.PatternDaily, avail.PatternWeekly, avail.PatternMonthly:
		return true
	}
	return false
}

func (h *TimeBlockHandler) List(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	rule, ok := h.activeRule(c, providerID)
	if !ok {
		return
	}

	var blocks []models.TimeBlock
	if err := h.db.
		Where("availability_rule_id = ? AND is_active = true", rule.ID).
		Order("start_datetime ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *TimeBlockHandler) Create(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req TimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// enums validados na borda: o núcleo assume entrada bem formada,
	// exceto pelo fallback documentado de padrão desconhecido
	if !validBlockType(req.BlockType) {
		httperr.BadRequest(c, "invalid_block_type", "Tipo de bloqueio inválido.")
		return
	}
	if req.IsRecurring && !validPattern(req.RecurringPattern) {
		httperr.BadRequest(c, "invalid_recurring_pattern", "Padrão de recorrência inválido.")
		return
	}
	if !req.StartDatetime.Before(req.EndDatetime) {
		httperr.BadRequest(c, "invalid_interval", "Início deve ser antes do fim.")
		return
	}

	rule, ok := h.activeRule(c, providerID)
	if !ok {
		return
	}

	block := models.TimeBlock{
		AvailabilityRuleID: rule.ID,
		BlockType:          req.BlockType,
		StartDatetime:      req.StartDatetime,
		EndDatetime:        req.EndDatetime,
		Title:              req.Title,
		Description:        req.Description,
		IsRecurring:        req.IsRecurring,
		RecurringPattern:   req.RecurringPattern,
		IsActive:           true,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "time_block_created",
		Entity:     "time_block",
		EntityID:   &block.ID,
	})

	httpresp.Created(c, block)
}

// Deactivate é o soft-delete: o bloqueio some do cálculo mas fica
// no histórico
func (h *TimeBlockHandler) Deactivate(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	blockID := idFromParam(c, "blockID")
	if blockID == 0 {
		return
	}

	rule, ok := h.activeRule(c, providerID)
	if !ok {
		return
	}

	var block models.TimeBlock
	if err := h.db.
		Where("id = ? AND availability_rule_id = ?", blockID, rule.ID).
		First(&block).Error; err != nil {

		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	if err := h.db.Model(&block).Update("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_deactivate_block", "Erro ao desativar bloqueio.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	h.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		Action:     "time_block_deactivated",
		Entity:     "time_block",
		EntityID:   &block.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TimeBlockHandler) activeRule(c *gin.Context, providerID uint) (*models.AvailabilityRule, bool) {
	var rule models.AvailabilityRule
	if err := h.db.
		Where("provider_id = ? AND active = true", providerID).
		Order("id DESC").
		First(&rule).Error; err != nil {

		httperr.NotFound(c, "rule_not_found", "Regra de disponibilidade não configurada.")
		return nil, false
	}
	return &rule, true
}
