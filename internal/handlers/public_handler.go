package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/dto"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/models"
	ucAppointment "github.com/agendahub/agenda-api/internal/usecase/appointment"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
	"github.com/agendahub/agenda-api/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	computeSlots *ucAvailability.ComputeSlots
	createAppt   *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	computeSlots *ucAvailability.ComputeSlots,
	createAppt *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		computeSlots: computeSlots,
		createAppt:   createAppt,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientWhatsApp string `json:"client_whatsapp" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotency_key"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("provider_id = ? AND active = true", provider.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	days := 1
	if daysStr := c.Query("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n < 1 {
			httperr.BadRequest(c, "invalid_days", "Quantidade de dias inválida.")
			return
		}
		days = n
	}

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	date, err := parseDateInProvider(&provider, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	result, err := h.computeSlots.Execute(
		c.Request.Context(),
		ucAvailability.ComputeSlotsInput{
			ProviderID: provider.ID,
			From:       date,
			Days:       days,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "range_too_large") {
			httperr.BadRequest(c, "range_too_large", "Período consultado muito longo.")
			return
		}
		if httperr.IsBusiness(err, "invalid_rule_configuration") {
			httperr.BadRequest(c, "invalid_rule_configuration", "Regra de disponibilidade mal configurada.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider.Slug,
		"days":     daySlotsToDTO(result),
	})
}

func daySlotsToDTO(in []ucAvailability.DaySlots) []dto.DaySlotsDTO {
	out := make([]dto.DaySlotsDTO, 0, len(in))
	for _, day := range in {
		slots := make([]dto.SlotDTO, 0, len(day.Slots))
		for _, s := range day.Slots {
			slots = append(slots, dto.SlotDTO{
				Start: s.Start.Format("15:04"),
				End:   s.End.Format("15:04"),
			})
		}
		out = append(out, dto.DaySlotsDTO{
			Date:  day.Date.Format("2006-01-02"),
			Slots: slots,
		})
	}
	return out
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC → REUSA O USE CASE PRIVADO)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// e-mail é opcional, mas se veio precisa ter domínio real
	if req.ClientEmail != "" && !validators.IsEmailDomainValid(req.ClientEmail) {
		httperr.BadRequest(c, "invalid_email", "E-mail com domínio inválido.")
		return
	}

	ap, err := h.createAppt.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ProviderID:     provider.ID,
			ClientName:     req.ClientName,
			ClientWhatsApp: req.ClientWhatsApp,
			ClientEmail:    req.ClientEmail,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			IdempotencyKey: req.IdempotencyKey,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// mapCreateErrors traduz códigos de negócio da criação para HTTP
func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "provider_not_found"):
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Horário muito próximo, escolha outro.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Horário fora do expediente.")
	case httperr.IsBusiness(err, "time_blocked"):
		httperr.BadRequest(c, "time_blocked", "Horário bloqueado ou feriado.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "Horário já ocupado.")
	case httperr.IsBusiness(err, "invalid_rule_configuration"):
		httperr.BadRequest(c, "invalid_rule_configuration", "Regra de disponibilidade mal configurada.")
	default:
		httperr.Internal(c, "appointment_failed", "Erro ao criar agendamento.")
	}
}
