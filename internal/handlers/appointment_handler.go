package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/dto"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/models"
	ucAppointment "github.com/agendahub/agenda-api/internal/usecase/appointment"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER — agenda do prestador
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	db *gorm.DB

	createAppt   *ucAppointment.CreateAppointment
	confirmAppt  *ucAppointment.ConfirmAppointment
	cancelAppt   *ucAppointment.CancelAppointment
	completeAppt *ucAppointment.CompleteAppointment

	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth

	validateBooking *ucAvailability.ValidateBooking
}

func NewAppointmentHandler(
	db *gorm.DB,
	createAppt *ucAppointment.CreateAppointment,
	confirmAppt *ucAppointment.ConfirmAppointment,
	cancelAppt *ucAppointment.CancelAppointment,
	completeAppt *ucAppointment.CompleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	validateBooking *ucAvailability.ValidateBooking,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:              db,
		createAppt:      createAppt,
		confirmAppt:     confirmAppt,
		cancelAppt:      cancelAppt,
		completeAppt:    completeAppt,
		listByDate:      listByDate,
		listByMonth:     listByMonth,
		validateBooking: validateBooking,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateAppointmentRequest struct {
	ClientName     string `json:"client_name" binding:"required"`
	ClientWhatsApp string `json:"client_whatsapp" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotency_key"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type ValidateBookingRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:mm
	Duration int    `json:"duration_min" binding:"required"`
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Create(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createAppt.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			ProviderID:     providerID,
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

////////////////////////////////////////////////////////
// VALIDATE (janela livre, sem grade)
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Validate(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	var req ValidateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Duration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração deve ser positiva.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	start, err := parseDateTimeInProvider(&provider, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}
	end := start.Add(time.Duration(req.Duration) * time.Minute)

	out, err := h.validateBooking.Execute(
		c.Request.Context(),
		ucAvailability.ValidateBookingInput{
			ProviderID: providerID,
			Start:      start,
			End:        end,
		},
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_interval"):
			httperr.BadRequest(c, "invalid_interval", "Janela inválida.")
		case httperr.IsBusiness(err, "invalid_rule_configuration"):
			httperr.BadRequest(c, "invalid_rule_configuration", "Regra de disponibilidade mal configurada.")
		default:
			httperr.Internal(c, "validation_failed", "Erro ao validar horário.")
		}
		return
	}

	c.JSON(http.StatusOK, dto.BookableDTO{
		Bookable: out.Bookable,
		Reason:   string(out.Reason),
	})
}

////////////////////////////////////////////////////////
// LISTAGEM
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
		return
	}

	date, err := parseDateInProvider(&provider, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := h.listByMonth.Execute(
		c.Request.Context(),
		providerID,
		year,
		time.Month(month),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}

////////////////////////////////////////////////////////
// TRANSIÇÕES DE STATUS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	appointmentID := idFromParam(c, "appointmentID")
	if appointmentID == 0 {
		return
	}

	ap, err := h.confirmAppt.Execute(c.Request.Context(), providerID, appointmentID)
	if err != nil {
		mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	appointmentID := idFromParam(c, "appointmentID")
	if appointmentID == 0 {
		return
	}

	var req CancelAppointmentRequest
	// corpo opcional: cancelar sem motivo é permitido
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelAppt.Execute(c.Request.Context(), providerID, appointmentID, req.Reason)
	if err != nil {
		mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	providerID := providerIDFromParam(c)
	if providerID == 0 {
		return
	}

	appointmentID := idFromParam(c, "appointmentID")
	if appointmentID == 0 {
		return
	}

	ap, err := h.completeAppt.Execute(c.Request.Context(), providerID, appointmentID)
	if err != nil {
		mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func mapStatusErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "provider_not_found"):
		httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Conflict(c, "invalid_state", "Transição de status inválida.")
	default:
		httperr.Internal(c, "appointment_failed", "Erro ao atualizar agendamento.")
	}
}
