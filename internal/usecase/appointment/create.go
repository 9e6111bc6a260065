package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	"github.com/agendahub/agenda-api/internal/cache"
	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	domain "github.com/agendahub/agenda-api/internal/domain/appointment"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/models"
	"github.com/agendahub/agenda-api/internal/timezone"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint

	ClientName     string
	ClientWhatsApp string
	ClientEmail    string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// chave opcional do chamador; repetir a mesma chave devolve
	// o agendamento já criado em vez de duplicar
	IdempotencyKey string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	validate *ucAvailability.ValidateBooking
	cache    *cache.Cache
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	validate *ucAvailability.ValidateBooking,
	slotCache *cache.Cache,
	auditDispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		validate: validate,
		cache:    slotCache,
		audit:    auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Prestador
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	// --------------------------------------------------
	// 2. Data / hora no fuso do prestador
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(provider.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Antecedência mínima
	// --------------------------------------------------
	minAdvance := provider.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(provider.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Serviço define a duração da janela
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ProviderID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 5. Idempotência
	// --------------------------------------------------
	var idemKey string
	if in.IdempotencyKey != "" {
		idemKey = uuid.NewSHA1(
			uuid.NameSpaceOID,
			[]byte("agenda:create_appointment:"+in.Date+":"+in.IdempotencyKey),
		).String()

		existing, err := uc.repo.FindAppointmentByIdempotencyKey(ctx, in.ProviderID, idemKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6. Janela liberada? (expediente, bloqueios, feriados, buffer)
	// --------------------------------------------------
	result, err := uc.validate.Execute(ctx, ucAvailability.ValidateBookingInput{
		ProviderID: in.ProviderID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, err
	}
	if !result.Bookable {
		return nil, businessReason(result.Reason)
	}

	// --------------------------------------------------
	// 7. Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ProviderID,
		in.ClientName,
		in.ClientWhatsApp,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Criação (status centralizado no domínio)
	// --------------------------------------------------
	ap := &models.Appointment{
		ProviderID:     in.ProviderID,
		ClientID:       client.ID,
		ServiceID:      service.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
		IdempotencyKey: idemKey,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Cache + auditoria
	// --------------------------------------------------
	uc.cache.InvalidateProvider(ctx, in.ProviderID)

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// businessReason traduz o motivo do validador para o código de
// negócio que o handler expõe
func businessReason(reason avail.Reason) error {
	switch reason {
	case avail.ReasonOutsideHours:
		return httperr.ErrBusiness("outside_working_hours")
	case avail.ReasonExcluded:
		return httperr.ErrBusiness("time_blocked")
	case avail.ReasonConflict:
		return httperr.ErrBusiness("time_conflict")
	default:
		return httperr.ErrBusiness("not_bookable")
	}
}
