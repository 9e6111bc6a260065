package appointment

import (
	"context"
	"time"

	"github.com/agendahub/agenda-api/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	GetProviderBySlug(
		ctx context.Context,
		slug string,
	) (*models.Provider, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		providerID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		providerID uint,
		name string,
		whatsapp string,
		email string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	FindAppointmentByIdempotencyKey(
		ctx context.Context,
		providerID uint,
		key string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Snapshot de disponibilidade --------
	// leitura única e consistente das linhas que alimentam o núcleo

	GetActiveRule(
		ctx context.Context,
		providerID uint,
	) (*models.AvailabilityRule, error)

	ListActiveBlocks(
		ctx context.Context,
		ruleID uint,
	) ([]models.TimeBlock, error)

	ListActiveHolidays(
		ctx context.Context,
		providerID uint,
	) ([]models.Holiday, error)

	ListBookingsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
