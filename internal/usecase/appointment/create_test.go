package appointment

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/agendahub/agenda-api/internal/domain/appointment"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/models"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	provider *models.Provider
	service  *models.Service
	rule     *models.AvailabilityRule

	nextID  uint
	created []models.Appointment
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetProviderByID(_ context.Context, id uint) (*models.Provider, error) {
	if f.provider == nil || f.provider.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.provider, nil
}

func (f *fakeRepo) GetProviderBySlug(_ context.Context, slug string) (*models.Provider, error) {
	if f.provider == nil || f.provider.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return f.provider, nil
}

func (f *fakeRepo) GetService(_ context.Context, providerID, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.ProviderID != providerID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.service, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, providerID uint, name, whatsapp, email string) (*models.Client, error) {
	return &models.Client{ID: 7, ProviderID: providerID, Name: name, WhatsApp: whatsapp, Email: email}, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	f.created = append(f.created, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForProvider(_ context.Context, appointmentID, providerID uint) (*models.Appointment, error) {
	for i := range f.created {
		if f.created[i].ID == appointmentID && f.created[i].ProviderID == providerID {
			return &f.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAppointmentByIdempotencyKey(_ context.Context, providerID uint, key string) (*models.Appointment, error) {
	for i := range f.created {
		if f.created[i].ProviderID == providerID && f.created[i].IdempotencyKey == key {
			return &f.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.created {
		if f.created[i].ID == ap.ID {
			f.created[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return f.created, nil
}

func (f *fakeRepo) GetActiveRule(_ context.Context, _ uint) (*models.AvailabilityRule, error) {
	if f.rule == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.rule, nil
}

func (f *fakeRepo) ListActiveBlocks(_ context.Context, _ uint) ([]models.TimeBlock, error) {
	return nil, nil
}

func (f *fakeRepo) ListActiveHolidays(_ context.Context, _ uint) ([]models.Holiday, error) {
	return nil, nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.created {
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// ======================================================
// FIXTURES
// ======================================================

func fixtureRepo() *fakeRepo {
	return &fakeRepo{
		provider: &models.Provider{
			ID:                1,
			Slug:              "studio-teste",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
			Active:            true,
		},
		service: &models.Service{
			ID:          3,
			ProviderID:  1,
			Name:        "Corte",
			DurationMin: 30,
			Active:      true,
		},
		rule: &models.AvailabilityRule{
			ID:              1,
			ProviderID:      1,
			StartHour:       8,
			EndHour:         18,
			SlotIntervalMin: 30,
			BufferMin:       15,
			Monday:          true,
			Tuesday:         true,
			Wednesday:       true,
			Thursday:        true,
			Friday:          true,
			Active:          true,
		},
	}
}

func newCreate(repo *fakeRepo) *CreateAppointment {
	validate := ucAvailability.NewValidateBooking(repo, zap.NewNop(), 36500)
	return NewCreateAppointment(repo, validate, nil, nil)
}

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ProviderID:     1,
		ClientName:     "Maria",
		ClientWhatsApp: "+5511999990000",
		ServiceID:      3,
		Date:           "2030-04-09", // terça
		Time:           "14:00",
	}
}

// ======================================================
// TESTES
// ======================================================

func TestCreateAppointmentHappyPath(t *testing.T) {
	repo := fixtureRepo()
	uc := newCreate(repo)

	ap, err := uc.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("status inicial = %s", ap.Status)
	}
	if !ap.StartTime.Equal(time.Date(2030, 4, 9, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", ap.StartTime)
	}
	// duração vem do serviço
	if !ap.EndTime.Equal(time.Date(2030, 4, 9, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", ap.EndTime)
	}
	if len(repo.created) != 1 {
		t.Fatalf("%d agendamentos persistidos", len(repo.created))
	}
}

func TestCreateAppointmentTooSoon(t *testing.T) {
	uc := newCreate(fixtureRepo())

	in := baseInput()
	in.Date = time.Now().UTC().Format("2006-01-02")
	in.Time = time.Now().UTC().Add(10 * time.Minute).Format("15:04")

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("esperado too_soon, veio %v", err)
	}
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	uc := newCreate(fixtureRepo())

	in := baseInput()
	in.Time = "22:00"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "outside_working_hours") {
		t.Fatalf("esperado outside_working_hours, veio %v", err)
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	repo := fixtureRepo()
	uc := newCreate(repo)

	if _, err := uc.Execute(context.Background(), baseInput()); err != nil {
		t.Fatalf("primeiro agendamento: %v", err)
	}

	// mesma janela de novo
	_, err := uc.Execute(context.Background(), baseInput())
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("esperado time_conflict, veio %v", err)
	}
}

func TestCreateAppointmentServiceNotFound(t *testing.T) {
	uc := newCreate(fixtureRepo())

	in := baseInput()
	in.ServiceID = 99

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("esperado service_not_found, veio %v", err)
	}
}

func TestCreateAppointmentIdempotency(t *testing.T) {
	repo := fixtureRepo()
	uc := newCreate(repo)

	in := baseInput()
	in.IdempotencyKey = "pedido-123"

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("primeira chamada: %v", err)
	}

	// repetir a mesma chave devolve o mesmo registro, sem duplicar
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("segunda chamada: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("ids diferentes: %d vs %d", first.ID, second.ID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("chave repetida duplicou: %d registros", len(repo.created))
	}
}

func TestCreateAppointmentInvalidDate(t *testing.T) {
	uc := newCreate(fixtureRepo())

	in := baseInput()
	in.Date = "09/04/2030"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("esperado invalid_date_or_time, veio %v", err)
	}
}
