package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	domain "github.com/agendahub/agenda-api/internal/domain/appointment"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/timezone"
)

// ======================================================
// USE CASE — ValidateBooking
// ======================================================
//
// Valida uma janela proposta sem enumerar a grade: o cliente pode
// propor início desalinhado e duração diferente do slot padrão.

type ValidateBooking struct {
	repo domain.Repository
	log  *zap.Logger

	maxHorizonDays int
}

func NewValidateBooking(
	repo domain.Repository,
	log *zap.Logger,
	maxHorizonDays int,
) *ValidateBooking {
	return &ValidateBooking{
		repo:           repo,
		log:            log,
		maxHorizonDays: maxHorizonDays,
	}
}

type ValidateBookingInput struct {
	ProviderID uint
	Start      time.Time
	End        time.Time
}

type ValidateBookingOutput struct {
	Bookable bool
	Reason   avail.Reason
}

func (uc *ValidateBooking) Execute(
	ctx context.Context,
	in ValidateBookingInput,
) (ValidateBookingOutput, error) {

	window, err := avail.NewInterval(in.Start, in.End)
	if err != nil {
		return ValidateBookingOutput{}, err
	}

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return ValidateBookingOutput{}, httperr.ErrBusiness("provider_not_found")
	}

	loc := timezone.Location(provider.Timezone)
	day := avail.DayWindow(in.Start, loc)

	if !provider.Active {
		return ValidateBookingOutput{Bookable: false, Reason: avail.ReasonOutsideHours}, nil
	}

	// mesma política de borda do cálculo de slots: começo no passado
	// ou além do horizonte nunca é agendável, sem erro
	now := timezone.NowIn(provider.Timezone)
	if in.Start.Before(now) {
		return ValidateBookingOutput{Bookable: false, Reason: avail.ReasonOutsideHours}, nil
	}
	if in.Start.After(now.AddDate(0, 0, uc.maxHorizonDays)) {
		return ValidateBookingOutput{Bookable: false, Reason: avail.ReasonOutsideHours}, nil
	}

	snap, ok, err := loadSnapshot(ctx, uc.repo, in.ProviderID, day.Start, day.End)
	if err != nil {
		return ValidateBookingOutput{}, err
	}
	if !ok {
		return ValidateBookingOutput{Bookable: false, Reason: avail.ReasonOutsideHours}, nil
	}

	if err := snap.Rule.Validate(); err != nil {
		return ValidateBookingOutput{}, err
	}

	bookable, reason := avail.ValidateBooking(
		window,
		in.Start,
		snap.Rule,
		snap.Blocks,
		snap.Holidays,
		snap.Bookings,
		loc,
		uc.log,
	)

	return ValidateBookingOutput{Bookable: bookable, Reason: reason}, nil
}
