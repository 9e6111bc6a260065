package availability

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	domain "github.com/agendahub/agenda-api/internal/domain/appointment"
	"github.com/agendahub/agenda-api/internal/models"
)

// ======================================================
// SNAPSHOT
// ======================================================
//
// O núcleo é função pura de um snapshot imutável. Buscamos tudo de
// uma vez (regra, bloqueios, feriados, agendamentos do período) e
// só então calculamos — nenhuma query no meio do cálculo.

type Snapshot struct {
	Rule     avail.Rule
	Blocks   []avail.Block
	Holidays []avail.Holiday
	Bookings []avail.Booking
}

// loadSnapshot monta o snapshot do prestador para o período.
// Regra ausente devolve ok=false: agenda sem regra não tem slots.
func loadSnapshot(
	ctx context.Context,
	repo domain.Repository,
	providerID uint,
	periodStart time.Time,
	periodEnd time.Time,
) (Snapshot, bool, error) {

	rule, err := repo.GetActiveRule(ctx, providerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}

	blocks, err := repo.ListActiveBlocks(ctx, rule.ID)
	if err != nil {
		return Snapshot{}, false, err
	}

	holidays, err := repo.ListActiveHolidays(ctx, providerID)
	if err != nil {
		return Snapshot{}, false, err
	}

	// margem do buffer: agendamento vizinho do dia anterior/seguinte
	// ainda bloqueia slots de borda
	margin := time.Duration(rule.BufferMin) * time.Minute
	bookings, err := repo.ListBookingsForPeriod(
		ctx,
		providerID,
		periodStart.Add(-margin),
		periodEnd.Add(margin),
	)
	if err != nil {
		return Snapshot{}, false, err
	}

	return Snapshot{
		Rule:     ruleFromModel(rule),
		Blocks:   blocksFromModels(blocks),
		Holidays: holidaysFromModels(holidays),
		Bookings: bookingsFromModels(bookings),
	}, true, nil
}

func ruleFromModel(m *models.AvailabilityRule) avail.Rule {
	return avail.Rule{
		StartHour:    m.StartHour,
		EndHour:      m.EndHour,
		SlotInterval: m.SlotIntervalMin,
		Buffer:       m.BufferMin,
		Monday:       m.Monday,
		Tuesday:      m.Tuesday,
		Wednesday:    m.Wednesday,
		Thursday:     m.Thursday,
		Friday:       m.Friday,
		Saturday:     m.Saturday,
		Sunday:       m.Sunday,
		LunchStart:   m.LunchStart,
		LunchEnd:     m.LunchEnd,
		Active:       m.Active,
	}
}

func blocksFromModels(in []models.TimeBlock) []avail.Block {
	out := make([]avail.Block, 0, len(in))
	for _, b := range in {
		out = append(out, avail.Block{
			Start:     b.StartDatetime,
			End:       b.EndDatetime,
			Type:      avail.BlockType(b.BlockType),
			Recurring: b.IsRecurring,
			Pattern:   avail.RecurringPattern(b.RecurringPattern),
			Active:    b.IsActive,
		})
	}
	return out
}

func holidaysFromModels(in []models.Holiday) []avail.Holiday {
	out := make([]avail.Holiday, 0, len(in))
	for _, h := range in {
		out = append(out, avail.Holiday{
			Date:      h.HolidayDate,
			Recurring: h.IsRecurring,
			Active:    h.IsActive,
		})
	}
	return out
}

func bookingsFromModels(in []models.Appointment) []avail.Booking {
	out := make([]avail.Booking, 0, len(in))
	for _, ap := range in {
		out = append(out, avail.Booking{
			Start:  ap.StartTime,
			End:    ap.EndTime,
			Status: domain.Status(ap.Status),
		})
	}
	return out
}
