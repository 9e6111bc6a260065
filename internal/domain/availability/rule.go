package availability

import (
	"fmt"
	"time"

	"github.com/agendahub/agenda-api/internal/httperr"
)

// ===============================
// Rule — snapshot da regra de disponibilidade
// ===============================

var ErrInvalidRule = httperr.ErrBusiness("invalid_rule_configuration")

type Rule struct {
	StartHour int // 0–23
	EndHour   int // 0–23, maior que StartHour

	SlotInterval int // minutos, > 0
	Buffer       int // minutos, >= 0

	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool

	// almoço opcional, "HH:MM"; ambos presentes ou ambos vazios
	LunchStart string
	LunchEnd   string

	Active bool
}

// Validate falha rápido: regra mal configurada nunca entra no cálculo
func (r Rule) Validate() error {
	if r.StartHour < 0 || r.StartHour > 23 {
		return fmt.Errorf("start_hour=%d: %w", r.StartHour, ErrInvalidRule)
	}
	if r.EndHour < 0 || r.EndHour > 23 {
		return fmt.Errorf("end_hour=%d: %w", r.EndHour, ErrInvalidRule)
	}
	if r.EndHour <= r.StartHour {
		return fmt.Errorf("end_hour <= start_hour: %w", ErrInvalidRule)
	}
	if r.SlotInterval <= 0 {
		return fmt.Errorf("slot_interval=%d: %w", r.SlotInterval, ErrInvalidRule)
	}
	if r.Buffer < 0 {
		return fmt.Errorf("buffer=%d: %w", r.Buffer, ErrInvalidRule)
	}

	hasStart := r.LunchStart != ""
	hasEnd := r.LunchEnd != ""
	if hasStart != hasEnd {
		return fmt.Errorf("almoço incompleto: %w", ErrInvalidRule)
	}
	if !hasStart {
		return nil
	}

	lunchStart, err := time.Parse("15:04", r.LunchStart)
	if err != nil {
		return fmt.Errorf("lunch_start=%q: %w", r.LunchStart, ErrInvalidRule)
	}
	lunchEnd, err := time.Parse("15:04", r.LunchEnd)
	if err != nil {
		return fmt.Errorf("lunch_end=%q: %w", r.LunchEnd, ErrInvalidRule)
	}

	if !lunchStart.Before(lunchEnd) {
		return fmt.Errorf("lunch_start >= lunch_end: %w", ErrInvalidRule)
	}

	dayStart := time.Date(0, 1, 1, r.StartHour, 0, 0, 0, time.UTC)
	dayEnd := time.Date(0, 1, 1, r.EndHour, 0, 0, 0, time.UTC)
	if lunchStart.Before(dayStart) || lunchEnd.After(dayEnd) {
		return fmt.Errorf("almoço fora do expediente: %w", ErrInvalidRule)
	}

	return nil
}

func (r Rule) WorksOn(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return r.Monday
	case time.Tuesday:
		return r.Tuesday
	case time.Wednesday:
		return r.Wednesday
	case time.Thursday:
		return r.Thursday
	case time.Friday:
		return r.Friday
	case time.Saturday:
		return r.Saturday
	case time.Sunday:
		return r.Sunday
	}
	return false
}

func (r Rule) HasLunch() bool {
	return r.LunchStart != "" && r.LunchEnd != ""
}

// WorkingIntervals devolve o expediente bruto da data, já com o
// almoço recortado: zero intervalos (dia fechado), um ou dois.
func (r Rule) WorkingIntervals(date time.Time, loc *time.Location) []Interval {
	day := date.In(loc)
	if !r.WorksOn(day.Weekday()) {
		return nil
	}

	atHour := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
	}

	workStart := atHour(r.StartHour, 0)
	workEnd := atHour(r.EndHour, 0)

	if !r.HasLunch() {
		return []Interval{{Start: workStart, End: workEnd}}
	}

	ls, _ := time.Parse("15:04", r.LunchStart)
	le, _ := time.Parse("15:04", r.LunchEnd)
	lunchStart := atHour(ls.Hour(), ls.Minute())
	lunchEnd := atHour(le.Hour(), le.Minute())

	var out []Interval
	if workStart.Before(lunchStart) {
		out = append(out, Interval{Start: workStart, End: lunchStart})
	}
	if lunchEnd.Before(workEnd) {
		out = append(out, Interval{Start: lunchEnd, End: workEnd})
	}
	return out
}
