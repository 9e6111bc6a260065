package availability

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/domain/appointment"
)

func TestValidateBookingReasons(t *testing.T) {
	r := baseRule() // 8–18, almoço 12–13, buffer 15
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	blocks := []Block{
		{
			Start:  time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 10, 16, 0, 0, 0, loc),
			Active: true,
		},
	}

	bookings := []Booking{
		{
			Start:  time.Date(2026, 3, 10, 9, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			Status: appointment.StatusConfirmed,
		},
	}

	cases := []struct {
		name     string
		startH   int
		startM   int
		duration time.Duration
		bookable bool
		reason   Reason
	}{
		{"janela livre", 13, 30, 30 * time.Minute, true, ReasonOK},
		{"antes do expediente", 7, 0, 30 * time.Minute, false, ReasonOutsideHours},
		{"depois do expediente", 17, 45, 30 * time.Minute, false, ReasonOutsideHours},
		{"dentro do almoço", 12, 15, 30 * time.Minute, false, ReasonOutsideHours},
		{"cruzando o almoço", 11, 45, 30 * time.Minute, false, ReasonOutsideHours},
		{"dentro do bloqueio", 15, 0, 30 * time.Minute, false, ReasonExcluded},
		{"cruzando o bloqueio", 14, 45, 30 * time.Minute, false, ReasonExcluded},
		{"sobre o agendamento", 9, 30, 30 * time.Minute, false, ReasonConflict},
		{"no buffer do agendamento", 10, 0, 15 * time.Minute, false, ReasonConflict},
		{"desalinhado mas livre", 13, 10, 25 * time.Minute, true, ReasonOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Date(2026, 3, 10, tc.startH, tc.startM, 0, 0, loc)
			win := Interval{Start: start, End: start.Add(tc.duration)}

			bookable, reason := ValidateBooking(win, date, r, blocks, nil, bookings, loc, zap.NewNop())
			if bookable != tc.bookable || reason != tc.reason {
				t.Fatalf("= (%v, %s), esperado (%v, %s)", bookable, reason, tc.bookable, tc.reason)
			}
		})
	}
}

func TestValidateBookingInactiveRule(t *testing.T) {
	r := baseRule()
	r.Active = false
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	win := Interval{Start: start, End: start.Add(30 * time.Minute)}

	bookable, reason := ValidateBooking(win, date, r, nil, nil, nil, loc, zap.NewNop())
	if bookable || reason != ReasonOutsideHours {
		t.Fatalf("regra inativa = (%v, %s)", bookable, reason)
	}
}

func TestValidateBookingHoliday(t *testing.T) {
	r := baseRule()
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	holidays := []Holiday{
		{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, loc), Active: true},
	}

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	win := Interval{Start: start, End: start.Add(30 * time.Minute)}

	bookable, reason := ValidateBooking(win, date, r, nil, holidays, nil, loc, zap.NewNop())
	if bookable || reason != ReasonExcluded {
		t.Fatalf("feriado = (%v, %s), esperado (false, excluded)", bookable, reason)
	}
}

// Todo slot gerado deve passar na validação com a mesma foto dos dados
func TestValidateBookingAgreesWithGenerateSlots(t *testing.T) {
	r := baseRule()
	loc := time.UTC
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	blocks := []Block{
		{
			Start:  time.Date(2026, 3, 10, 15, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 10, 16, 0, 0, 0, loc),
			Active: true,
		},
	}

	bookings := []Booking{
		{
			Start:  time.Date(2026, 3, 10, 9, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			Status: appointment.StatusPending,
		},
	}

	open := OpenIntervals(date, r, blocks, nil, loc, zap.NewNop())
	slots := GenerateSlots(open, r, bookings)

	if len(slots) == 0 {
		t.Fatal("cenário deveria gerar slots")
	}

	for _, s := range slots {
		win := Interval{Start: s.Start, End: s.End}
		bookable, reason := ValidateBooking(win, date, r, blocks, nil, bookings, loc, zap.NewNop())
		if !bookable {
			t.Fatalf("slot gerado %v–%v reprovado na validação: %s", s.Start, s.End, reason)
		}
	}
}
