package availability

import (
	"errors"
	"testing"
	"time"
)

func baseRule() Rule {
	return Rule{
		StartHour:    8,
		EndHour:      18,
		SlotInterval: 30,
		Buffer:       15,
		Monday:       true,
		Tuesday:      true,
		Wednesday:    true,
		Thursday:     true,
		Friday:       true,
		LunchStart:   "12:00",
		LunchEnd:     "13:00",
		Active:       true,
	}
}

func TestRuleValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Rule)
		ok     bool
	}{
		{"regra padrão", func(r *Rule) {}, true},
		{"sem almoço", func(r *Rule) { r.LunchStart, r.LunchEnd = "", "" }, true},
		{"start_hour negativo", func(r *Rule) { r.StartHour = -1 }, false},
		{"end_hour acima de 23", func(r *Rule) { r.EndHour = 24 }, false},
		{"expediente invertido", func(r *Rule) { r.StartHour, r.EndHour = 18, 8 }, false},
		{"expediente vazio", func(r *Rule) { r.EndHour = r.StartHour }, false},
		{"slot_interval zero", func(r *Rule) { r.SlotInterval = 0 }, false},
		{"buffer negativo", func(r *Rule) { r.Buffer = -5 }, false},
		{"almoço só com início", func(r *Rule) { r.LunchEnd = "" }, false},
		{"almoço só com fim", func(r *Rule) { r.LunchStart = "" }, false},
		{"almoço ilegível", func(r *Rule) { r.LunchStart = "meio-dia" }, false},
		{"almoço invertido", func(r *Rule) { r.LunchStart, r.LunchEnd = "13:00", "12:00" }, false},
		{"almoço antes do expediente", func(r *Rule) { r.LunchStart, r.LunchEnd = "07:00", "08:30" }, false},
		{"almoço depois do expediente", func(r *Rule) { r.LunchStart, r.LunchEnd = "17:30", "19:00" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := baseRule()
			tc.mutate(&r)

			err := r.Validate()
			if tc.ok && err != nil {
				t.Fatalf("regra deveria ser válida: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("regra inválida aceita")
				}
				if !errors.Is(err, ErrInvalidRule) {
					t.Fatalf("erro deveria embrulhar ErrInvalidRule: %v", err)
				}
			}
		})
	}
}

func TestRuleWorksOn(t *testing.T) {
	r := baseRule()
	r.Saturday = false
	r.Sunday = false

	if !r.WorksOn(time.Wednesday) {
		t.Fatal("quarta deveria ser dia útil")
	}
	if r.WorksOn(time.Sunday) {
		t.Fatal("domingo não deveria ser dia útil")
	}
}

func TestWorkingIntervalsWithLunch(t *testing.T) {
	r := baseRule()
	loc := time.UTC

	// 2026-03-10 é terça
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	got := r.WorkingIntervals(date, loc)

	want := []Interval{
		{time.Date(2026, 3, 10, 8, 0, 0, 0, loc), time.Date(2026, 3, 10, 12, 0, 0, 0, loc)},
		{time.Date(2026, 3, 10, 13, 0, 0, 0, loc), time.Date(2026, 3, 10, 18, 0, 0, 0, loc)},
	}

	if len(got) != len(want) {
		t.Fatalf("esperado %d intervalos, veio %d: %v", len(want), len(got), got)
	}
	for i := range got {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("intervalo %d = %v, esperado %v", i, got[i], want[i])
		}
	}
}

func TestWorkingIntervalsWithoutLunch(t *testing.T) {
	r := baseRule()
	r.LunchStart, r.LunchEnd = "", ""
	loc := time.UTC

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	got := r.WorkingIntervals(date, loc)

	if len(got) != 1 {
		t.Fatalf("esperado 1 intervalo contínuo, veio %d", len(got))
	}
	if got[0].Duration() != 10*time.Hour {
		t.Fatalf("expediente deveria ter 10h, veio %v", got[0].Duration())
	}
}

func TestWorkingIntervalsClosedDay(t *testing.T) {
	r := baseRule()
	loc := time.UTC

	// 2026-03-08 é domingo
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	if got := r.WorkingIntervals(date, loc); got != nil {
		t.Fatalf("dia fechado deveria devolver nil, veio %v", got)
	}
}
