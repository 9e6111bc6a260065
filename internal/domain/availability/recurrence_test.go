package availability

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func window(loc *time.Location, fromY, fromM, fromD, toY int, toM time.Month, toD int) Interval {
	return Interval{
		Start: time.Date(fromY, time.Month(fromM), fromD, 0, 0, 0, 0, loc),
		End:   time.Date(toY, toM, toD, 0, 0, 0, 0, loc),
	}
}

func TestExpandBlocksNonRecurring(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 3, 9, 2026, time.March, 16)

	blocks := []Block{
		{
			Start:  time.Date(2026, 3, 10, 14, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 10, 16, 0, 0, 0, loc),
			Type:   BlockPersonal,
			Active: true,
		},
		{
			// fora da janela, some
			Start:  time.Date(2026, 4, 1, 14, 0, 0, 0, loc),
			End:    time.Date(2026, 4, 1, 16, 0, 0, 0, loc),
			Type:   BlockPersonal,
			Active: true,
		},
		{
			// inativo, some
			Start:  time.Date(2026, 3, 11, 14, 0, 0, 0, loc),
			End:    time.Date(2026, 3, 11, 16, 0, 0, 0, loc),
			Type:   BlockPersonal,
			Active: false,
		},
	}

	got := ExpandBlocks(blocks, win, zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("esperado 1 ocorrência, veio %d: %v", len(got), got)
	}
	if !got[0].Start.Equal(blocks[0].Start) {
		t.Fatalf("ocorrência em %v, esperado %v", got[0].Start, blocks[0].Start)
	}
}

func TestExpandBlocksDaily(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 3, 9, 2026, time.March, 12)

	// âncora bem antes da janela
	b := Block{
		Start:     time.Date(2026, 1, 5, 9, 0, 0, 0, loc),
		End:       time.Date(2026, 1, 5, 10, 0, 0, 0, loc),
		Type:      BlockRecurring,
		Recurring: true,
		Pattern:   PatternDaily,
		Active:    true,
	}

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())
	if len(got) != 3 {
		t.Fatalf("3 dias na janela deveriam gerar 3 ocorrências, veio %d: %v", len(got), got)
	}
	for i, occ := range got {
		wantStart := time.Date(2026, 3, 9+i, 9, 0, 0, 0, loc)
		if !occ.Start.Equal(wantStart) {
			t.Fatalf("ocorrência %d em %v, esperado %v", i, occ.Start, wantStart)
		}
		if occ.Duration() != time.Hour {
			t.Fatalf("duração deveria ser preservada, veio %v", occ.Duration())
		}
	}
}

func TestExpandBlocksWeekly(t *testing.T) {
	loc := time.UTC
	// janela de duas semanas
	win := window(loc, 2026, 3, 9, 2026, time.March, 23)

	// âncora numa terça meses antes
	b := Block{
		Start:     time.Date(2025, 11, 4, 15, 0, 0, 0, loc),
		End:       time.Date(2025, 11, 4, 17, 0, 0, 0, loc),
		Recurring: true,
		Pattern:   PatternWeekly,
		Active:    true,
	}

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())
	if len(got) != 2 {
		t.Fatalf("esperado 2 terças na janela, veio %d: %v", len(got), got)
	}
	for _, occ := range got {
		if occ.Start.Weekday() != time.Tuesday {
			t.Fatalf("ocorrência deveria cair na terça, veio %v", occ.Start.Weekday())
		}
		if occ.Start.Hour() != 15 {
			t.Fatalf("horário de parede deveria ser 15h, veio %dh", occ.Start.Hour())
		}
	}
}

func TestExpandBlocksWeeklyPreservesWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata indisponível")
	}

	// âncora meses antes da janela; em fusos com DST histórico o
	// AddDate mantém o horário de parede
	b := Block{
		Start:     time.Date(2026, 1, 6, 9, 0, 0, 0, loc),
		End:       time.Date(2026, 1, 6, 10, 0, 0, 0, loc),
		Recurring: true,
		Pattern:   PatternWeekly,
		Active:    true,
	}

	win := window(loc, 2026, 7, 6, 2026, time.July, 13)

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("esperado 1 ocorrência, veio %d: %v", len(got), got)
	}
	if got[0].Start.Hour() != 9 || got[0].Start.Minute() != 0 {
		t.Fatalf("horário de parede deveria ser 09:00, veio %v", got[0].Start)
	}
}

func TestExpandBlocksMonthly(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 3, 1, 2026, time.June, 1)

	b := Block{
		Start:     time.Date(2026, 1, 15, 10, 0, 0, 0, loc),
		End:       time.Date(2026, 1, 15, 12, 0, 0, 0, loc),
		Recurring: true,
		Pattern:   PatternMonthly,
		Active:    true,
	}

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())
	if len(got) != 3 {
		t.Fatalf("esperado mar/abr/mai, veio %d: %v", len(got), got)
	}
	for i, wantMonth := range []time.Month{time.March, time.April, time.May} {
		if got[i].Start.Month() != wantMonth || got[i].Start.Day() != 15 {
			t.Fatalf("ocorrência %d em %v, esperado dia 15 de %v", i, got[i].Start, wantMonth)
		}
	}
}

func TestExpandBlocksMonthlySkipsShortMonths(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 1, 1, 2026, time.July, 1)

	// dia 31: abril e junho não têm
	b := Block{
		Start:     time.Date(2026, 1, 31, 10, 0, 0, 0, loc),
		End:       time.Date(2026, 1, 31, 11, 0, 0, 0, loc),
		Recurring: true,
		Pattern:   PatternMonthly,
		Active:    true,
	}

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())

	// jan, mar, mai — fev/abr/jun pulados
	if len(got) != 3 {
		t.Fatalf("esperado 3 ocorrências, veio %d: %v", len(got), got)
	}
	for i, wantMonth := range []time.Month{time.January, time.March, time.May} {
		if got[i].Start.Month() != wantMonth {
			t.Fatalf("ocorrência %d em %v, esperado %v", i, got[i].Start.Month(), wantMonth)
		}
		if got[i].Start.Day() != 31 {
			t.Fatalf("dia deveria ser 31, veio %d", got[i].Start.Day())
		}
	}
}

func TestExpandBlocksUnknownPatternFallsBackToSingle(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 3, 9, 2026, time.March, 16)

	b := Block{
		Start:     time.Date(2026, 3, 10, 9, 0, 0, 0, loc),
		End:       time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		Recurring: true,
		Pattern:   RecurringPattern("quinzenal"),
		Active:    true,
	}

	got := ExpandBlocks([]Block{b}, win, zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("padrão desconhecido deveria degradar para ocorrência única, veio %d", len(got))
	}
}

func TestExpandBlocksDegenerateIsIgnored(t *testing.T) {
	loc := time.UTC
	win := window(loc, 2026, 3, 9, 2026, time.March, 16)

	b := Block{
		Start:  time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		End:    time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
		Active: true,
	}

	if got := ExpandBlocks([]Block{b}, win, zap.NewNop()); len(got) != 0 {
		t.Fatalf("janela degenerada deveria sumir, veio %v", got)
	}
}

func TestExpandHolidaysAnnual(t *testing.T) {
	loc := time.UTC

	h := Holiday{
		Date:      time.Date(2020, 12, 25, 0, 0, 0, 0, loc),
		Recurring: true,
		Active:    true,
	}

	win := window(loc, 2026, 12, 20, 2027, time.January, 5)

	got := ExpandHolidays([]Holiday{h}, win, loc)
	if len(got) != 1 {
		t.Fatalf("esperado 1 natal na janela, veio %d: %v", len(got), got)
	}

	wantStart := time.Date(2026, 12, 25, 0, 0, 0, 0, loc)
	if !got[0].Start.Equal(wantStart) {
		t.Fatalf("feriado em %v, esperado %v", got[0].Start, wantStart)
	}
	if got[0].Duration() != 24*time.Hour {
		t.Fatalf("feriado deveria cobrir o dia inteiro, veio %v", got[0].Duration())
	}
}

func TestExpandHolidaysFeb29SkipsNonLeapYears(t *testing.T) {
	loc := time.UTC

	h := Holiday{
		Date:      time.Date(2024, 2, 29, 0, 0, 0, 0, loc),
		Recurring: true,
		Active:    true,
	}

	// 2026 não é bissexto
	win := window(loc, 2026, 2, 1, 2026, time.March, 10)
	if got := ExpandHolidays([]Holiday{h}, win, loc); len(got) != 0 {
		t.Fatalf("29/02 não existe em 2026, veio %v", got)
	}

	// 2028 é bissexto
	win = window(loc, 2028, 2, 1, 2028, time.March, 10)
	got := ExpandHolidays([]Holiday{h}, win, loc)
	if len(got) != 1 {
		t.Fatalf("esperado 1 ocorrência em 2028, veio %d", len(got))
	}
	if got[0].Start.Day() != 29 || got[0].Start.Month() != time.February {
		t.Fatalf("ocorrência em %v, esperado 29/02/2028", got[0].Start)
	}
}

func TestExpandHolidaysNonRecurring(t *testing.T) {
	loc := time.UTC

	h := Holiday{
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		Active: true,
	}

	win := window(loc, 2026, 3, 9, 2026, time.March, 16)
	got := ExpandHolidays([]Holiday{h}, win, loc)
	if len(got) != 1 {
		t.Fatalf("esperado 1 ocorrência, veio %d", len(got))
	}

	// ano seguinte não repete
	win = window(loc, 2027, 3, 9, 2027, time.March, 16)
	if got := ExpandHolidays([]Holiday{h}, win, loc); len(got) != 0 {
		t.Fatalf("feriado pontual não repete, veio %v", got)
	}
}
