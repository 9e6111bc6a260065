package availability

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// ===============================
// Expansão de recorrência
// ===============================
//
// Transforma bloqueios/feriados (pontuais ou recorrentes) em
// intervalos concretos dentro da janela consultada. A duração da
// ocorrência original é preservada; só a âncora anda conforme o
// padrão. Âncoras anteriores à janela são puladas com um salto
// exato, nunca geramos para trás.

const dayHours = 24 * time.Hour

// ExpandBlocks expande os bloqueios ativos, ordenado por início
func ExpandBlocks(blocks []Block, window Interval, log *zap.Logger) []Interval {
	var out []Interval
	for _, b := range blocks {
		if !b.Active {
			continue
		}
		out = append(out, expandBlock(b, window, log)...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func expandBlock(b Block, window Interval, log *zap.Logger) []Interval {
	dur := b.End.Sub(b.Start)
	if dur <= 0 {
		if log != nil {
			log.Warn("bloqueio com janela degenerada ignorado",
				zap.Time("start", b.Start),
				zap.Time("end", b.End),
			)
		}
		return nil
	}

	if !b.Recurring {
		return clipSingle(Interval{Start: b.Start, End: b.End}, window)
	}

	switch b.Pattern {
	case PatternDaily:
		return expandByDays(b.Start, dur, 1, window)
	case PatternWeekly:
		return expandByDays(b.Start, dur, 7, window)
	case PatternMonthly:
		return expandMonthly(b.Start, dur, window)
	default:
		// padrão desconhecido degrada para ocorrência única
		if log != nil {
			log.Warn("recurring_pattern desconhecido, tratando como pontual",
				zap.String("pattern", string(b.Pattern)),
				zap.Time("start", b.Start),
			)
		}
		return clipSingle(Interval{Start: b.Start, End: b.End}, window)
	}
}

func clipSingle(occ Interval, window Interval) []Interval {
	if clipped, ok := occ.Clip(window); ok {
		return []Interval{clipped}
	}
	return nil
}

// expandByDays cobre daily (step=1) e weekly (step=7).
// AddDate preserva o horário de parede através de mudanças de DST.
func expandByDays(anchor time.Time, dur time.Duration, stepDays int, window Interval) []Interval {
	occ := anchor

	// salto grosseiro até perto da janela; o -1 compensa variação
	// de DST para o laço abaixo não pular ocorrência de borda
	if diff := window.Start.Sub(occ.Add(dur)); diff > 0 {
		steps := int(diff/(time.Duration(stepDays)*dayHours)) - 1
		if steps > 0 {
			occ = occ.AddDate(0, 0, steps*stepDays)
		}
	}

	var out []Interval
	for occ.Before(window.End) {
		if clipped, ok := (Interval{Start: occ, End: occ.Add(dur)}).Clip(window); ok {
			out = append(out, clipped)
		}
		occ = occ.AddDate(0, 0, stepDays)
	}
	return out
}

// expandMonthly anda mês a mês mantendo o dia do mês da âncora.
// Mês sem o dia (ex.: 31 em abril) pula a ocorrência, não ajusta.
func expandMonthly(anchor time.Time, dur time.Duration, window Interval) []Interval {
	loc := anchor.Location()
	day := anchor.Day()

	months := 0
	if ws := window.Start.In(loc); ws.After(anchor) {
		months = (ws.Year()-anchor.Year())*12 + int(ws.Month()) - int(anchor.Month()) - 1
		if months < 0 {
			months = 0
		}
	}

	var out []Interval
	for {
		monthStart := time.Date(anchor.Year(), anchor.Month()+time.Month(months), 1, 0, 0, 0, 0, loc)
		if !monthStart.Before(window.End) {
			return out
		}

		start := time.Date(
			anchor.Year(), anchor.Month()+time.Month(months), day,
			anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(),
			loc,
		)

		// time.Date normaliza overflow (31/abr vira 01/mai);
		// se o dia mudou, o mês não tem a ocorrência
		if start.Day() == day {
			if clipped, ok := (Interval{Start: start, End: start.Add(dur)}).Clip(window); ok {
				out = append(out, clipped)
			}
		}

		months++
	}
}

// ExpandHolidays expande feriados ativos como bloqueios de dia
// inteiro no fuso do prestador, ordenado por início
func ExpandHolidays(holidays []Holiday, window Interval, loc *time.Location) []Interval {
	var out []Interval
	for _, h := range holidays {
		if !h.Active {
			continue
		}
		out = append(out, expandHoliday(h, window, loc)...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func expandHoliday(h Holiday, window Interval, loc *time.Location) []Interval {
	d := h.Date.In(loc)

	wholeDay := func(year int) (Interval, bool) {
		start := time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, loc)
		if start.Day() != d.Day() {
			// 29/02 em ano não bissexto
			return Interval{}, false
		}
		end := time.Date(year, d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
		return Interval{Start: start, End: end}, true
	}

	if !h.Recurring {
		if occ, ok := wholeDay(d.Year()); ok {
			return clipSingle(occ, window)
		}
		return nil
	}

	// anual: mesmo mês/dia a cada ano, a partir da âncora
	year := d.Year()
	if wy := window.Start.In(loc).Year(); wy > year {
		year = wy
	}

	var out []Interval
	for y := year; ; y++ {
		monthStart := time.Date(y, d.Month(), 1, 0, 0, 0, 0, loc)
		if !monthStart.Before(window.End) {
			return out
		}
		occ, ok := wholeDay(y)
		if !ok {
			continue
		}
		if clipped, okc := occ.Clip(window); okc {
			out = append(out, clipped)
		}
	}
}
