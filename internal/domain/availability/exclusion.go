package availability

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// ===============================
// Expediente aberto = expediente bruto − exclusões
// ===============================

// DayWindow é o dia civil [00:00, 00:00 do dia seguinte) no fuso dado
func DayWindow(date time.Time, loc *time.Location) Interval {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
	return Interval{Start: start, End: end}
}

// MergeIntervals ordena e funde intervalos sobrepostos ou encostados,
// para a subtração não produzir buracos de comprimento zero
func MergeIntervals(in []Interval) []Interval {
	if len(in) <= 1 {
		return in
	}

	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	out := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// OpenIntervals calcula os intervalos livres da data: expediente da
// regra menos bloqueios e feriados ativos expandidos para o dia.
// Dia fechado ou totalmente bloqueado devolve lista vazia — isso é
// resultado normal, não erro.
func OpenIntervals(
	date time.Time,
	rule Rule,
	blocks []Block,
	holidays []Holiday,
	loc *time.Location,
	log *zap.Logger,
) []Interval {

	if !rule.Active {
		return nil
	}

	working := rule.WorkingIntervals(date, loc)
	if len(working) == 0 {
		return nil
	}

	day := DayWindow(date, loc)

	exclusions := ExpandBlocks(blocks, day, log)
	exclusions = append(exclusions, ExpandHolidays(holidays, day, loc)...)
	exclusions = MergeIntervals(exclusions)

	open := working
	for _, ex := range exclusions {
		var survivors []Interval
		for _, w := range open {
			survivors = append(survivors, w.Subtract(ex)...)
		}
		open = survivors
	}

	return open
}
