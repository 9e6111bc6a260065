package availability

import "time"

// ===============================
// Geração de slots
// ===============================

// Slot é um horário candidato de duração fixa
type Slot struct {
	Start time.Time
	End   time.Time
}

// GenerateSlots fatia os intervalos livres em slots de
// rule.SlotInterval minutos e descarta os que colidem com
// agendamentos pending/confirmed expandidos pelo buffer dos
// dois lados. Saída em ordem crescente; como os intervalos
// livres são disjuntos, não há duplicata para remover.
func GenerateSlots(open []Interval, rule Rule, bookings []Booking) []Slot {
	slotDur := time.Duration(rule.SlotInterval) * time.Minute
	buffer := time.Duration(rule.Buffer) * time.Minute

	busy := busyWindows(bookings, buffer)

	var out []Slot
	for _, iv := range open {
		for cur := iv.Start; !cur.Add(slotDur).After(iv.End); cur = cur.Add(slotDur) {
			candidate := Interval{Start: cur, End: cur.Add(slotDur)}
			if overlapsAny(candidate, busy) {
				continue
			}
			out = append(out, Slot{Start: candidate.Start, End: candidate.End})
		}
	}
	return out
}

// busyWindows devolve as zonas de exclusão em volta dos
// agendamentos que ocupam agenda: [start−buffer, end+buffer)
func busyWindows(bookings []Booking, buffer time.Duration) []Interval {
	var out []Interval
	for _, b := range bookings {
		if !b.OccupiesAgenda() {
			continue
		}
		if !b.Start.Before(b.End) {
			continue
		}
		out = append(out, Interval{
			Start: b.Start.Add(-buffer),
			End:   b.End.Add(buffer),
		})
	}
	return MergeIntervals(out)
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
