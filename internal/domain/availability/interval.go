package availability

import (
	"time"

	"github.com/agendahub/agenda-api/internal/httperr"
)

// ===============================
// Interval [start, end)
// ===============================

var ErrInvalidInterval = httperr.ErrBusiness("invalid_interval")

type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval rejeita intervalos degenerados (start >= end)
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// ContainsInterval indica se other cabe inteiro dentro de i
func (i Interval) ContainsInterval(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Subtract remove other de i e devolve 0, 1 ou 2 pedaços
func (i Interval) Subtract(other Interval) []Interval {
	if !i.Overlaps(other) {
		return []Interval{i}
	}

	var out []Interval

	if i.Start.Before(other.Start) {
		out = append(out, Interval{Start: i.Start, End: other.Start})
	}
	if other.End.Before(i.End) {
		out = append(out, Interval{Start: other.End, End: i.End})
	}

	return out
}

// Clip recorta i para dentro de bounds; ok=false se não sobra nada
func (i Interval) Clip(bounds Interval) (Interval, bool) {
	if !i.Overlaps(bounds) {
		return Interval{}, false
	}

	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out, true
}
