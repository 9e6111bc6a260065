package availability

import (
	"time"

	"go.uber.org/zap"
)

// ===============================
// Validação de um agendamento proposto
// ===============================

type Reason string

const (
	ReasonOK           Reason = "ok"
	ReasonOutsideHours Reason = "outside_hours"
	ReasonExcluded     Reason = "excluded"
	ReasonConflict     Reason = "conflict"
)

// ValidateBooking responde se a janela proposta pode ser agendada
// agora, sem gerar a lista completa de slots. Aceita início
// desalinhado da grade — por isso não é uma busca em GenerateSlots —
// mas para janelas alinhadas o veredito é idêntico ao do gerador.
func ValidateBooking(
	window Interval,
	date time.Time,
	rule Rule,
	blocks []Block,
	holidays []Holiday,
	bookings []Booking,
	loc *time.Location,
	log *zap.Logger,
) (bool, Reason) {

	if !rule.Active {
		return false, ReasonOutsideHours
	}

	// 1. dentro do expediente bruto (dia útil, horário, fora do almoço)
	working := rule.WorkingIntervals(date, loc)
	if !containedInAny(window, working) {
		return false, ReasonOutsideHours
	}

	// 2. fora de bloqueios e feriados
	open := OpenIntervals(date, rule, blocks, holidays, loc, log)
	if !containedInAny(window, open) {
		return false, ReasonExcluded
	}

	// 3. sem colisão com agendamentos existentes + buffer
	buffer := time.Duration(rule.Buffer) * time.Minute
	if overlapsAny(window, busyWindows(bookings, buffer)) {
		return false, ReasonConflict
	}

	return true, ReasonOK
}

func containedInAny(window Interval, intervals []Interval) bool {
	for _, iv := range intervals {
		if iv.ContainsInterval(window) {
			return true
		}
	}
	return false
}
