package availability

import (
	"time"

	"github.com/agendahub/agenda-api/internal/domain/appointment"
)

// ===============================
// Snapshot — entradas imutáveis do cálculo
// ===============================
//
// O núcleo nunca toca banco: recebe cópias por valor da regra,
// dos bloqueios, dos feriados e dos agendamentos já existentes.

type BlockType string

const (
	BlockHoliday     BlockType = "holiday"
	BlockMaintenance BlockType = "maintenance"
	BlockPersonal    BlockType = "personal"
	BlockRecurring   BlockType = "recurring"
)

type RecurringPattern string

const (
	PatternDaily   RecurringPattern = "daily"
	PatternWeekly  RecurringPattern = "weekly"
	PatternMonthly RecurringPattern = "monthly"
)

// Block é um bloqueio pontual ou recorrente preso à regra
type Block struct {
	Start time.Time
	End   time.Time

	Type      BlockType
	Recurring bool
	Pattern   RecurringPattern

	Active bool
}

// Holiday bloqueia o dia inteiro; recorrente repete todo ano
type Holiday struct {
	Date      time.Time
	Recurring bool
	Active    bool
}

// Booking é a janela de um agendamento existente
type Booking struct {
	Start  time.Time
	End    time.Time
	Status appointment.Status
}

// OccupiesAgenda: só pending/confirmed seguram horário
func (b Booking) OccupiesAgenda() bool {
	return b.Status == appointment.StatusPending ||
		b.Status == appointment.StatusConfirmed
}
