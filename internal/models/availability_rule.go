package models

import "time"

// Regra de disponibilidade: uma ativa por prestador.
// Trocar a regra não invalida agendamentos já confirmados.
type AvailabilityRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	StartHour       int `gorm:"default:8" json:"start_hour"`
	EndHour         int `gorm:"default:18" json:"end_hour"`
	SlotIntervalMin int `gorm:"default:30" json:"slot_interval_min"`
	BufferMin       int `gorm:"default:15" json:"buffer_min"`

	Monday    bool `gorm:"default:true" json:"monday"`
	Tuesday   bool `gorm:"default:true" json:"tuesday"`
	Wednesday bool `gorm:"default:true" json:"wednesday"`
	Thursday  bool `gorm:"default:true" json:"thursday"`
	Friday    bool `gorm:"default:true" json:"friday"`
	Saturday  bool `gorm:"default:false" json:"saturday"`
	Sunday    bool `gorm:"default:false" json:"sunday"`

	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
