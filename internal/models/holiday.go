package models

import "time"

// Feriado do prestador: exclusão de dia inteiro.
// Recorrente repete todo ano no mesmo mês/dia.
type Holiday struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	HolidayDate time.Time `json:"holiday_date"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	IsRecurring bool `gorm:"default:false" json:"is_recurring"`
	IsActive    bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
