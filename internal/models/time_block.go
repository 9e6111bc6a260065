package models

import "time"

// Bloqueio de horário preso à regra de disponibilidade
type TimeBlock struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	AvailabilityRuleID uint `gorm:"index" json:"availability_rule_id"`

	BlockType string `gorm:"size:20;not null" json:"block_type"` // holiday|maintenance|personal|recurring

	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	IsRecurring      bool   `gorm:"default:false" json:"is_recurring"`
	RecurringPattern string `gorm:"size:50" json:"recurring_pattern"` // daily|weekly|monthly

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
