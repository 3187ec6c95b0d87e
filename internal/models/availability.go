package models

import "time"

// AvailabilityDay is one weekday of the recurring template for an
// (agent, service) pair. A day is either unavailable or carries one or more
// open intervals; both at once is rejected on save.
type AvailabilityDay struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AgentID   uint `gorm:"uniqueIndex:idx_availability_day" json:"agent_id"`
	ServiceID uint `gorm:"uniqueIndex:idx_availability_day" json:"service_id"`

	Weekday     int  `gorm:"uniqueIndex:idx_availability_day" json:"weekday"`
	Unavailable bool `json:"unavailable"`

	Intervals []AvailabilityInterval `gorm:"constraint:OnDelete:CASCADE;" json:"intervals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityInterval struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	AvailabilityDayID uint `json:"availability_day_id"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Position  int    `json:"position"`
}
