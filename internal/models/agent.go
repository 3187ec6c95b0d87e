package models

import "time"

// Agent is the bookable profile of a migration agent. Consultation times are
// always interpreted in the agent's timezone.
type Agent struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Bio     string `gorm:"size:500" json:"bio"`
	MARN    string `gorm:"size:20" json:"marn"`
	Country string `gorm:"size:50" json:"country"`

	Timezone string `gorm:"size:50" json:"timezone"`

	// DefaultDurationMin is the meeting length used for bookings without a
	// fixed service.
	DefaultDurationMin int `gorm:"default:60" json:"default_duration_min"`
	MinAdvanceMinutes  int `gorm:"default:120" json:"min_advance_minutes"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
