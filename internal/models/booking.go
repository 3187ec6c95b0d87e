package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AgentID uint  `json:"agent_id"`
	Agent   Agent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"agent"`

	// ServiceID is nullable: a booking without a service falls back to the
	// agent's default meeting duration.
	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Reference is handed to the client on creation and is the only
	// credential needed for a public cancel.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status      string `gorm:"size:20;default:'confirmed'" json:"status"`
	MeetingType string `gorm:"size:20;default:'online'" json:"meeting_type"`

	// Client contact is denormalized so the booking stays meaningful even if
	// the client account changes later.
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100;not null" json:"client_email"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
