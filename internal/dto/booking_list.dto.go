package dto

import "time"

type BookingListDTO struct {
	ID          uint      `json:"id"`
	Reference   string    `json:"reference"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	MeetingType string    `json:"meeting_type"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}
