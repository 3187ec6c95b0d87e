package scheduling

import "time"

type SlotInput struct {
	AgentID   uint
	ServiceID uint
	Date      time.Time // midnight in the agent's timezone
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ===============================
// Meeting Type
// ===============================

type MeetingType string

const (
	MeetingOnline   MeetingType = "online"
	MeetingInPerson MeetingType = "in_person"
	MeetingPhone    MeetingType = "phone"
)

func ValidMeetingType(mt string) bool {
	switch MeetingType(mt) {
	case MeetingOnline, MeetingInPerson, MeetingPhone:
		return true
	}
	return false
}
