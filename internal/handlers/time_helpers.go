package handlers

import (
	"time"

	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

// All request dates and times are interpreted in the agent's timezone.

func locationFromAgent(agent *models.Agent) *time.Location {
	if agent != nil {
		return timezone.Location(agent.Timezone)
	}
	return timezone.Location("")
}

func parseDateInAgent(agent *models.Agent, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromAgent(agent),
	)
}
