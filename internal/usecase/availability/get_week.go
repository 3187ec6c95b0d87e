package availability

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
)

type GetWeek struct {
	repo scheduling.Repository
}

func NewGetWeek(repo scheduling.Repository) *GetWeek {
	return &GetWeek{repo: repo}
}

// Execute returns the stored weekly template for the (agent, service) pair,
// or the system default when nothing was ever saved. The default is not
// persisted; persistence happens only on an explicit save.
func (uc *GetWeek) Execute(
	ctx context.Context,
	agentID uint,
	serviceID uint,
) ([]scheduling.DayTemplate, error) {

	if _, err := uc.repo.GetAgentByID(ctx, agentID); err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	if _, err := uc.repo.GetService(ctx, agentID, serviceID); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	week, err := uc.repo.GetWeekTemplate(ctx, agentID, serviceID)
	if err != nil {
		return nil, err
	}

	if len(week) == 0 {
		return scheduling.DefaultWeek(), nil
	}

	// Index by weekday; a weekday missing from storage is treated as
	// unavailable rather than an error.
	out := make([]scheduling.DayTemplate, 7)
	for wd := 0; wd < 7; wd++ {
		out[wd] = scheduling.DayTemplate{
			Weekday:     wd,
			Unavailable: true,
			Intervals:   []scheduling.Interval{},
		}
	}
	for _, day := range week {
		if day.Weekday < 0 || day.Weekday > 6 {
			continue
		}
		if day.Intervals == nil {
			day.Intervals = []scheduling.Interval{}
		}
		out[day.Weekday] = day
	}

	return out, nil
}
