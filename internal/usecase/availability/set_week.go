package availability

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
)

type SetWeek struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewSetWeek(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.SlotCache,
) *SetWeek {
	return &SetWeek{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute validates and atomically replaces the full 7-day template for the
// (agent, service) pair. Partial saves never happen: either all days are
// swapped or none.
func (uc *SetWeek) Execute(
	ctx context.Context,
	agentID uint,
	serviceID uint,
	week []scheduling.DayTemplate,
) error {

	if _, err := uc.repo.GetAgentByID(ctx, agentID); err != nil {
		return httperr.ErrBusiness("agent_not_found")
	}

	svc, err := uc.repo.GetService(ctx, agentID, serviceID)
	if err != nil {
		return httperr.ErrBusiness("service_not_found")
	}

	if err := scheduling.ValidateWeek(week); err != nil {
		return err
	}

	if err := uc.repo.ReplaceWeekTemplate(ctx, agentID, serviceID, week); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, agentID)

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		Action:   "availability_updated",
		Entity:   "availability",
		EntityID: &svc.ID,
	})

	return nil
}
