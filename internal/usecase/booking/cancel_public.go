package booking

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type CancelByReference struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewCancelByReference(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.SlotCache,
) *CancelByReference {
	return &CancelByReference{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute is the client-side cancel: the opaque booking reference handed out
// on creation is the only credential required.
func (uc *CancelByReference) Execute(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	agent, err := uc.repo.GetAgentByID(ctx, b.AgentID)
	if err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	now := timezone.NowIn(agent.Timezone)
	if err := scheduling.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.AgentID)

	uc.audit.Dispatch(audit.Event{
		AgentID:  b.AgentID,
		Action:   "booking_cancelled_by_client",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
