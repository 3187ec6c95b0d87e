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

type CancelBooking struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.SlotCache
}

func NewCancelBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.SlotCache,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute soft-cancels an agent's booking. The record is kept for audit but
// its time immediately becomes bookable again.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	agentID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	agent, err := uc.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	b, err := uc.repo.GetBookingForAgent(ctx, bookingID, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(agent.Timezone)
	if err := scheduling.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, agentID)

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
