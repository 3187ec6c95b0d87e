package booking

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type CompleteBooking struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
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
	if err := scheduling.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		UserID:   &userID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
