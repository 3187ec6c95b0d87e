package booking

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

type ConfirmBooking struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewConfirmBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute is only meaningful under the pending booking policy; a pending
// booking already holds its slot, confirmation just finalises it.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	agentID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForAgent(ctx, bookingID, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := scheduling.Confirm(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		UserID:   &userID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
