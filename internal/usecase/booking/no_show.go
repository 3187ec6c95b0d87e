package booking

import (
	"context"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

type MarkNoShow struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewMarkNoShow(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
	}
}

// Execute marks a confirmed booking the client did not attend. Terminal: the
// time stays released and the record stays for audit.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	agentID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForAgent(ctx, bookingID, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := scheduling.MarkNoShow(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		UserID:   &userID,
		Action:   "booking_no_show",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
