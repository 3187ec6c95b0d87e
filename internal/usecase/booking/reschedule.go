package booking

import (
	"context"
	"time"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type RescheduleBooking struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.SlotCache

	now func(tz string) time.Time
}

func NewRescheduleBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.SlotCache,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
		now:   timezone.NowIn,
	}
}

// Execute moves a booking to a new time as one transactional operation:
// cancel-old and insert-new either both happen or neither does, so a crash
// cannot leave the client with no booking at all. The replacement keeps the
// original duration and client contact and always comes back confirmed.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	agentID uint,
	userID uint,
	bookingID uint,
	date string,
	timeStr string,
) (*models.Booking, error) {

	agent, err := uc.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	old, err := uc.repo.GetBookingForAgent(ctx, bookingID, agentID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+timeStr,
		timezone.Location(agent.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := agent.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	now := uc.now(agent.Timezone)
	if newStart.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	newEnd := newStart.Add(old.EndTime.Sub(old.StartTime))

	created, err := uc.repo.RescheduleBooking(ctx, bookingID, agentID, newStart, newEnd, now)
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, agentID)

	uc.audit.Dispatch(audit.Event{
		AgentID:  agentID,
		UserID:   &userID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"previous_booking_id": bookingID,
		},
	})

	return created, nil
}
