package booking

import (
	"context"
	"time"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/dto"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type ListBookingsByMonth struct {
	repo scheduling.Repository
}

func NewListBookingsByMonth(
	repo scheduling.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	agentID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	agent, err := uc.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(agent.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, agentID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}
