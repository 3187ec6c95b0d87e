package booking

import (
	"context"
	"time"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/dto"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type ListBookingsByDate struct {
	repo scheduling.Repository
}

func NewListBookingsByDate(
	repo scheduling.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	agentID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	agent, err := uc.repo.GetAgentByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(agent.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, agentID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(bookings), nil
}

func toListDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Status:      b.Status,
			MeetingType: b.MeetingType,
			ClientName:  b.ClientName,
		}
		if b.Service != nil {
			item.ServiceName = b.Service.Name
		}
		out = append(out, item)
	}
	return out
}
