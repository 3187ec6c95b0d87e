package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visabridge/agent-scheduler/internal/audit"
	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	AgentID   uint
	ServiceID *uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	MeetingType string
	Notes       string

	// ActorID is the authenticated user for agent-made bookings, nil for the
	// public client flow.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo        scheduling.Repository
	audit       *audit.Dispatcher
	cache       *cache.SlotCache
	autoConfirm bool

	now func(tz string) time.Time
}

func NewCreateBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.SlotCache,
	autoConfirm bool,
) *CreateBooking {
	return &CreateBooking{
		repo:        repo,
		audit:       audit,
		cache:       cache,
		autoConfirm: autoConfirm,
		now:         timezone.NowIn,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates a booking request against live state and persists it.
// The overlap check is re-run at commit time inside the repository
// transaction: a slot the client saw as free may have been taken since.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	agent, err := uc.repo.GetAgentByID(ctx, in.AgentID)
	if err != nil || !agent.Active {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	// Date and time are interpreted in the agent's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
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
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// Duration comes from the service when one is given, otherwise from the
	// agent's default meeting length.
	durationMin := agent.DefaultDurationMin
	if in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, in.AgentID, *in.ServiceID)
		if err != nil || !svc.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		durationMin = svc.DurationMin
	}
	if durationMin <= 0 {
		durationMin = 60
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	if strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientEmail) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" {
		return nil, httperr.ErrBusiness("missing_client_info")
	}

	meetingType := in.MeetingType
	if meetingType == "" {
		meetingType = string(scheduling.MeetingOnline)
	}
	if !scheduling.ValidMeetingType(meetingType) {
		return nil, httperr.ErrBusiness("invalid_meeting_type")
	}

	// Service bookings must land inside the weekly template.
	if in.ServiceID != nil {
		ok, err := uc.withinTemplate(ctx, in.AgentID, *in.ServiceID, start, end)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("outside_availability")
		}
	}

	b := &models.Booking{
		AgentID:     in.AgentID,
		ServiceID:   in.ServiceID,
		Reference:   uuid.NewString(),
		StartTime:   start,
		EndTime:     end,
		Status:      string(scheduling.InitialStatus(uc.autoConfirm)),
		MeetingType: meetingType,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: strings.ToLower(strings.TrimSpace(in.ClientEmail)),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		Notes:       in.Notes,
	}

	// Conflict check and insert happen atomically in the repository; a
	// concurrent booking for the same time surfaces here as slot_taken.
	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.AgentID)

	uc.audit.Dispatch(audit.Event{
		AgentID:  in.AgentID,
		UserID:   in.ActorID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func (uc *CreateBooking) withinTemplate(
	ctx context.Context,
	agentID uint,
	serviceID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	week, err := uc.repo.GetWeekTemplate(ctx, agentID, serviceID)
	if err != nil {
		return false, err
	}
	if len(week) == 0 {
		week = scheduling.DefaultWeek()
	}

	weekday := int(start.Weekday())
	for _, day := range week {
		if day.Weekday == weekday {
			return scheduling.WithinDay(day, start, end), nil
		}
	}

	return false, nil
}
