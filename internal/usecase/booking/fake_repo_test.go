package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

// fakeRepo is an in-memory scheduling.Repository. CreateBookingIfFree and
// RescheduleBooking hold the mutex across check and insert, mirroring the
// transactional guarantee of the real repository.
type fakeRepo struct {
	mu       sync.Mutex
	agents   map[uint]*models.Agent
	services map[uint]*models.Service
	weeks    map[[2]uint][]scheduling.DayTemplate
	bookings []*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		agents:   map[uint]*models.Agent{},
		services: map[uint]*models.Service{},
		weeks:    map[[2]uint][]scheduling.DayTemplate{},
	}
}

func (r *fakeRepo) addAgent(a models.Agent) *models.Agent {
	r.agents[a.ID] = &a
	return &a
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	r.services[s.ID] = &s
	return &s
}

func (r *fakeRepo) setWeek(agentID, serviceID uint, week []scheduling.DayTemplate) {
	r.weeks[[2]uint{agentID, serviceID}] = week
}

func (r *fakeRepo) GetAgentByID(_ context.Context, id uint) (*models.Agent, error) {
	if a, ok := r.agents[id]; ok {
		return a, nil
	}
	return nil, httperr.ErrBusiness("agent_not_found")
}

func (r *fakeRepo) GetService(_ context.Context, agentID, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok && s.AgentID == agentID {
		return s, nil
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (r *fakeRepo) GetWeekTemplate(_ context.Context, agentID, serviceID uint) ([]scheduling.DayTemplate, error) {
	return r.weeks[[2]uint{agentID, serviceID}], nil
}

func (r *fakeRepo) ReplaceWeekTemplate(_ context.Context, agentID, serviceID uint, week []scheduling.DayTemplate) error {
	r.setWeek(agentID, serviceID, week)
	return nil
}

func (r *fakeRepo) activeConflict(agentID uint, start, end time.Time, excludeID uint) bool {
	for _, b := range r.bookings {
		if b.AgentID != agentID || b.ID == excludeID {
			continue
		}
		if scheduling.IsTerminal(scheduling.Status(b.Status)) {
			continue
		}
		if scheduling.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateBookingIfFree(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeConflict(b.AgentID, b.StartTime, b.EndTime, 0) {
		return httperr.ErrBusiness("slot_taken")
	}

	r.nextID++
	b.ID = r.nextID
	stored := *b
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *fakeRepo) RescheduleBooking(
	_ context.Context,
	bookingID uint,
	agentID uint,
	newStart time.Time,
	newEnd time.Time,
	now time.Time,
) (*models.Booking, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var old *models.Booking
	for _, b := range r.bookings {
		if b.ID == bookingID && b.AgentID == agentID {
			old = b
			break
		}
	}
	if old == nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if scheduling.IsTerminal(scheduling.Status(old.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if r.activeConflict(agentID, newStart, newEnd, old.ID) {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	old.Status = string(scheduling.StatusCancelled)
	old.CancelledAt = &now

	r.nextID++
	created := &models.Booking{
		ID:          r.nextID,
		AgentID:     old.AgentID,
		ServiceID:   old.ServiceID,
		Reference:   old.Reference + "-r",
		StartTime:   newStart,
		EndTime:     newEnd,
		Status:      string(scheduling.StatusConfirmed),
		MeetingType: old.MeetingType,
		ClientName:  old.ClientName,
		ClientEmail: old.ClientEmail,
		ClientPhone: old.ClientPhone,
		Notes:       old.Notes,
	}
	r.bookings = append(r.bookings, created)

	return created, nil
}

func (r *fakeRepo) GetBookingForAgent(_ context.Context, bookingID, agentID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == bookingID && b.AgentID == agentID {
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) GetBookingByReference(_ context.Context, reference string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	return nil
}

func (r *fakeRepo) ListBookingsForDay(_ context.Context, agentID uint, start, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.AgentID != agentID || scheduling.IsTerminal(scheduling.Status(b.Status)) {
			continue
		}
		if scheduling.Overlaps(start, end, b.StartTime, b.EndTime) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, agentID uint, start, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.AgentID != agentID {
			continue
		}
		if !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

var _ scheduling.Repository = (*fakeRepo)(nil)
