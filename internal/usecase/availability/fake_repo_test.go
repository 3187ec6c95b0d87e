package availability

import (
	"context"
	"time"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

// fakeRepo covers the agent/service/template surface; booking methods are
// never reached from the availability usecases.
type fakeRepo struct {
	agents   map[uint]*models.Agent
	services map[uint]*models.Service
	weeks    map[[2]uint][]scheduling.DayTemplate

	replaceCalls int
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		agents:   map[uint]*models.Agent{},
		services: map[uint]*models.Service{},
		weeks:    map[[2]uint][]scheduling.DayTemplate{},
	}
	r.agents[1] = &models.Agent{ID: 1, Name: "Ana Pereira", Slug: "ana-pereira", Timezone: "UTC", Active: true}
	r.services[10] = &models.Service{ID: 10, AgentID: 1, Name: "Visa consult", DurationMin: 30, Active: true}
	return r
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
	r.replaceCalls++
	r.weeks[[2]uint{agentID, serviceID}] = week
	return nil
}

func (r *fakeRepo) CreateBookingIfFree(context.Context, *models.Booking) error {
	panic("not used")
}

func (r *fakeRepo) RescheduleBooking(context.Context, uint, uint, time.Time, time.Time, time.Time) (*models.Booking, error) {
	panic("not used")
}

func (r *fakeRepo) GetBookingForAgent(context.Context, uint, uint) (*models.Booking, error) {
	panic("not used")
}

func (r *fakeRepo) GetBookingByReference(context.Context, string) (*models.Booking, error) {
	panic("not used")
}

func (r *fakeRepo) UpdateBooking(context.Context, *models.Booking) error {
	panic("not used")
}

func (r *fakeRepo) ListBookingsForDay(context.Context, uint, time.Time, time.Time) ([]models.Booking, error) {
	panic("not used")
}

func (r *fakeRepo) ListBookingsForPeriod(context.Context, uint, time.Time, time.Time) ([]models.Booking, error) {
	panic("not used")
}

var _ scheduling.Repository = (*fakeRepo)(nil)
