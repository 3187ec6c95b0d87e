package scheduling

import (
	"context"
	"time"

	"github.com/visabridge/agent-scheduler/internal/models"
)

type Repository interface {
	// -------- Agent --------
	GetAgentByID(
		ctx context.Context,
		id uint,
	) (*models.Agent, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		agentID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Weekly template --------
	GetWeekTemplate(
		ctx context.Context,
		agentID uint,
		serviceID uint,
	) ([]DayTemplate, error)

	// ReplaceWeekTemplate swaps all 7 days in one transaction so a reader
	// never observes a half-saved template.
	ReplaceWeekTemplate(
		ctx context.Context,
		agentID uint,
		serviceID uint,
		week []DayTemplate,
	) error

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree runs the overlap check and the insert inside one
	// transaction holding a row lock on the agent's active bookings, so two
	// concurrent requests for the same slot cannot both pass the check.
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// RescheduleBooking cancels the old booking and inserts the replacement
	// in a single transaction.
	RescheduleBooking(
		ctx context.Context,
		bookingID uint,
		agentID uint,
		newStart time.Time,
		newEnd time.Time,
		now time.Time,
	) (*models.Booking, error)

	// -------- Booking (state change) --------
	GetBookingForAgent(
		ctx context.Context,
		bookingID uint,
		agentID uint,
	) (*models.Booking, error)

	GetBookingByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Availability --------

	// ListBookingsForDay returns only pending/confirmed bookings, ordered by
	// start time.
	ListBookingsForDay(
		ctx context.Context,
		agentID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		agentID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
