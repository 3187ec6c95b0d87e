package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Agent
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAgentByID(
	ctx context.Context,
	id uint,
) (*models.Agent, error) {

	var agent models.Agent
	if err := r.db.WithContext(ctx).First(&agent, id).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	agentID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND agent_id = ?", serviceID, agentID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Weekly template
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWeekTemplate(
	ctx context.Context,
	agentID uint,
	serviceID uint,
) ([]scheduling.DayTemplate, error) {

	var days []models.AvailabilityDay
	if err := r.db.WithContext(ctx).
		Preload("Intervals", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("agent_id = ? AND service_id = ?", agentID, serviceID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	week := make([]scheduling.DayTemplate, 0, len(days))
	for _, day := range days {
		tpl := scheduling.DayTemplate{
			Weekday:     day.Weekday,
			Unavailable: day.Unavailable,
			Intervals:   make([]scheduling.Interval, 0, len(day.Intervals)),
		}
		for _, iv := range day.Intervals {
			tpl.Intervals = append(tpl.Intervals, scheduling.Interval{
				Start: iv.StartTime,
				End:   iv.EndTime,
			})
		}
		week = append(week, tpl)
	}

	return week, nil
}

func (r *SchedulingGormRepository) ReplaceWeekTemplate(
	ctx context.Context,
	agentID uint,
	serviceID uint,
	week []scheduling.DayTemplate,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		dayIDs := tx.Model(&models.AvailabilityDay{}).
			Select("id").
			Where("agent_id = ? AND service_id = ?", agentID, serviceID)

		if err := tx.
			Where("availability_day_id IN (?)", dayIDs).
			Delete(&models.AvailabilityInterval{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("agent_id = ? AND service_id = ?", agentID, serviceID).
			Delete(&models.AvailabilityDay{}).Error; err != nil {
			return err
		}

		for _, day := range week {
			row := models.AvailabilityDay{
				AgentID:     agentID,
				ServiceID:   serviceID,
				Weekday:     day.Weekday,
				Unavailable: day.Unavailable,
			}
			for pos, iv := range day.Intervals {
				row.Intervals = append(row.Intervals, models.AvailabilityInterval{
					StartTime: iv.Start,
					EndTime:   iv.End,
					Position:  pos,
				})
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"agent_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.AgentID, scheduling.ActiveStatuses, b.EndTime, b.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(b).Error
	})
}

func (r *SchedulingGormRepository) RescheduleBooking(
	ctx context.Context,
	bookingID uint,
	agentID uint,
	newStart time.Time,
	newEnd time.Time,
	now time.Time,
) (*models.Booking, error) {

	var created models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var old models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND agent_id = ?", bookingID, agentID).
			First(&old).Error; err != nil {
			return httperr.ErrBusiness("booking_not_found")
		}

		if scheduling.IsTerminal(scheduling.Status(old.Status)) {
			return httperr.ErrBusiness("invalid_state")
		}

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"agent_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				agentID, old.ID, scheduling.ActiveStatuses, newEnd, newStart,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		old.Status = string(scheduling.StatusCancelled)
		old.CancelledAt = &now
		if err := tx.Save(&old).Error; err != nil {
			return err
		}

		created = models.Booking{
			AgentID:     old.AgentID,
			ServiceID:   old.ServiceID,
			Reference:   uuid.NewString(),
			StartTime:   newStart,
			EndTime:     newEnd,
			Status:      string(scheduling.StatusConfirmed),
			MeetingType: old.MeetingType,
			ClientName:  old.ClientName,
			ClientEmail: old.ClientEmail,
			ClientPhone: old.ClientPhone,
			Notes:       old.Notes,
		}

		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBookingForAgent(
	ctx context.Context,
	bookingID uint,
	agentID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND agent_id = ?", bookingID, agentID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *SchedulingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *SchedulingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookingsForDay(
	ctx context.Context,
	agentID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"agent_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			agentID, scheduling.ActiveStatuses, end, start,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *SchedulingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	agentID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"agent_id = ? AND start_time >= ? AND start_time < ?",
			agentID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
