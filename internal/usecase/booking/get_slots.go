package booking

import (
	"context"
	"sort"
	"time"

	"github.com/visabridge/agent-scheduler/internal/cache"
	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/timezone"
)

type GetSlots struct {
	repo  scheduling.Repository
	cache *cache.SlotCache

	// now is swapped out in tests.
	now func(tz string) time.Time
}

func NewGetSlots(repo scheduling.Repository, cache *cache.SlotCache) *GetSlots {
	return &GetSlots{repo: repo, cache: cache, now: timezone.NowIn}
}

// Execute computes the bookable start times for one agent/service on one
// date: the day's template intervals are expanded at the service duration
// step, then candidates overlapping an active booking or falling before the
// agent's minimum advance window are dropped.
func (uc *GetSlots) Execute(
	ctx context.Context,
	in scheduling.SlotInput,
) ([]scheduling.TimeSlot, error) {

	agent, err := uc.repo.GetAgentByID(ctx, in.AgentID)
	if err != nil || !agent.Active {
		return nil, httperr.ErrBusiness("agent_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.AgentID, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMin <= 0 {
		return []scheduling.TimeSlot{}, nil
	}

	dateKey := in.Date.Format("2006-01-02")
	if slots, ok := uc.cache.Get(ctx, in.AgentID, in.ServiceID, dateKey); ok {
		return slots, nil
	}

	week, err := uc.repo.GetWeekTemplate(ctx, in.AgentID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(week) == 0 {
		week = scheduling.DefaultWeek()
	}

	weekday := int(in.Date.Weekday())
	var day *scheduling.DayTemplate
	for i := range week {
		if week[i].Weekday == weekday {
			day = &week[i]
			break
		}
	}

	// The unavailable flag is authoritative: stray intervals on such a day
	// are ignored.
	if day == nil || day.Unavailable || len(day.Intervals) == 0 {
		return []scheduling.TimeSlot{}, nil
	}

	loc := in.Date.Location()
	dayStart := clockTime(in.Date, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := uc.repo.ListBookingsForDay(ctx, in.AgentID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	minAdvance := agent.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	minStart := uc.now(agent.Timezone).Add(time.Duration(minAdvance) * time.Minute)

	type span struct{ start, end int }
	spans := make([]span, 0, len(day.Intervals))
	for _, iv := range day.Intervals {
		s, err := scheduling.MinuteOfDay(iv.Start)
		if err != nil {
			continue
		}
		e, err := scheduling.MinuteOfDay(iv.End)
		if err != nil || e <= s {
			continue
		}
		spans = append(spans, span{s, e})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	step := svc.DurationMin
	slots := []scheduling.TimeSlot{}

	for _, sp := range spans {
		for m := sp.start; m+step <= sp.end; m += step {
			slotStart := clockTime(in.Date, m, loc)
			slotEnd := clockTime(in.Date, m+step, loc)

			if slotStart.Before(minStart) {
				continue
			}

			conflict := false
			for _, b := range bookings {
				if scheduling.Overlaps(slotStart, slotEnd, b.StartTime, b.EndTime) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, scheduling.TimeSlot{
					Start: slotStart.Format("15:04"),
					End:   slotEnd.Format("15:04"),
				})
			}
		}
	}

	uc.cache.Put(ctx, in.AgentID, in.ServiceID, dateKey, slots)

	return slots, nil
}

// clockTime anchors a minute-of-day to the date as wall clock in loc.
// Template times are wall clock, so a DST transition on the date must not
// shift them.
func clockTime(date time.Time, minute int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, loc)
}
