package scheduling

import (
	"sort"
	"time"

	"github.com/visabridge/agent-scheduler/internal/httperr"
)

// ===============================
// Weekly Template
// ===============================

type Interval struct {
	Start string `json:"start"` // "HH:MM", 24h
	End   string `json:"end"`
}

type DayTemplate struct {
	Weekday     int        `json:"weekday"` // Sunday=0 .. Saturday=6
	Unavailable bool       `json:"unavailable"`
	Intervals   []Interval `json:"intervals"`
}

// DefaultWeek is returned when an (agent, service) pair has never saved a
// template: weekdays open 11:00-17:00, weekends unavailable. It is never
// persisted implicitly.
func DefaultWeek() []DayTemplate {
	week := make([]DayTemplate, 7)
	for wd := 0; wd < 7; wd++ {
		day := DayTemplate{Weekday: wd, Intervals: []Interval{}}
		if wd == 0 || wd == 6 {
			day.Unavailable = true
		} else {
			day.Intervals = []Interval{{Start: "11:00", End: "17:00"}}
		}
		week[wd] = day
	}
	return week
}

// MinuteOfDay parses "HH:MM" into minutes since midnight.
func MinuteOfDay(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WithinDay reports whether [start, end) fits entirely inside one open
// interval of the day. Unavailable days admit nothing regardless of any
// stray intervals.
func WithinDay(day DayTemplate, start, end time.Time) bool {
	if day.Unavailable {
		return false
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin == 0 && end.After(start) {
		endMin = 24 * 60
	}
	if endMin <= startMin {
		return false
	}

	for _, iv := range day.Intervals {
		ivStart, err := MinuteOfDay(iv.Start)
		if err != nil {
			continue
		}
		ivEnd, err := MinuteOfDay(iv.End)
		if err != nil {
			continue
		}
		if startMin >= ivStart && endMin <= ivEnd {
			return true
		}
	}

	return false
}

// ===============================
// Validations
// ===============================

// ValidateWeek checks a full 7-day template before it replaces the stored
// one: every weekday 0-6 exactly once, no zero-length or overlapping
// intervals, and no intervals on a day flagged unavailable (the flag is
// authoritative; conflicting saves are rejected rather than silently
// cleared).
func ValidateWeek(week []DayTemplate) error {
	if len(week) != 7 {
		return httperr.ErrBusiness("incomplete_week")
	}

	var seen [7]bool
	for _, day := range week {
		if day.Weekday < 0 || day.Weekday > 6 || seen[day.Weekday] {
			return httperr.ErrBusiness("invalid_weekday_set")
		}
		seen[day.Weekday] = true

		if err := ValidateDay(day); err != nil {
			return err
		}
	}

	return nil
}

func ValidateDay(day DayTemplate) error {
	if day.Unavailable {
		if len(day.Intervals) > 0 {
			return httperr.ErrBusiness("unavailable_day_has_intervals")
		}
		return nil
	}

	type span struct{ start, end int }
	spans := make([]span, 0, len(day.Intervals))

	for _, iv := range day.Intervals {
		start, err := MinuteOfDay(iv.Start)
		if err != nil {
			return err
		}
		end, err := MinuteOfDay(iv.End)
		if err != nil {
			return err
		}
		if start >= end {
			return httperr.ErrBusiness("empty_interval")
		}
		spans = append(spans, span{start, end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return httperr.ErrBusiness("overlapping_intervals")
		}
	}

	return nil
}
