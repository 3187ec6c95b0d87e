package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
)

func fullWeek() []scheduling.DayTemplate {
	week := make([]scheduling.DayTemplate, 7)
	for wd := 0; wd < 7; wd++ {
		week[wd] = scheduling.DayTemplate{Weekday: wd, Unavailable: true, Intervals: []scheduling.Interval{}}
	}
	week[1] = scheduling.DayTemplate{Weekday: 1, Intervals: []scheduling.Interval{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "17:00"},
	}}
	return week
}

func TestGetWeek_DefaultWhenNothingSaved(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetWeek(repo)

	week, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.True(t, week[0].Unavailable)
	assert.True(t, week[6].Unavailable)
	assert.Equal(t, []scheduling.Interval{{Start: "11:00", End: "17:00"}}, week[3].Intervals)
	// The default is never written back.
	assert.Empty(t, repo.weeks)
}

func TestGetWeek_MissingWeekdaysReturnedUnavailable(t *testing.T) {
	repo := newFakeRepo()
	repo.weeks[[2]uint{1, 10}] = []scheduling.DayTemplate{
		{Weekday: 2, Intervals: []scheduling.Interval{{Start: "10:00", End: "14:00"}}},
	}
	uc := NewGetWeek(repo)

	week, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.False(t, week[2].Unavailable)
	assert.Equal(t, "10:00", week[2].Intervals[0].Start)
	for _, wd := range []int{0, 1, 3, 4, 5, 6} {
		assert.True(t, week[wd].Unavailable, "weekday %d", wd)
		assert.Empty(t, week[wd].Intervals)
	}
}

func TestGetWeek_UnknownAgentOrService(t *testing.T) {
	uc := NewGetWeek(newFakeRepo())

	_, err := uc.Execute(context.Background(), 42, 10)
	assert.True(t, httperr.IsBusiness(err, "agent_not_found"))

	_, err = uc.Execute(context.Background(), 1, 42)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestSetWeek_ReplacesTemplate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSetWeek(repo, nil, nil)

	err := uc.Execute(context.Background(), 1, 10, fullWeek())

	require.NoError(t, err)
	assert.Equal(t, 1, repo.replaceCalls)
	saved := repo.weeks[[2]uint{1, 10}]
	require.Len(t, saved, 7)
	assert.Len(t, saved[1].Intervals, 2)
}

func TestSetWeek_RejectsInvalidTemplates(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func([]scheduling.DayTemplate) []scheduling.DayTemplate
		wantCode string
	}{
		{
			"short week",
			func(w []scheduling.DayTemplate) []scheduling.DayTemplate { return w[:6] },
			"incomplete_week",
		},
		{
			"duplicate weekday",
			func(w []scheduling.DayTemplate) []scheduling.DayTemplate { w[2].Weekday = 1; return w },
			"invalid_weekday_set",
		},
		{
			"unavailable day with intervals",
			func(w []scheduling.DayTemplate) []scheduling.DayTemplate {
				w[1].Unavailable = true
				return w
			},
			"unavailable_day_has_intervals",
		},
		{
			"zero-length interval",
			func(w []scheduling.DayTemplate) []scheduling.DayTemplate {
				w[1].Intervals[0] = scheduling.Interval{Start: "09:00", End: "09:00"}
				return w
			},
			"empty_interval",
		},
		{
			"overlapping intervals",
			func(w []scheduling.DayTemplate) []scheduling.DayTemplate {
				w[1].Intervals = []scheduling.Interval{
					{Start: "09:00", End: "12:00"},
					{Start: "11:00", End: "15:00"},
				}
				return w
			},
			"overlapping_intervals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := NewSetWeek(repo, nil, nil)

			err := uc.Execute(context.Background(), 1, 10, tt.mutate(fullWeek()))

			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
			assert.Zero(t, repo.replaceCalls)
		})
	}
}

func TestSetWeek_UnknownAgentOrService(t *testing.T) {
	uc := NewSetWeek(newFakeRepo(), nil, nil)

	err := uc.Execute(context.Background(), 42, 10, fullWeek())
	assert.True(t, httperr.IsBusiness(err, "agent_not_found"))

	err = uc.Execute(context.Background(), 1, 42, fullWeek())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
