package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
	"github.com/visabridge/agent-scheduler/internal/httperr"
	"github.com/visabridge/agent-scheduler/internal/models"
)

func seedBooking(t *testing.T, repo *fakeRepo, status scheduling.Status, start time.Time) *models.Booking {
	t.Helper()
	b := &models.Booking{
		AgentID:     1,
		Reference:   "ref-" + start.Format("1504"),
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      string(status),
		MeetingType: "online",
		ClientName:  "Joana Costa",
		ClientEmail: "joana@example.com",
		ClientPhone: "+61 400 000 000",
	}
	require.NoError(t, repo.CreateBookingIfFree(context.Background(), b))
	// CreateBookingIfFree stores a copy, fetch the stored one.
	stored, err := repo.GetBookingForAgent(context.Background(), b.ID, 1)
	require.NoError(t, err)
	return stored
}

func newLifecycleRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addAgent(models.Agent{ID: 1, Name: "Ana Pereira", Slug: "ana-pereira", Timezone: "UTC", Active: true})
	return repo
}

func TestCancelBooking(t *testing.T) {
	repo := newLifecycleRepo()
	b := seedBooking(t, repo, scheduling.StatusConfirmed, testMonday.Add(10*time.Hour))

	uc := NewCancelBooking(repo, nil, nil)
	cancelled, err := uc.Execute(context.Background(), 1, 7, b.ID)

	require.NoError(t, err)
	assert.Equal(t, string(scheduling.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelBooking_TerminalRejected(t *testing.T) {
	repo := newLifecycleRepo()
	b := seedBooking(t, repo, scheduling.StatusCompleted, testMonday.Add(10*time.Hour))

	uc := NewCancelBooking(repo, nil, nil)
	_, err := uc.Execute(context.Background(), 1, 7, b.ID)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBooking_NotFound(t *testing.T) {
	repo := newLifecycleRepo()

	uc := NewCancelBooking(repo, nil, nil)
	_, err := uc.Execute(context.Background(), 1, 7, 999)

	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestCancelByReference(t *testing.T) {
	repo := newLifecycleRepo()
	b := seedBooking(t, repo, scheduling.StatusConfirmed, testMonday.Add(10*time.Hour))

	uc := NewCancelByReference(repo, nil, nil)
	cancelled, err := uc.Execute(context.Background(), b.Reference)

	require.NoError(t, err)
	assert.Equal(t, string(scheduling.StatusCancelled), cancelled.Status)

	_, err = uc.Execute(context.Background(), "no-such-reference")
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestConfirmBooking(t *testing.T) {
	repo := newLifecycleRepo()
	pending := seedBooking(t, repo, scheduling.StatusPending, testMonday.Add(10*time.Hour))
	confirmed := seedBooking(t, repo, scheduling.StatusConfirmed, testMonday.Add(11*time.Hour))

	uc := NewConfirmBooking(repo, nil)

	b, err := uc.Execute(context.Background(), 1, 7, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, string(scheduling.StatusConfirmed), b.Status)

	// Only pending bookings can be confirmed.
	_, err = uc.Execute(context.Background(), 1, 7, confirmed.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteBooking(t *testing.T) {
	repo := newLifecycleRepo()
	b := seedBooking(t, repo, scheduling.StatusConfirmed, testMonday.Add(10*time.Hour))

	uc := NewCompleteBooking(repo, nil)
	done, err := uc.Execute(context.Background(), 1, 7, b.ID)

	require.NoError(t, err)
	assert.Equal(t, string(scheduling.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = uc.Execute(context.Background(), 1, 7, b.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkNoShow(t *testing.T) {
	repo := newLifecycleRepo()
	confirmed := seedBooking(t, repo, scheduling.StatusConfirmed, testMonday.Add(10*time.Hour))
	pending := seedBooking(t, repo, scheduling.StatusPending, testMonday.Add(11*time.Hour))

	uc := NewMarkNoShow(repo, nil)

	b, err := uc.Execute(context.Background(), 1, 7, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(scheduling.StatusNoShow), b.Status)

	_, err = uc.Execute(context.Background(), 1, 7, pending.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
