package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visabridge/agent-scheduler/internal/models"
)

func TestCancelTransitions(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		from   Status
		wantOK bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			b := &models.Booking{Status: string(tt.from)}
			err := Cancel(b, now)
			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, string(StatusCancelled), b.Status)
				require.NotNil(t, b.CancelledAt)
				assert.Equal(t, now, *b.CancelledAt)
			} else {
				assert.Error(t, err)
				assert.Equal(t, string(tt.from), b.Status)
			}
		})
	}
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)

	for _, from := range []Status{StatusPending, StatusCancelled, StatusCompleted, StatusNoShow} {
		b := &models.Booking{Status: string(from)}
		assert.Error(t, Complete(b, now), "from %s", from)
	}
}

func TestConfirmOnlyFromPending(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Confirm(b))
	assert.Equal(t, string(StatusConfirmed), b.Status)

	for _, from := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow} {
		b := &models.Booking{Status: string(from)}
		assert.Error(t, Confirm(b), "from %s", from)
	}
}

func TestMarkNoShowOnlyFromConfirmed(t *testing.T) {
	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, MarkNoShow(b))
	assert.Equal(t, string(StatusNoShow), b.Status)

	for _, from := range []Status{StatusPending, StatusCancelled, StatusCompleted, StatusNoShow} {
		b := &models.Booking{Status: string(from)}
		assert.Error(t, MarkNoShow(b), "from %s", from)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(true))
	assert.Equal(t, StatusPending, InitialStatus(false))
}
