package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
)

func newTestCache(t *testing.T) (*SlotCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb), mr
}

func TestSlotCache_PutGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	slots := []scheduling.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
	}

	_, ok := c.Get(ctx, 1, 10, "2026-09-07")
	assert.False(t, ok)

	c.Put(ctx, 1, 10, "2026-09-07", slots)

	got, ok := c.Get(ctx, 1, 10, "2026-09-07")
	require.True(t, ok)
	assert.Equal(t, slots, got)

	// Other agent/service/date keys stay independent.
	_, ok = c.Get(ctx, 2, 10, "2026-09-07")
	assert.False(t, ok)
	_, ok = c.Get(ctx, 1, 10, "2026-09-08")
	assert.False(t, ok)
}

func TestSlotCache_EmptyListIsCacheable(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, 1, 10, "2026-09-06", []scheduling.TimeSlot{})

	got, ok := c.Get(ctx, 1, 10, "2026-09-06")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestSlotCache_InvalidateDropsAllAgentKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	slots := []scheduling.TimeSlot{{Start: "09:00", End: "09:30"}}
	c.Put(ctx, 1, 10, "2026-09-07", slots)
	c.Put(ctx, 1, 10, "2026-09-08", slots)
	c.Put(ctx, 1, 11, "2026-09-07", slots)
	c.Put(ctx, 2, 10, "2026-09-07", slots)

	c.Invalidate(ctx, 1)

	for _, date := range []string{"2026-09-07", "2026-09-08"} {
		_, ok := c.Get(ctx, 1, 10, date)
		assert.False(t, ok, "agent 1 key for %s should be gone", date)
	}
	_, ok := c.Get(ctx, 1, 11, "2026-09-07")
	assert.False(t, ok)

	// The other agent's cache survives.
	_, ok = c.Get(ctx, 2, 10, "2026-09-07")
	assert.True(t, ok)

	assert.False(t, mr.Exists("slotkeys:1"))
}

func TestSlotCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, 1, 10, "2026-09-07", []scheduling.TimeSlot{{Start: "09:00", End: "09:30"}})

	mr.FastForward(slotTTL + 1)

	_, ok := c.Get(ctx, 1, 10, "2026-09-07")
	assert.False(t, ok)
}

func TestSlotCache_NilIsNoOp(t *testing.T) {
	var c *SlotCache
	ctx := context.Background()

	c.Put(ctx, 1, 10, "2026-09-07", []scheduling.TimeSlot{{Start: "09:00", End: "09:30"}})
	_, ok := c.Get(ctx, 1, 10, "2026-09-07")
	assert.False(t, ok)
	c.Invalidate(ctx, 1)

	assert.Nil(t, New(nil))
}
