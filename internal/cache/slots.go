package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/visabridge/agent-scheduler/internal/domain/scheduling"
)

const slotTTL = 2 * time.Minute

// SlotCache keeps computed slot lists in Redis for a short window. Every key
// is also tracked in a per-agent set so any write against the agent (booking
// created, cancelled, rescheduled, template saved) can drop all of the
// agent's cached days at once. A nil *SlotCache is a no-op, so the cache is
// optional at runtime.
type SlotCache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *SlotCache {
	if rdb == nil {
		return nil
	}
	return &SlotCache{rdb: rdb}
}

// NewClient connects to Redis, or returns nil when no URL is configured.
func NewClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Println("invalid REDIS_URL, slot cache disabled:", err)
		return nil
	}

	return redis.NewClient(opts)
}

func slotKey(agentID, serviceID uint, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", agentID, serviceID, date)
}

func agentSetKey(agentID uint) string {
	return fmt.Sprintf("slotkeys:%d", agentID)
}

func (c *SlotCache) Get(
	ctx context.Context,
	agentID uint,
	serviceID uint,
	date string,
) ([]scheduling.TimeSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotKey(agentID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []scheduling.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) Put(
	ctx context.Context,
	agentID uint,
	serviceID uint,
	date string,
	slots []scheduling.TimeSlot,
) {

	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	key := slotKey(agentID, serviceID, date)
	setKey := agentSetKey(agentID)

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, slotTTL)
	pipe.SAdd(ctx, setKey, key)
	pipe.Expire(ctx, setKey, slotTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Println("slot cache put failed:", err)
	}
}

// Invalidate drops every cached slot list for the agent.
func (c *SlotCache) Invalidate(ctx context.Context, agentID uint) {
	if c == nil {
		return
	}

	setKey := agentSetKey(agentID)

	keys, err := c.rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return
	}

	keys = append(keys, setKey)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("slot cache invalidate failed:", err)
	}
}
