package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reservasalas/internal/entities"
)

const keyPrefix = "availability:"

// AvailabilityCache keeps the assembled daily matrix in Redis so repeated
// grid loads for the same date skip the database. A nil cache (Redis not
// configured) is a no-op and every call falls through to the database.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, date string) (entities.DailyAvailabilityResponse, bool) {
	var resp entities.DailyAvailabilityResponse
	if c == nil || c.rdb == nil {
		return resp, false
	}
	raw, err := c.rdb.Get(ctx, keyPrefix+date).Bytes()
	if err != nil {
		// redis.Nil and transport failures are both treated as a miss.
		return resp, false
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, false
	}
	return resp, true
}

func (c *AvailabilityCache) Set(ctx context.Context, date string, resp entities.DailyAvailabilityResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+date, raw, c.ttl).Err(); err != nil {
		log.Printf("availability cache set failed for %s: %v", date, err)
	}
}

// Invalidate drops the cached matrix for the given dates. Called after any
// reservation write so the next grid load sees fresh data.
func (c *AvailabilityCache) Invalidate(ctx context.Context, dates ...string) {
	if c == nil || c.rdb == nil || len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, keyPrefix+d)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("availability cache invalidate failed: %v", err)
	}
}
