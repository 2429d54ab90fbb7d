package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Availability caches computed slot lists per (firm, date). The TTL is
// short because same-day results depend on the current hour; correctness
// does not rest on the cache — every write path invalidates its day.
//
// A nil *Availability is valid and disables caching, so callers never
// have to branch on whether redis is configured.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, ttl time.Duration) *Availability {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Availability{rdb: rdb, ttl: ttl}
}

func key(firmID uint, day time.Time) string {
	return fmt.Sprintf("avail:%d:%s", firmID, day.Format("2006-01-02"))
}

func (c *Availability) Get(ctx context.Context, firmID uint, day time.Time) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(firmID, day)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Availability) Set(ctx context.Context, firmID uint, day time.Time, slots []string) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key(firmID, day), raw, c.ttl).Err(); err != nil {
		log.Println("availability cache set:", err)
	}
}

func (c *Availability) Invalidate(ctx context.Context, firmID uint, day time.Time) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(firmID, day)).Err(); err != nil {
		log.Println("availability cache invalidate:", err)
	}
}

// InvalidateFirm drops every cached day for a firm. Used when the firm's
// opening hours or timezone change, which shifts slots on all dates at once.
func (c *Availability) InvalidateFirm(ctx context.Context, firmID uint) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*", firmID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("availability cache invalidate firm:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("availability cache scan:", err)
	}
}
