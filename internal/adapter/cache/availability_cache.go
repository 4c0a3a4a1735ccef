package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

const (
	DefaultTTL = 30 * time.Second

	// dayGenerationTTL bounds how long a per-date counter lives after its last
	// bump. It must stay far above any entry TTL so a reset counter never
	// addresses a live entry.
	dayGenerationTTL = 7 * 24 * time.Hour
)

// AvailabilityCache stores each computed day under a key that embeds the
// area and date generations. Invalidation bumps a counter instead of deleting,
// so a reader that snapshotted before a write can only fill a key nobody reads
// anymore.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func AreaGenerationKey(areaID uuid.UUID) string {
	return fmt.Sprintf("availability:%s:gen", areaID.String())
}

func DayGenerationKey(areaID uuid.UUID, date string) string {
	return fmt.Sprintf("availability:%s:%s:gen", areaID.String(), date)
}

func Key(areaID uuid.UUID, date, generation string) string {
	return fmt.Sprintf("availability:%s:%s:%s", areaID.String(), date, generation)
}

// Generation returns the current "<area>.<day>" generation for date.
// Missing counters read as zero.
func (c *AvailabilityCache) Generation(ctx context.Context, areaID uuid.UUID, date string) (string, error) {
	vals, err := c.client.MGet(ctx, AreaGenerationKey(areaID), DayGenerationKey(areaID, date)).Result()
	if err != nil {
		return "", err
	}
	if len(vals) != 2 {
		return "", fmt.Errorf("unexpected generation reply of %d values", len(vals))
	}

	area, err := counter(vals[0])
	if err != nil {
		return "", err
	}
	day, err := counter(vals[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", area, day), nil
}

func (c *AvailabilityCache) Get(ctx context.Context, areaID uuid.UUID, date, generation string) (*domain.Availability, error) {
	data, err := c.client.Get(ctx, Key(areaID, date, generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var availability domain.Availability
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, fmt.Errorf("corrupt availability cache entry: %w", err)
	}
	return &availability, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, areaID uuid.UUID, date, generation string, availability *domain.Availability) error {
	data, err := json.Marshal(availability)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(areaID, date, generation), data, c.ttl).Err()
}

func (c *AvailabilityCache) InvalidateDay(ctx context.Context, areaID uuid.UUID, date string) error {
	key := DayGenerationKey(areaID, date)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, dayGenerationTTL).Err()
}

func (c *AvailabilityCache) InvalidateArea(ctx context.Context, areaID uuid.UUID) error {
	return c.client.Incr(ctx, AreaGenerationKey(areaID)).Err()
}

func counter(v interface{}) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case string:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt availability generation %q: %w", s, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected availability generation type %T", v)
	}
}
