package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedhosni23/apple-store-bi-project/models"
	"github.com/redis/go-redis/v9"
)

const (
	KPICacheKey        = "bi:kpis:summary"
	DefaultKPICacheTTL = 5 * time.Minute
)

// ErrCacheMiss is returned by KPICache.Get when nothing is cached.
var ErrCacheMiss = errors.New("kpi cache miss")

// KPICache stores the latest dashboard summary.
type KPICache interface {
	Get(ctx context.Context) (*models.KPISummary, error)
	Set(ctx context.Context, summary *models.KPISummary) error
	Invalidate(ctx context.Context) error
}

// RedisKPICache keeps the summary as JSON under a single key.
type RedisKPICache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisKPICache(client *redis.Client, ttl time.Duration) *RedisKPICache {
	if ttl <= 0 {
		ttl = DefaultKPICacheTTL
	}
	return &RedisKPICache{redis: client, ttl: ttl}
}

func (c *RedisKPICache) Get(ctx context.Context) (*models.KPISummary, error) {
	raw, err := c.redis.Get(ctx, KPICacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read kpi cache: %w", err)
	}
	var summary models.KPISummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decode kpi cache: %w", err)
	}
	return &summary, nil
}

func (c *RedisKPICache) Set(ctx context.Context, summary *models.KPISummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode kpi cache: %w", err)
	}
	if err := c.redis.Set(ctx, KPICacheKey, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("write kpi cache: %w", err)
	}
	return nil
}

func (c *RedisKPICache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, KPICacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate kpi cache: %w", err)
	}
	return nil
}
