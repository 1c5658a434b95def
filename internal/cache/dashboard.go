package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profitlens/backend-go/internal/config"
	"github.com/profitlens/backend-go/internal/domain"
)

const (
	dashboardKeyPrefix  = "dashboard:metrics"
	scanBatchSize       = 100
	defaultDashboardTTL = time.Minute
)

// DashboardCache stores computed dashboard snapshots per filter. Mutating
// the product list invalidates every entry; recomputation is cheap, the
// cache only absorbs repeated reads of an unchanged list.
type DashboardCache interface {
	Get(ctx context.Context, filter domain.ProductFilter) (*domain.DashboardMetrics, bool, error)
	Set(ctx context.Context, filter domain.ProductFilter, metrics *domain.DashboardMetrics) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache returns a Redis-backed cache, or a noop one when
// caching is disabled.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

// NewNoopDashboardCache returns a cache that never hits.
func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

// NewRedisDashboardCache wraps an existing client; used by tests.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &redisDashboardCache{client: client, ttl: ttl}
}

func (c *redisDashboardCache) Get(ctx context.Context, filter domain.ProductFilter) (*domain.DashboardMetrics, bool, error) {
	key := buildDashboardKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var metrics domain.DashboardMetrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil, false, fmt.Errorf("decode dashboard metrics cache: %w", err)
	}

	return &metrics, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, filter domain.ProductFilter, metrics *domain.DashboardMetrics) error {
	key := buildDashboardKey(filter)
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encode dashboard metrics cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, filter domain.ProductFilter) (*domain.DashboardMetrics, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, filter domain.ProductFilter, metrics *domain.DashboardMetrics) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardKey(filter domain.ProductFilter) string {
	if filter.Search == "" && filter.Category == nil {
		return dashboardKeyPrefix + ":default"
	}

	raw := "search=" + filter.Search
	if filter.Category != nil {
		raw += "|category=" + *filter.Category
	}

	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}
