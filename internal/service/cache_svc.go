package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caffeinepub/streamhub-2/internal/model"
)

// Cache TTLs. Stats are cheap to recompute, so the window stays short;
// correctness never depends on the cache — every mutation invalidates.
const (
	StatsCacheTTL    = 30 * time.Second
	FeaturedCacheTTL = 5 * time.Minute
)

const (
	statsKey    = "stats:platform"
	featuredKey = "videos:featured"
)

// CacheService provides a Redis cache-aside layer for platform stats and the
// featured listing.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetStats retrieves cached platform stats. Returns nil on miss or when the
// cache is disabled.
func (c *CacheService) GetStats(ctx context.Context) (*model.PlatformStats, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats model.PlatformStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores platform stats with the short stats TTL.
func (c *CacheService) SetStats(ctx context.Context, stats *model.PlatformStats) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, b, StatsCacheTTL).Err()
}

// InvalidateStats drops the cached stats (called after any mutation that
// changes an aggregate).
func (c *CacheService) InvalidateStats(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, statsKey).Err()
}

// GetFeatured retrieves the cached featured listing. Returns nil on miss.
func (c *CacheService) GetFeatured(ctx context.Context) ([]model.Video, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, featuredKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var videos []model.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// SetFeatured stores the featured listing.
func (c *CacheService) SetFeatured(ctx context.Context, videos []model.Video) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, featuredKey, b, FeaturedCacheTTL).Err()
}

// InvalidateFeatured drops the cached featured listing (called after bulk
// feature/hide/remove and single removals).
func (c *CacheService) InvalidateFeatured(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, featuredKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
