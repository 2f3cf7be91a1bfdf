package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// URLCache keeps resolved access URLs in redis for a TTL below the URL
// validity window, so hot list views skip the collaborator round trip.
type URLCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewURLCache(addr, password string, ttl time.Duration) (*URLCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &URLCache{client: rdb, ttl: ttl}, nil
}

func cacheKey(key string) string {
	return "asset:url:" + key
}

// Get returns the cached URLs for the given keys. Missing or failed lookups
// are simply absent from the result; the cache never fails a read path.
func (c *URLCache) Get(ctx context.Context, keys []string) map[string]string {
	if len(keys) == 0 {
		return map[string]string{}
	}

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = cacheKey(k)
	}

	found := make(map[string]string, len(keys))
	values, err := c.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return found
	}
	for i, v := range values {
		if s, ok := v.(string); ok && s != "" {
			found[keys[i]] = s
		}
	}
	return found
}

func (c *URLCache) Set(ctx context.Context, key, url string) {
	// Best effort; a failed write only costs a future cache miss.
	c.client.Set(ctx, cacheKey(key), url, c.ttl)
}

func (c *URLCache) Close() error {
	return c.client.Close()
}
