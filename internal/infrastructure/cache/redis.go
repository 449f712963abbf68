// Package cache wraps Redis for best-effort caching. A nil *Cache or one
// built without a reachable server is valid and never hits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"peopleconnect/pkg/logger"
)

type Cache struct {
	client *redis.Client
	prefix string
}

// Connect returns a Cache for addr, which is either host:port or a redis://
// URL. On any failure it logs and returns a disabled cache.
func Connect(addr, prefix string) *Cache {
	if addr == "" {
		logger.Info("REDIS_URL not set; running without cache")
		return New(nil, prefix)
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			logger.Warn("Invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			return New(nil, prefix)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed: %v (continuing without cache)", err)
		_ = client.Close()
		return New(nil, prefix)
	}

	logger.Info("Redis connected at %s", opts.Addr)
	return New(client, prefix)
}

func New(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// GetJSON reports (true, nil) on a hit, (false, nil) on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	s, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(s, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), b, ttl).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
