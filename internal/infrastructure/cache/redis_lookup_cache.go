package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultScanBatchSize = 100
	lookupKeyPrefix      = "lookup:"
)

// RedisLookupCache implements LookupCache using Redis
type RedisLookupCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisLookupCache connects to Redis and pings it
func NewRedisLookupCache(cfg RedisConfig, logger *zap.Logger) (*RedisLookupCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisLookupCacheWithClient(client, cfg.TTL, logger)
	c.ownsClient = true
	return c, nil
}

// NewRedisLookupCacheWithClient wraps a client owned by the caller
func NewRedisLookupCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLookupCache {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLookupCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves a lookup from Redis
func (c *RedisLookupCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, lookupKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("lookup cache miss", zap.String("key", key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get lookup from cache: %w", err)
	}
	return data, true, nil
}

// Set stores a lookup; a zero ttl uses the configured one
func (c *RedisLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.client.Set(ctx, lookupKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set lookup in cache: %w", err)
	}
	return nil
}

// InvalidateAll removes every lookup key. SCAN keeps Redis responsive
// where KEYS would block it.
func (c *RedisLookupCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	var deleted int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, lookupKeyPrefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("invalidated lookup cache", zap.Int64("deleted_count", deleted))
	return nil
}

// Close closes the client when the cache created it
func (c *RedisLookupCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ LookupCache = (*RedisLookupCache)(nil)
