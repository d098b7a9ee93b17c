package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLookupTTL is used when neither the caller nor the config sets a TTL.
const DefaultLookupTTL = 5 * time.Minute

// LookupCache stores serialized reference lookups. A miss is (nil, false, nil).
type LookupCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// InvalidateAll drops every lookup entry, for example after an upload
	InvalidateAll(ctx context.Context) error

	Close() error
}

// GetJSON loads key into dst.
func GetJSON(ctx context.Context, c LookupCache, key string, dst any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal lookup %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key.
func SetJSON(ctx context.Context, c LookupCache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup %s: %w", key, err)
	}
	return c.Set(ctx, key, data, ttl)
}
