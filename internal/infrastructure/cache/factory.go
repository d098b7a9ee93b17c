package cache

import (
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/config"
)

// NewLookupCache picks Redis when it is configured and reachable, and the
// in-memory cache otherwise.
func NewLookupCache(cfg config.RedisConfig, logger *zap.Logger) LookupCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" {
		logger.Info("redis not configured, using in-memory lookup cache")
		return NewInMemoryLookupCache(cfg.LookupTTL)
	}

	c, err := NewRedisLookupCache(RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
		TTL:      cfg.LookupTTL,
	}, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory lookup cache. "+
			"Instances will not share cached lookups.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewInMemoryLookupCache(cfg.LookupTTL)
	}

	logger.Info("using Redis lookup cache", zap.String("addr", cfg.Addr()))
	return c
}
