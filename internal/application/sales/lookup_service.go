package sales

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/cache"
)

const (
	yearsKey  = "years"
	monthsKey = "months"
)

// LookupService serves the report filter values through the lookup cache.
type LookupService struct {
	repo   sales.LookupRepository
	cache  cache.LookupCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewLookupService creates a new LookupService. lookups may be nil to
// disable caching.
func NewLookupService(repo sales.LookupRepository, lookups cache.LookupCache, ttl time.Duration, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{repo: repo, cache: lookups, ttl: ttl, logger: logger}
}

// Values returns the distinct values of field
func (s *LookupService) Values(ctx context.Context, field sales.LookupField) ([]string, error) {
	if !field.Valid() {
		return nil, shared.ErrInvalidInput.WithMessage("Unknown lookup: " + string(field))
	}
	return cached(ctx, s, string(field), func() ([]string, error) {
		return s.repo.Distinct(ctx, field)
	})
}

// Years returns the years that have dated records
func (s *LookupService) Years(ctx context.Context) ([]int, error) {
	return cached(ctx, s, yearsKey, func() ([]int, error) {
		return s.repo.Years(ctx)
	})
}

// Months returns the month reference table
func (s *LookupService) Months(ctx context.Context) ([]MonthResponse, error) {
	return cached(ctx, s, monthsKey, func() ([]MonthResponse, error) {
		months, err := s.repo.Months(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]MonthResponse, len(months))
		for i, m := range months {
			out[i] = MonthResponse{ID: m.ID, Name: m.Name}
		}
		return out, nil
	})
}

// cached reads key from the cache or loads and stores it. Cache failures
// fall through to the loader.
func cached[T any](ctx context.Context, s *LookupService, key string, load func() (T, error)) (T, error) {
	if s.cache != nil {
		var hit T
		ok, err := cache.GetJSON(ctx, s.cache, key, &hit)
		if err != nil {
			s.logger.Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return hit, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, value, s.ttl); err != nil {
			s.logger.Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}
