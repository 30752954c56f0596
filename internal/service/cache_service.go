package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DayKey addresses one instructor-day's raw bits in the day namespace.
func DayKey(instructorID, date string) string {
	return fmt.Sprintf("avail:day:%s:%s", instructorID, date)
}

// WeekKey addresses one composite decoded week in the week namespace.
func WeekKey(instructorID, weekStart string) string {
	return fmt.Sprintf("avail:week:%s:%s", instructorID, weekStart)
}

// InstructorPattern matches every cached entry of one instructor across both
// namespaces.
func InstructorPattern(instructorID string) string {
	return fmt.Sprintf("avail:*:%s:*", instructorID)
}

// CacheService fronts the two availability cache namespaces behind one
// nil-safe facade. Backend failures are logged and surface as misses; the
// engine never assumes a cache is present.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	dayTTL  time.Duration
	weekTTL time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, dayTTL, weekTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if dayTTL <= 0 {
		dayTTL = 10 * time.Minute
	}
	if weekTTL <= 0 {
		weekTTL = 10 * time.Minute
	}
	return &CacheService{repo: repo, metrics: metrics, dayTTL: dayTTL, weekTTL: weekTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true only on a hit;
// backend errors are absorbed.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, duration)
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) && s.logger != nil {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(true, duration)
	}
	return true
}

// SetDay stores a value in the day namespace. Failures are logged only.
func (s *CacheService) SetDay(ctx context.Context, key string, value interface{}) {
	s.set(ctx, key, value, s.dayTTL)
}

// SetWeek stores a value in the week namespace. Failures are logged only.
func (s *CacheService) SetWeek(ctx context.Context, key string, value interface{}) {
	s.set(ctx, key, value, s.weekTTL)
}

func (s *CacheService) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes the given keys, absorbing failures.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	if err := s.repo.Delete(ctx, keys...); err != nil && s.logger != nil {
		s.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateInstructor removes every cached entry for one instructor.
func (s *CacheService) InvalidateInstructor(ctx context.Context, instructorID string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, InstructorPattern(instructorID)); err != nil && s.logger != nil {
		s.logger.Warn("cache invalidate failed", zap.String("instructor_id", instructorID), zap.Error(err))
	}
}
