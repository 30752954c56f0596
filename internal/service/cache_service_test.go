package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCacheServiceKeys(t *testing.T) {
	assert.Equal(t, "avail:day:i-1:2026-09-07", DayKey("i-1", "2026-09-07"))
	assert.Equal(t, "avail:week:i-1:2026-09-07", WeekKey("i-1", "2026-09-07"))
	assert.Equal(t, "avail:*:i-1:*", InstructorPattern("i-1"))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	svc.SetDay(ctx, DayKey("i-1", "2026-09-07"), "3ffc0")

	var raw string
	assert.True(t, svc.Get(ctx, DayKey("i-1", "2026-09-07"), &raw))
	assert.Equal(t, "3ffc0", raw)
	assert.False(t, svc.Get(ctx, DayKey("i-1", "2026-09-08"), &raw))
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	svc.SetDay(ctx, DayKey("i-1", "2026-09-07"), "ff")
	svc.SetWeek(ctx, WeekKey("i-1", "2026-09-07"), map[string]string{"2026-09-07": "ff"})
	svc.Invalidate(ctx, DayKey("i-1", "2026-09-07"), WeekKey("i-1", "2026-09-07"))

	var raw string
	assert.False(t, svc.Get(ctx, DayKey("i-1", "2026-09-07"), &raw))

	svc.SetDay(ctx, DayKey("i-1", "2026-09-07"), "ff")
	svc.InvalidateInstructor(ctx, "i-1")
	assert.False(t, svc.Get(ctx, DayKey("i-1", "2026-09-07"), &raw))
}

func TestCacheServiceAbsorbsBackendFailures(t *testing.T) {
	repo := newCacheRepoStub()
	repo.failing = true
	svc := NewCacheService(repo, nil, time.Minute, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var raw string
	assert.False(t, svc.Get(ctx, "k", &raw), "backend error is a miss")
	svc.SetDay(ctx, "k", "v")
	svc.Invalidate(ctx, "k")
	svc.InvalidateInstructor(ctx, "i-1")
}

func TestCacheServiceDisabled(t *testing.T) {
	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())

	var raw string
	assert.False(t, nilSvc.Get(context.Background(), "k", &raw))

	disabled := NewCacheService(newCacheRepoStub(), nil, 0, 0, zap.NewNop(), false)
	assert.False(t, disabled.Enabled())
	disabled.SetDay(context.Background(), "k", "v")
	assert.False(t, disabled.Get(context.Background(), "k", &raw))

	noRepo := NewCacheService(nil, nil, time.Minute, time.Minute, zap.NewNop(), true)
	assert.False(t, noRepo.Enabled())
}
