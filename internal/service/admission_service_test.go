package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msaedi/instructly-sub007/internal/models"
	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
)

func newAdmissionFixture(t *testing.T) (*AdmissionService, *engineFixture) {
	t.Helper()
	fx := newEngineFixture(t)
	_, err := fx.service.SaveWeekBits(context.Background(), testInstructor, SaveWeekRequest{
		WeekStart: testWeekStart,
		Windows:   map[string][]models.Window{testWeekStart: windows("09:00:00", "12:00:00")},
	}, nil)
	require.NoError(t, err)
	return NewAdmissionService(fx.service, zap.NewNop(), nil), fx
}

func TestAdmissionValidate(t *testing.T) {
	svc, _ := newAdmissionFixture(t)
	ctx := context.Background()

	cases := []struct {
		name      string
		date      string
		start     string
		end       string
		available bool
	}{
		{"inside open window", testWeekStart, "09:00:00", "10:00:00", true},
		{"exact open window", testWeekStart, "09:00:00", "12:00:00", true},
		{"single slot", testWeekStart, "11:30:00", "12:00:00", true},
		{"runs past the window", testWeekStart, "11:00:00", "13:00:00", false},
		{"fully outside", testWeekStart, "14:00:00", "15:00:00", false},
		{"adjacent after", testWeekStart, "12:00:00", "13:00:00", false},
		{"day with no availability", "2026-09-08", "09:00:00", "10:00:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Validate(ctx, testInstructor, tc.date, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.available, result.Available)
			if tc.available {
				assert.Empty(t, result.Reason)
			} else {
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestAdmissionValidateMalformedInput(t *testing.T) {
	svc, _ := newAdmissionFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		date  string
		start string
		end   string
	}{
		{"bad date", "september 7", "09:00:00", "10:00:00"},
		{"inverted window", testWeekStart, "12:00:00", "09:00:00"},
		{"misaligned start", testWeekStart, "09:10:00", "10:00:00"},
		{"sentinel as start", testWeekStart, "24:00:00", "24:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Validate(ctx, testInstructor, tc.date, tc.start, tc.end)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestAdmissionValidateEndOfDay(t *testing.T) {
	fx := newEngineFixture(t)
	ctx := context.Background()
	_, err := fx.service.SaveWeekBits(ctx, testInstructor, SaveWeekRequest{
		WeekStart: testWeekStart,
		Windows:   map[string][]models.Window{testWeekStart: windows("22:00:00", "24:00:00")},
	}, nil)
	require.NoError(t, err)
	svc := NewAdmissionService(fx.service, zap.NewNop(), nil)

	result, err := svc.Validate(ctx, testInstructor, testWeekStart, "23:30:00", "24:00:00")
	require.NoError(t, err)
	assert.True(t, result.Available)

	// the sentinel never bleeds into the next day
	result, err = svc.Validate(ctx, testInstructor, "2026-09-08", "00:00:00", "00:30:00")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestAdmissionValidateSurvivesCacheOutage(t *testing.T) {
	svc, fx := newAdmissionFixture(t)
	fx.cache.failing = true

	result, err := svc.Validate(context.Background(), testInstructor, testWeekStart, "09:00:00", "10:00:00")
	require.NoError(t, err)
	assert.True(t, result.Available)
}
