package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/msaedi/instructly-sub007/internal/bitmap"
	"github.com/msaedi/instructly-sub007/internal/models"
	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
)

// AdmissionResult is the structured outcome of a booking admission check.
// "Not available" is a negative result, never an error, so the booking
// workflow handles both outcomes on one path.
type AdmissionResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AdmissionService confirms a proposed booking slot against the engine's
// read path. It performs no writes and is called synchronously just before
// the booking transaction commits.
type AdmissionService struct {
	availability *AvailabilityService
	logger       *zap.Logger
	metrics      *MetricsService
}

// NewAdmissionService builds the admission check.
func NewAdmissionService(availability *AvailabilityService, logger *zap.Logger, metrics *MetricsService) *AdmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{availability: availability, logger: logger, metrics: metrics}
}

// Validate converts the half-open interval into bit positions and confirms
// every required slot is open. Malformed input is a validation error;
// an unavailable slot is a negative result.
func (s *AdmissionService) Validate(ctx context.Context, instructorID, date, start, end string) (*AdmissionResult, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	span, err := bitmap.ParseSpan(start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time window")
	}

	weekStart := WeekStartOf(day)
	bits, err := s.availability.GetWeekBits(ctx, instructorID, weekStart, true)
	if err != nil {
		return nil, err
	}

	idx, ok := weekIndex(day, weekStart)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInternal, "date resolution failed")
	}

	result := &AdmissionResult{Available: bits[idx].Contains(span)}
	if !result.Available {
		result.Reason = "requested time is not open on " + date
	}
	s.metrics.RecordAdmissionCheck(result.Available)
	s.logger.Debug("admission check",
		zap.String("instructor_id", instructorID),
		zap.String("date", date),
		zap.String("window", models.Window{Start: start, End: end}.String()),
		zap.Bool("available", result.Available),
	)
	return result, nil
}
