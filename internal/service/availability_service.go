package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/msaedi/instructly-sub007/internal/bitmap"
	"github.com/msaedi/instructly-sub007/internal/models"
	"github.com/msaedi/instructly-sub007/internal/repository"
	"github.com/msaedi/instructly-sub007/pkg/config"
	appErrors "github.com/msaedi/instructly-sub007/pkg/errors"
)

type availabilityRepo interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	GetDay(ctx context.Context, instructorID string, date time.Time) (*models.DayAvailability, error)
	GetWeek(ctx context.Context, instructorID string, weekStart time.Time) ([]models.DayAvailability, error)
	UpsertWeek(ctx context.Context, exec sqlx.ExtContext, rows []models.DayAvailability) error
	ClearDays(ctx context.Context, exec sqlx.ExtContext, instructorID string, dates []time.Time) error
}

type instructorRepo interface {
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
}

type auditRepo interface {
	Create(ctx context.Context, exec sqlx.ExtContext, entry *models.AuditLog) error
}

type outboxRepo interface {
	Create(ctx context.Context, exec sqlx.ExtContext, event *models.OutboxEvent) error
}

// SaveWeekRequest captures one week-scoped availability write.
//
// Windows is keyed by ISO date; a date absent from the map is left
// untouched, while a date present with an empty list is a no-op under merge
// and clears the day when clearing covers it. ClearExisting rebuilds every
// submitted day from scratch; ClearDays names days to wipe outright.
type SaveWeekRequest struct {
	WeekStart     string                     `json:"week_start" validate:"required"`
	Windows       map[string][]models.Window `json:"windows"`
	BaseVersion   string                     `json:"base_version"`
	Override      bool                       `json:"override"`
	ClearExisting bool                       `json:"clear_existing"`
	ClearDays     []string                   `json:"clear_days"`
}

// SaveWeekResult reports what a committed write did.
type SaveWeekResult struct {
	DaysWritten          int    `json:"days_written"`
	RowsWritten          int    `json:"rows_written"`
	Version              string `json:"version"`
	SkippedPastForbidden int    `json:"skipped_past_forbidden"`
	SkippedPastWindow    int    `json:"skipped_past_window"`
}

// DaySlotsView is one day of a week expanded to individual half-hour slots.
type DaySlotsView struct {
	Date  string            `json:"date"`
	Slots []models.SlotView `json:"slots"`
}

// WeekSlotsView is the slot-expanded variant of a week view.
type WeekSlotsView struct {
	InstructorID string         `json:"instructor_id"`
	WeekStart    string         `json:"week_start"`
	Days         []DaySlotsView `json:"days"`
	Version      string         `json:"version"`
}

// AvailabilityService orchestrates week reads and writes over the bitmap
// store: version hashing, guardrails, overlap validation, merge-vs-replace
// semantics, two-tier cache coherence and audit/outbox emission.
type AvailabilityService struct {
	repo        availabilityRepo
	instructors instructorRepo
	audits      auditRepo
	outbox      outboxRepo
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	metrics     *MetricsService
	cfg         config.AvailabilityConfig
	clock       Clock
}

// NewAvailabilityService builds the engine. The clock and availability
// config are injected so guardrails are deterministic under test.
func NewAvailabilityService(
	repo availabilityRepo,
	instructors instructorRepo,
	audits auditRepo,
	outbox outboxRepo,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg config.AvailabilityConfig,
	clock Clock,
) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &AvailabilityService{
		repo:        repo,
		instructors: instructors,
		audits:      audits,
		outbox:      outbox,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		metrics:     metrics,
		cfg:         cfg,
		clock:       clock,
	}
}

// WeekStartOf returns the Monday of the week containing date.
func WeekStartOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, raw)
}

func weekDates(weekStart time.Time) []time.Time {
	dates := make([]time.Time, repository.DaysPerWeek)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i)
	}
	return dates
}

// GetWeekBits resolves the seven day vectors for a week: composite week
// cache first, then the day-bit cache, then the store. Cache failures are
// treated as misses and never surface.
func (s *AvailabilityService) GetWeekBits(ctx context.Context, instructorID string, weekStart time.Time, useCache bool) ([]bitmap.DayBits, error) {
	dates := weekDates(weekStart)
	weekKey := weekStart.Format(models.DateLayout)

	if useCache && s.cache.Enabled() {
		if bits, ok := s.weekBitsFromCache(ctx, instructorID, weekKey, dates); ok {
			return bits, nil
		}
	}

	rows, err := s.repo.GetWeek(ctx, instructorID, weekStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week availability")
	}

	bits := make([]bitmap.DayBits, repository.DaysPerWeek)
	for i, row := range rows {
		b, err := bitmap.FromHex(row.Bits)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt availability payload")
		}
		bits[i] = b
	}

	if useCache {
		s.warmCaches(ctx, instructorID, weekKey, dates, bits)
	}
	return bits, nil
}

func (s *AvailabilityService) weekBitsFromCache(ctx context.Context, instructorID, weekKey string, dates []time.Time) ([]bitmap.DayBits, bool) {
	var composite map[string]string
	if s.cache.Get(ctx, WeekKey(instructorID, weekKey), &composite) {
		if bits, ok := bitsFromHexMap(composite, dates); ok {
			return bits, true
		}
	}

	bits := make([]bitmap.DayBits, repository.DaysPerWeek)
	for i, date := range dates {
		var raw string
		if !s.cache.Get(ctx, DayKey(instructorID, date.Format(models.DateLayout)), &raw) {
			return nil, false
		}
		b, err := bitmap.FromHex(raw)
		if err != nil {
			return nil, false
		}
		bits[i] = b
	}
	return bits, true
}

func bitsFromHexMap(composite map[string]string, dates []time.Time) ([]bitmap.DayBits, bool) {
	if composite == nil {
		return nil, false
	}
	bits := make([]bitmap.DayBits, repository.DaysPerWeek)
	for i, date := range dates {
		raw, ok := composite[date.Format(models.DateLayout)]
		if !ok {
			return nil, false
		}
		b, err := bitmap.FromHex(raw)
		if err != nil {
			return nil, false
		}
		bits[i] = b
	}
	return bits, true
}

func (s *AvailabilityService) warmCaches(ctx context.Context, instructorID, weekKey string, dates []time.Time, bits []bitmap.DayBits) {
	if !s.cache.Enabled() {
		return
	}
	composite := make(map[string]string, repository.DaysPerWeek)
	for i, date := range dates {
		key := date.Format(models.DateLayout)
		composite[key] = bits[i].Hex()
		s.cache.SetDay(ctx, DayKey(instructorID, key), bits[i].Hex())
	}
	s.cache.SetWeek(ctx, WeekKey(instructorID, weekKey), composite)
}

// GetWeekAvailability returns the decoded week view plus its version token.
func (s *AvailabilityService) GetWeekAvailability(ctx context.Context, instructorID, weekStart string, useCache bool) (*models.WeekView, error) {
	start, err := s.parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	bits, err := s.GetWeekBits(ctx, instructorID, start, useCache)
	if err != nil {
		return nil, err
	}

	days := make([]models.DayView, repository.DaysPerWeek)
	for i, date := range weekDates(start) {
		days[i] = models.DayView{
			Date:    date.Format(models.DateLayout),
			Windows: models.WindowsFromBits(bits[i]),
		}
	}
	return &models.WeekView{
		InstructorID: instructorID,
		WeekStart:    weekStart,
		Days:         days,
		Version:      ComputeWeekVersion(bits),
	}, nil
}

// GetWeekAvailabilityWithSlots expands each day into its 48 half-hour slots.
func (s *AvailabilityService) GetWeekAvailabilityWithSlots(ctx context.Context, instructorID, weekStart string, useCache bool) (*WeekSlotsView, error) {
	start, err := s.parseWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	bits, err := s.GetWeekBits(ctx, instructorID, start, useCache)
	if err != nil {
		return nil, err
	}

	days := make([]DaySlotsView, repository.DaysPerWeek)
	for i, date := range weekDates(start) {
		slots := make([]models.SlotView, bitmap.SlotsPerDay)
		for slot := 0; slot < bitmap.SlotsPerDay; slot++ {
			slots[slot] = models.SlotView{
				Start:     bitmap.FormatClock(slot),
				End:       bitmap.FormatClock(slot + 1),
				Available: bits[i].Contains(bitmap.Span{Start: slot, End: slot + 1}),
			}
		}
		days[i] = DaySlotsView{Date: date.Format(models.DateLayout), Slots: slots}
	}
	return &WeekSlotsView{
		InstructorID: instructorID,
		WeekStart:    weekStart,
		Days:         days,
		Version:      ComputeWeekVersion(bits),
	}, nil
}

// SaveWeekBits applies one week-scoped availability write end to end. Either
// the whole write commits, with guardrail skips reported, or it fails with a
// validation, overlap or version conflict and leaves no partial effect.
func (s *AvailabilityService) SaveWeekBits(ctx context.Context, instructorID string, req SaveWeekRequest, actorID *string) (*SaveWeekResult, error) {
	return s.saveWeek(ctx, instructorID, req, actorID, models.AuditActionWeekSave)
}

// AddSingleDate merges windows into one calendar day, reusing the week
// pipeline at day granularity.
func (s *AvailabilityService) AddSingleDate(ctx context.Context, instructorID, date string, windows []models.Window, actorID *string) (*SaveWeekResult, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	req := SaveWeekRequest{
		WeekStart: WeekStartOf(day).Format(models.DateLayout),
		Windows:   map[string][]models.Window{date: windows},
	}
	return s.saveWeek(ctx, instructorID, req, actorID, models.AuditActionDateAdd)
}

// AddBlackoutDate wipes one calendar day, making it fully unavailable.
func (s *AvailabilityService) AddBlackoutDate(ctx context.Context, instructorID, date string, actorID *string) (*SaveWeekResult, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	req := SaveWeekRequest{
		WeekStart: WeekStartOf(day).Format(models.DateLayout),
		ClearDays: []string{date},
	}
	return s.saveWeek(ctx, instructorID, req, actorID, models.AuditActionDateBlackout)
}

type dayPlan struct {
	index   int
	date    time.Time
	key     string
	windows []models.Window
	spans   []bitmap.Span
	newMask bitmap.DayBits
	clear   bool
}

func (s *AvailabilityService) saveWeek(ctx context.Context, instructorID string, req SaveWeekRequest, actorID *string, action string) (*SaveWeekResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	weekStart, err := s.parseWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	instructor, err := s.instructors.FindByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor")
	}

	clearSet, err := s.parseClearDays(req.ClearDays, weekStart)
	if err != nil {
		return nil, err
	}

	plans, err := s.normalize(req, weekStart, clearSet)
	if err != nil {
		return nil, err
	}

	result := &SaveWeekResult{}
	plans = s.applyGuardrails(plans, clearSet, s.instructorLocation(instructor), result)

	storedBits, storedRows, err := s.loadStoredWeek(ctx, instructorID, weekStart)
	if err != nil {
		return nil, err
	}

	if err := s.validateOverlaps(plans, storedBits); err != nil {
		s.metrics.RecordSaveConflict("overlap")
		return nil, err
	}

	if !req.Override && req.BaseVersion != "" {
		current := ComputeWeekVersion(storedBits)
		if current != req.BaseVersion {
			s.metrics.RecordSaveConflict("version")
			return nil, appErrors.NewVersionConflict(current, req.BaseVersion)
		}
	}

	finalBits := make([]bitmap.DayBits, repository.DaysPerWeek)
	copy(finalBits, storedBits)

	dates := weekDates(weekStart)
	affected := make(map[int]bool)
	for _, idx := range clearSet {
		finalBits[idx] = 0
		affected[idx] = true
	}
	for _, plan := range plans {
		if len(plan.spans) == 0 && !plan.clear {
			continue
		}
		base := finalBits[plan.index]
		if plan.clear {
			base = 0
		}
		finalBits[plan.index] = base.Union(plan.newMask)
		affected[plan.index] = true
		result.DaysWritten++
	}

	if len(affected) == 0 {
		result.Version = ComputeWeekVersion(storedBits)
		return result, nil
	}

	var upserts []models.DayAvailability
	var deletions []time.Time
	for idx := range affected {
		if finalBits[idx].IsEmpty() {
			deletions = append(deletions, dates[idx])
			continue
		}
		upserts = append(upserts, models.DayAvailability{
			ID:           storedRows[idx].ID,
			InstructorID: instructorID,
			Date:         dates[idx],
			Bits:         finalBits[idx].Hex(),
		})
	}
	result.RowsWritten = len(upserts) + len(deletions)
	result.Version = ComputeWeekVersion(finalBits)

	affectedDates := make([]string, 0, len(affected))
	snapshots := make([]models.WindowSnapshot, 0, len(affected))
	for idx := 0; idx < repository.DaysPerWeek; idx++ {
		if !affected[idx] {
			continue
		}
		key := dates[idx].Format(models.DateLayout)
		affectedDates = append(affectedDates, key)
		snapshots = append(snapshots, models.WindowSnapshot{
			Date:   key,
			Before: models.WindowsFromBits(storedBits[idx]),
			After:  models.WindowsFromBits(finalBits[idx]),
		})
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpsertWeek(ctx, tx, upserts); err != nil {
			return err
		}
		if err := s.repo.ClearDays(ctx, tx, instructorID, deletions); err != nil {
			return err
		}
		if err := s.emitOutbox(ctx, tx, instructorID, req.WeekStart, affectedDates, result.Version); err != nil {
			return err
		}
		return s.emitAudit(ctx, tx, instructorID, action, actorID, snapshots)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist week availability")
	}

	s.refreshCaches(ctx, instructorID, req.WeekStart, dates, affectedDates, finalBits)

	s.metrics.RecordWeekSave()
	s.logger.Info("availability week saved",
		zap.String("instructor_id", instructorID),
		zap.String("week_start", req.WeekStart),
		zap.Int("days_written", result.DaysWritten),
		zap.Int("rows_written", result.RowsWritten),
		zap.Int("skipped_past_forbidden", result.SkippedPastForbidden),
		zap.Int("skipped_past_window", result.SkippedPastWindow),
		zap.String("version", result.Version),
	)
	return result, nil
}

func (s *AvailabilityService) parseWeekStart(raw string) (time.Time, error) {
	start, err := parseDate(raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week_start")
	}
	if start.Weekday() != time.Monday {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "week_start must be a Monday")
	}
	return start, nil
}

func (s *AvailabilityService) parseClearDays(raw []string, weekStart time.Time) (map[string]int, error) {
	clearSet := make(map[string]int, len(raw))
	for _, entry := range raw {
		date, err := parseDate(entry)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clear_days entry")
		}
		idx, ok := weekIndex(date, weekStart)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "clear_days entry outside the submitted week")
		}
		clearSet[entry] = idx
	}
	return clearSet, nil
}

func weekIndex(date, weekStart time.Time) (int, bool) {
	days := int(date.Sub(weekStart).Hours() / 24)
	if days < 0 || days >= repository.DaysPerWeek {
		return 0, false
	}
	return days, true
}

func (s *AvailabilityService) normalize(req SaveWeekRequest, weekStart time.Time, clearSet map[string]int) ([]dayPlan, error) {
	plans := make([]dayPlan, 0, len(req.Windows))
	for key, windows := range req.Windows {
		date, err := parseDate(key)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date in windows")
		}
		idx, ok := weekIndex(date, weekStart)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "window date "+key+" outside the submitted week")
		}

		_, clearDay := clearSet[key]
		plan := dayPlan{
			index:   idx,
			date:    date,
			key:     key,
			windows: windows,
			clear:   req.ClearExisting || clearDay,
		}
		for _, w := range windows {
			span, err := w.Span()
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window on "+key)
			}
			plan.spans = append(plan.spans, span)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (s *AvailabilityService) instructorLocation(instructor *models.Instructor) *time.Location {
	tz := instructor.Timezone
	if tz == "" {
		tz = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Warn("unknown instructor timezone, falling back to UTC",
			zap.String("instructor_id", instructor.ID), zap.String("timezone", tz))
		return time.UTC
	}
	return loc
}

// applyGuardrails drops past-dated submissions according to policy, counting
// skipped windows instead of failing so the valid remainder still commits.
func (s *AvailabilityService) applyGuardrails(plans []dayPlan, clearSet map[string]int, loc *time.Location, result *SaveWeekResult) []dayPlan {
	today := localToday(s.clock, loc)

	var cutoff time.Time
	switch s.cfg.PastEditPolicy {
	case config.PastEditAllowWithin:
		cutoff = today.AddDate(0, 0, -s.cfg.PastEditWindowDays)
	default:
		cutoff = today
	}

	kept := plans[:0]
	for _, plan := range plans {
		if plan.date.Before(cutoff) {
			if s.cfg.PastEditPolicy == config.PastEditAllowWithin {
				result.SkippedPastWindow += len(plan.windows)
			} else {
				result.SkippedPastForbidden += len(plan.windows)
			}
			continue
		}
		kept = append(kept, plan)
	}

	// Clearing a past day is governed by the same policy.
	for key := range clearSet {
		if date, err := parseDate(key); err == nil && date.Before(cutoff) {
			delete(clearSet, key)
		}
	}
	return kept
}

func (s *AvailabilityService) loadStoredWeek(ctx context.Context, instructorID string, weekStart time.Time) ([]bitmap.DayBits, []models.DayAvailability, error) {
	rows, err := s.repo.GetWeek(ctx, instructorID, weekStart)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stored week")
	}
	bits := make([]bitmap.DayBits, repository.DaysPerWeek)
	for i, row := range rows {
		b, err := bitmap.FromHex(row.Bits)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt availability payload")
		}
		bits[i] = b
	}
	return bits, rows, nil
}

// validateOverlaps rejects any true bit-level intersection among the new
// windows of a day, and between new and previously stored windows unless the
// day is being cleared. A new window bit-identical to a stored one is
// unchanged, never a conflict.
func (s *AvailabilityService) validateOverlaps(plans []dayPlan, storedBits []bitmap.DayBits) error {
	for p := range plans {
		plan := &plans[p]

		var acc bitmap.DayBits
		for j, span := range plan.spans {
			mask := span.Mask()
			if acc.Overlaps(mask) {
				for i := 0; i < j; i++ {
					if plan.spans[i].Mask().Overlaps(mask) {
						return appErrors.NewOverlapConflict(plan.key, plan.windows[i].String(), plan.windows[j].String())
					}
				}
			}
			acc = acc.Union(mask)
		}
		plan.newMask = acc

		if plan.clear {
			continue
		}
		existing := storedBits[plan.index]
		if existing.IsEmpty() {
			continue
		}
		existingSpans := bitmap.Decode(existing)
		for j, span := range plan.spans {
			mask := span.Mask()
			identical := false
			for _, e := range existingSpans {
				if e == span {
					identical = true
					break
				}
			}
			if identical {
				continue
			}
			if existing.Overlaps(mask) {
				for _, e := range existingSpans {
					if e.Mask().Overlaps(mask) {
						return appErrors.NewOverlapConflict(plan.key, models.WindowFromSpan(e).String(), plan.windows[j].String())
					}
				}
			}
		}
	}
	return nil
}

func (s *AvailabilityService) emitOutbox(ctx context.Context, tx *sqlx.Tx, instructorID, weekStart string, affectedDates []string, version string) error {
	payload, err := json.Marshal(models.WeekSavedPayload{
		InstructorID:  instructorID,
		WeekStart:     weekStart,
		AffectedDates: affectedDates,
		Version:       version,
	})
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, tx, &models.OutboxEvent{
		EventType:   models.OutboxEventWeekSaved,
		AggregateID: instructorID,
		Payload:     types.JSONText(payload),
	})
}

func (s *AvailabilityService) emitAudit(ctx context.Context, tx *sqlx.Tx, instructorID, action string, actorID *string, snapshots []models.WindowSnapshot) error {
	if !s.cfg.AuditEnabled {
		return nil
	}
	before := make([]models.WindowSnapshot, 0, len(snapshots))
	after := make([]models.WindowSnapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		before = append(before, models.WindowSnapshot{Date: snap.Date, Before: snap.Before})
		after = append(after, models.WindowSnapshot{Date: snap.Date, After: snap.After})
	}
	oldValues, err := json.Marshal(before)
	if err != nil {
		return err
	}
	newValues, err := json.Marshal(after)
	if err != nil {
		return err
	}
	resourceID := instructorID
	return s.audits.Create(ctx, tx, &models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		Resource:   "availability",
		ResourceID: &resourceID,
		OldValues:  oldValues,
		NewValues:  newValues,
	})
}

// refreshCaches invalidates the affected entries then best-effort re-warms
// both namespaces from the bits just written. Failures never block the
// caller.
func (s *AvailabilityService) refreshCaches(ctx context.Context, instructorID, weekStart string, dates []time.Time, affectedDates []string, finalBits []bitmap.DayBits) {
	if !s.cache.Enabled() {
		return
	}
	keys := make([]string, 0, len(affectedDates)+1)
	keys = append(keys, WeekKey(instructorID, weekStart))
	for _, date := range affectedDates {
		keys = append(keys, DayKey(instructorID, date))
	}
	s.cache.Invalidate(ctx, keys...)
	s.warmCaches(ctx, instructorID, weekStart, dates, finalBits)
}
