package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/msaedi/instructly-sub007/internal/models"
)

// DaysPerWeek is the span of one availability week.
const DaysPerWeek = 7

// AvailabilityRepository persists one bit-vector row per (instructor, day).
// It is purely mechanical; guardrails and overlap validation live in the
// service layer.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// WithTx runs fn inside one transaction, committing on nil and rolling back
// otherwise. Week writes and their audit/outbox rows share a transaction so
// no reader observes a partially applied week.
func (r *AvailabilityRepository) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin availability tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit availability tx: %w", err)
	}
	return nil
}

// GetDay returns the stored row for one instructor-day, or nil when the day
// has never been written (fully unavailable).
func (r *AvailabilityRepository) GetDay(ctx context.Context, instructorID string, date time.Time) (*models.DayAvailability, error) {
	const query = `SELECT id, instructor_id, date, bits, updated_at FROM day_availability WHERE instructor_id = $1 AND date = $2`
	var row models.DayAvailability
	if err := r.db.GetContext(ctx, &row, query, instructorID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day availability: %w", err)
	}
	return &row, nil
}

// GetWeek returns exactly seven ordered rows starting at weekStart; days
// without a stored row come back with an empty bits payload.
func (r *AvailabilityRepository) GetWeek(ctx context.Context, instructorID string, weekStart time.Time) ([]models.DayAvailability, error) {
	const query = `SELECT id, instructor_id, date, bits, updated_at FROM day_availability
WHERE instructor_id = $1 AND date >= $2 AND date < $3 ORDER BY date ASC`

	weekEnd := weekStart.AddDate(0, 0, DaysPerWeek)
	var stored []models.DayAvailability
	if err := r.db.SelectContext(ctx, &stored, query, instructorID, weekStart, weekEnd); err != nil {
		return nil, fmt.Errorf("get week availability: %w", err)
	}

	byDate := make(map[string]models.DayAvailability, len(stored))
	for _, row := range stored {
		byDate[row.DateKey()] = row
	}

	week := make([]models.DayAvailability, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		date := weekStart.AddDate(0, 0, i)
		if row, ok := byDate[date.Format(models.DateLayout)]; ok {
			week = append(week, row)
			continue
		}
		week = append(week, models.DayAvailability{
			InstructorID: instructorID,
			Date:         date,
			Bits:         "",
		})
	}
	return week, nil
}

// UpsertWeek writes the provided day rows. Callers pass a transaction when
// the batch must be atomic with audit and outbox rows.
func (r *AvailabilityRepository) UpsertWeek(ctx context.Context, exec sqlx.ExtContext, rows []models.DayAvailability) error {
	if len(rows) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO day_availability (id, instructor_id, date, bits, updated_at)
VALUES (:id, :instructor_id, :date, :bits, :updated_at)
ON CONFLICT (instructor_id, date) DO UPDATE
SET bits = EXCLUDED.bits,
    updated_at = EXCLUDED.updated_at`

	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		row.UpdatedAt = now
		if _, err := sqlx.NamedExecContext(ctx, target, query, row); err != nil {
			return fmt.Errorf("upsert day availability: %w", err)
		}
	}
	return nil
}

// ClearDays deletes the rows for the provided dates.
func (r *AvailabilityRepository) ClearDays(ctx context.Context, exec sqlx.ExtContext, instructorID string, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}
	target := r.exec(exec)
	const query = `DELETE FROM day_availability WHERE instructor_id = $1 AND date = $2`
	for _, date := range dates {
		if _, err := target.ExecContext(ctx, query, instructorID, date); err != nil {
			return fmt.Errorf("clear day availability: %w", err)
		}
	}
	return nil
}
