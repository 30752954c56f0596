package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/msaedi/instructly-sub007/internal/models"
)

func newAvailabilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	date, err := time.Parse(models.DateLayout, raw)
	require.NoError(t, err)
	return date
}

func TestAvailabilityRepositoryGetDay(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	date := mustDate(t, "2026-09-07")

	rows := sqlmock.NewRows([]string{"id", "instructor_id", "date", "bits", "updated_at"}).
		AddRow("day-1", "inst-1", date, "0000000003ff", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, instructor_id, date, bits, updated_at FROM day_availability")).
		WithArgs("inst-1", date).
		WillReturnRows(rows)

	row, err := repo.GetDay(context.Background(), "inst-1", date)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, "0000000003ff", row.Bits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryGetDayMissing(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	date := mustDate(t, "2026-09-07")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, instructor_id, date, bits, updated_at FROM day_availability")).
		WithArgs("inst-1", date).
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "date", "bits", "updated_at"}))

	row, err := repo.GetDay(context.Background(), "inst-1", date)
	require.NoError(t, err, "a never-written day is not an error")
	require.Nil(t, row)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryGetWeekDefaultsMissingDays(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	weekStart := mustDate(t, "2026-09-07")

	// only Monday and Thursday were ever written
	rows := sqlmock.NewRows([]string{"id", "instructor_id", "date", "bits", "updated_at"}).
		AddRow("day-1", "inst-1", weekStart, "0000000003ff", time.Now()).
		AddRow("day-2", "inst-1", weekStart.AddDate(0, 0, 3), "00000000f000", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, instructor_id, date, bits, updated_at FROM day_availability")).
		WithArgs("inst-1", weekStart, weekStart.AddDate(0, 0, DaysPerWeek)).
		WillReturnRows(rows)

	week, err := repo.GetWeek(context.Background(), "inst-1", weekStart)
	require.NoError(t, err)
	require.Len(t, week, DaysPerWeek)

	require.Equal(t, "0000000003ff", week[0].Bits)
	require.Equal(t, "", week[1].Bits)
	require.Equal(t, "00000000f000", week[3].Bits)
	for i, day := range week {
		require.Equal(t, weekStart.AddDate(0, 0, i).Format(models.DateLayout), day.DateKey())
		require.Equal(t, "inst-1", day.InstructorID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryUpsertWeek(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	rows := []models.DayAvailability{
		{InstructorID: "inst-1", Date: mustDate(t, "2026-09-07"), Bits: "0000000003ff"},
		{ID: "day-2", InstructorID: "inst-1", Date: mustDate(t, "2026-09-08"), Bits: "00000000f000"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO day_availability")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO day_availability")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpsertWeek(context.Background(), nil, rows))
	require.NotEmpty(t, rows[0].ID, "missing ids are generated")
	require.Equal(t, "day-2", rows[1].ID, "existing ids are preserved")
	require.False(t, rows[0].UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryUpsertWeekEmpty(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	require.NoError(t, repo.UpsertWeek(context.Background(), nil, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryClearDays(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	dates := []time.Time{mustDate(t, "2026-09-07"), mustDate(t, "2026-09-09")}

	for _, date := range dates {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM day_availability")).
			WithArgs("inst-1", date).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.ClearDays(context.Background(), nil, "inst-1", dates))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryWithTx(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO day_availability")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		return repo.UpsertWeek(context.Background(), tx, []models.DayAvailability{
			{InstructorID: "inst-1", Date: mustDate(t, "2026-09-07"), Bits: "ff"},
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryWithTxRollsBack(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewAvailabilityRepository(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.WithTx(context.Background(), func(tx *sqlx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
