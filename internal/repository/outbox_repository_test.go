package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/require"

	"github.com/msaedi/instructly-sub007/internal/models"
)

func TestOutboxRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewOutboxRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	event := &models.OutboxEvent{
		EventType:   models.OutboxEventWeekSaved,
		AggregateID: "inst-1",
		Payload:     types.JSONText(`{"week_start":"2026-09-07"}`),
	}
	require.NoError(t, repo.Create(context.Background(), nil, event))
	require.NotEmpty(t, event.ID)
	require.Equal(t, models.OutboxStatusPending, event.Status)
	require.False(t, event.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepositoryListPending(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewOutboxRepository(db)
	rows := sqlmock.NewRows([]string{"id", "event_type", "aggregate_id", "payload", "status", "attempts", "created_at", "sent_at"}).
		AddRow("evt-1", models.OutboxEventWeekSaved, "inst-1", []byte(`{}`), models.OutboxStatusPending, 0, time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, event_type, aggregate_id, payload, status, attempts, created_at, sent_at")).
		WithArgs(models.OutboxStatusPending, 10).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "evt-1", events[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepositoryMarkSent(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewOutboxRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET status = $1, sent_at = $2")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepositoryMarkFailed(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()

	repo := NewOutboxRepository(db)

	// below the retry budget the row stays pending
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET status = $1, attempts = $2")).
		WithArgs(models.OutboxStatusPending, 1, "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkFailed(context.Background(), "evt-1", 1, 3))

	// once spent it finalises to FAILED
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET status = $1, attempts = $2")).
		WithArgs(models.OutboxStatusFailed, 3, "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkFailed(context.Background(), "evt-1", 3, 3))

	require.NoError(t, mock.ExpectationsWereMet())
}
