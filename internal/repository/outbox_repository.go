package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/msaedi/instructly-sub007/internal/models"
)

// OutboxRepository persists durable domain events for asynchronous relay.
type OutboxRepository struct {
	db *sqlx.DB
}

// NewOutboxRepository constructs the repository.
func NewOutboxRepository(db *sqlx.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create appends a pending event, joining the caller's transaction when one
// is provided so the event commits with the write that caused it.
func (r *OutboxRepository) Create(ctx context.Context, exec sqlx.ExtContext, event *models.OutboxEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = models.OutboxStatusPending
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO outbox_events (id, event_type, aggregate_id, payload, status, attempts, created_at)
VALUES (:id, :event_type, :aggregate_id, :payload, :status, :attempts, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, event); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// ListPending returns the oldest pending events up to limit.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	const query = `SELECT id, event_type, aggregate_id, payload, status, attempts, created_at, sent_at
FROM outbox_events WHERE status = $1 ORDER BY created_at ASC LIMIT $2`
	var events []models.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, models.OutboxStatusPending, limit); err != nil {
		return nil, fmt.Errorf("list pending outbox events: %w", err)
	}
	return events, nil
}

// MarkSent stamps an event as delivered.
func (r *OutboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `UPDATE outbox_events SET status = $1, sent_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, models.OutboxStatusSent, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}

// MarkFailed bumps the attempt counter, finalising to FAILED once the retry
// budget is spent.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id string, attempts, maxRetries int) error {
	status := models.OutboxStatusPending
	if attempts >= maxRetries {
		status = models.OutboxStatusFailed
	}
	const query = `UPDATE outbox_events SET status = $1, attempts = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, attempts, id); err != nil {
		return fmt.Errorf("mark outbox event failed: %w", err)
	}
	return nil
}
