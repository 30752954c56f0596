package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Outbox event types emitted by the availability engine.
const (
	OutboxEventWeekSaved = "availability.week_saved"
)

// OutboxEventStatus tracks relay progress for a durable event.
type OutboxEventStatus string

const (
	OutboxStatusPending OutboxEventStatus = "PENDING"
	OutboxStatusSent    OutboxEventStatus = "SENT"
	OutboxStatusFailed  OutboxEventStatus = "FAILED"
)

// OutboxEvent is a durably persisted domain event awaiting asynchronous
// delivery. Rows are written on the same transaction as the availability
// write; delivery is at-least-once and owned by the relay.
type OutboxEvent struct {
	ID          string            `db:"id" json:"id"`
	EventType   string            `db:"event_type" json:"event_type"`
	AggregateID string            `db:"aggregate_id" json:"aggregate_id"`
	Payload     types.JSONText    `db:"payload" json:"payload"`
	Status      OutboxEventStatus `db:"status" json:"status"`
	Attempts    int               `db:"attempts" json:"attempts"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	SentAt      *time.Time        `db:"sent_at" json:"sent_at,omitempty"`
}

// WeekSavedPayload is the body of an availability.week_saved event.
type WeekSavedPayload struct {
	InstructorID  string   `json:"instructor_id"`
	WeekStart     string   `json:"week_start"`
	AffectedDates []string `json:"affected_dates"`
	Version       string   `json:"version"`
}
