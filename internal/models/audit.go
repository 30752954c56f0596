package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionWeekSave     = "AVAILABILITY_WEEK_SAVE"
	AuditActionDateAdd      = "AVAILABILITY_DATE_ADD"
	AuditActionDateBlackout = "AVAILABILITY_DATE_BLACKOUT"
)

// AuditLog is an append-only trail record written on committed availability
// writes. Old/new values hold before/after window snapshots per date.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// WindowSnapshot is the serialised before/after payload of one audited date.
type WindowSnapshot struct {
	Date   string   `json:"date"`
	Before []Window `json:"before"`
	After  []Window `json:"after"`
}
