// Package audit records what the compliance engine did and when: reminders
// dispatched, snapshots generated, certifications replaced. Events flow from
// domain logic through an in-process channel to a worker that persists them
// and optionally publishes them to Kafka.
package audit

import "time"

// Action identifies what happened.
type Action string

const (
	ActionReminderSent            Action = "reminder_sent"
	ActionReminderFailed          Action = "reminder_failed"
	ActionSnapshotGenerated       Action = "snapshot_generated"
	ActionCertificationUploaded   Action = "certification_uploaded"
	ActionCertificationSuperseded Action = "certification_superseded"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Action    Action            `json:"action"`
	UserID    string            `json:"user_id,omitempty"`
	Subject   string            `json:"subject"`
	Detail    map[string]string `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
