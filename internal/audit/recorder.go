package audit

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder hands audit events from domain logic to the worker without
// blocking the caller. A full inbox drops the event and logs; an audit gap is
// preferable to stalling a reminder cycle.
type Recorder struct {
	inbox  chan Event
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder builds a Recorder with the given inbox capacity.
func NewRecorder(logger *slog.Logger, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Recorder{
		inbox:  make(chan Event, capacity),
		logger: logger,
		now:    time.Now,
	}
}

// Inbox exposes the receive side for the worker.
func (r *Recorder) Inbox() <-chan Event {
	return r.inbox
}

// Record stamps and enqueues an event.
func (r *Recorder) Record(action Action, userID, subject string, detail map[string]string) {
	event := Event{
		ID:        uuid.NewString(),
		Action:    action,
		UserID:    userID,
		Subject:   subject,
		Detail:    detail,
		CreatedAt: r.now(),
	}
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit inbox full, dropping event",
			"action", string(action),
			"subject", subject,
		)
	}
}
