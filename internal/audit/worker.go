package audit

import (
	"context"
	"log/slog"
)

// Publisher forwards audit events to an external sink. Implementations must
// be safe for use from a single worker goroutine.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes audit events from the recorder inbox and persists them.
// A nil publisher keeps events local only. Store and publish failures are
// logged, not fatal: the worker must outlive transient backend outages.
type Worker struct {
	store     Store
	publisher Publisher
	inbox     <-chan Event
	logger    *slog.Logger
}

func NewWorker(store Store, publisher Publisher, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, publisher: publisher, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("append audit event failed",
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
			if w.publisher != nil {
				if err := w.publisher.Publish(ctx, event); err != nil {
					w.logger.Error("publish audit event failed",
						"action", string(event.Action),
						"error", err.Error(),
					)
				}
			}
		}
	}
}
