package reminder

import (
	"context"
	"time"
)

// Store is the reminder repository.
type Store interface {
	List(ctx context.Context) ([]*Reminder, error)
	Get(ctx context.Context, id string) (*Reminder, error)

	// Create inserts a reminder, enforcing the (user, certification, type)
	// dedup key with the store's conditional-write primitive. It returns
	// sentinel.ErrConflict when a reminder for the tuple already exists, so
	// a lost race surfaces as a skipped duplicate rather than a double row.
	Create(ctx context.Context, r *Reminder) error

	// HasReminderOfType reports whether a reminder for the tuple exists.
	// The check loop consults this before dispatching.
	HasReminderOfType(ctx context.Context, userID, certificationID string, typ Type) (bool, error)

	// CountSentSince returns reminder counts by type for reminders sent at or
	// after the given time. The snapshot aggregator uses a 24h window.
	CountSentSince(ctx context.Context, since time.Time) (map[Type]int, error)
}
