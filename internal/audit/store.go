package audit

import (
	"context"
	"time"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListSince(ctx context.Context, since time.Time) ([]Event, error)
}
