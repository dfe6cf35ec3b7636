package snapshot

import "context"

// Store persists daily snapshots, keyed by date.
type Store interface {
	// Save writes the snapshot, overwriting any snapshot with the same date.
	Save(ctx context.Context, snap *Snapshot) error

	// Get returns the snapshot for a YYYY-MM-DD date key.
	Get(ctx context.Context, date string) (*Snapshot, error)

	// Latest returns the most recent snapshot by date key.
	Latest(ctx context.Context) (*Snapshot, error)
}
