package certification

import (
	"context"
	"time"
)

// Store is the certification holding repository.
//
// Replacement is a two-phase operation: Supersede marks all live records of a
// type deleted, then Create inserts the new record. A crash between the two
// phases leaves the member transiently without an active certification of
// that type until the upload is retried; the compliance engine then reports
// it missing rather than silently trusting a stale record.
type Store interface {
	List(ctx context.Context) ([]*Certification, error)
	Get(ctx context.Context, id string) (*Certification, error)
	Create(ctx context.Context, cert *Certification) error
	Update(ctx context.Context, cert *Certification) error

	// ListByUser returns the user's non-deleted certifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Certification, error)

	// Supersede soft-deletes every live certification of the given type held
	// by the user. Returns the number of records marked.
	Supersede(ctx context.Context, userID, certTypeName string, deletedAt time.Time) (int, error)
}
