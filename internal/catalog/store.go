package catalog

import "context"

// RoleStore is the role repository, keyed by role name.
type RoleStore interface {
	List(ctx context.Context) ([]*Role, error)
	Get(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
}

// TrackStore is the track repository, keyed by track name.
type TrackStore interface {
	List(ctx context.Context) ([]*Track, error)
	Get(ctx context.Context, name string) (*Track, error)
	Create(ctx context.Context, track *Track) error
	Update(ctx context.Context, track *Track) error
}

// CertificationTypeStore is the certification type catalog, keyed by name.
type CertificationTypeStore interface {
	List(ctx context.Context) ([]*CertificationType, error)
	Get(ctx context.Context, name string) (*CertificationType, error)
	Create(ctx context.Context, ct *CertificationType) error
	Update(ctx context.Context, ct *CertificationType) error
}
