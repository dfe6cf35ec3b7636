package roster

import "context"

// Store is the user repository. Implementations return sentinel.ErrNotFound
// for missing users and sentinel.ErrConflict on duplicate IDs.
type Store interface {
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
