package roster

import (
	"context"
	"sort"
	"sync"

	"rescueops/pkg/platform/sentinel"
)

// InMemoryStore keeps users in a mutex-guarded map. Used in tests and
// development; the Postgres store is the production implementation.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]*User)}
}

func (s *InMemoryStore) List(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(u), nil
}

func (s *InMemoryStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.users[user.ID] = clone(user)
	return nil
}

func clone(u *User) *User {
	cp := *u
	cp.MembershipRoles = append([]MembershipRole(nil), u.MembershipRoles...)
	return &cp
}
