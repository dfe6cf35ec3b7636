package catalog

import (
	"context"
	"sort"
	"sync"

	"rescueops/pkg/platform/sentinel"
)

// memStore is the shared map-backed implementation behind the three in-memory
// catalog stores. Entries are cloned on the way in and out so callers cannot
// mutate store state through shared slices.
type memStore[T any] struct {
	mu      sync.RWMutex
	items   map[string]*T
	keyOf   func(*T) string
	cloneOf func(*T) *T
}

func newMemStore[T any](keyOf func(*T) string, cloneOf func(*T) *T) *memStore[T] {
	return &memStore[T]{items: make(map[string]*T), keyOf: keyOf, cloneOf: cloneOf}
}

func (s *memStore[T]) List(_ context.Context) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.cloneOf(s.items[k]))
	}
	return out, nil
}

func (s *memStore[T]) Get(_ context.Context, key string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.cloneOf(item), nil
}

func (s *memStore[T]) Create(_ context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.keyOf(item)
	if _, ok := s.items[key]; ok {
		return sentinel.ErrConflict
	}
	s.items[key] = s.cloneOf(item)
	return nil
}

func (s *memStore[T]) Update(_ context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.keyOf(item)
	if _, ok := s.items[key]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[key] = s.cloneOf(item)
	return nil
}

// InMemoryRoleStore implements RoleStore over a process-local map.
type InMemoryRoleStore struct{ *memStore[Role] }

func NewInMemoryRoleStore() *InMemoryRoleStore {
	return &InMemoryRoleStore{newMemStore(
		func(r *Role) string { return r.Name },
		func(r *Role) *Role {
			cp := *r
			cp.AllowedTracks = append([]string(nil), r.AllowedTracks...)
			return &cp
		},
	)}
}

// InMemoryTrackStore implements TrackStore over a process-local map.
type InMemoryTrackStore struct{ *memStore[Track] }

func NewInMemoryTrackStore() *InMemoryTrackStore {
	return &InMemoryTrackStore{newMemStore(
		func(t *Track) string { return t.Name },
		func(t *Track) *Track {
			cp := *t
			cp.RequiredCertifications = append([]string(nil), t.RequiredCertifications...)
			return &cp
		},
	)}
}

// InMemoryCertificationTypeStore implements CertificationTypeStore over a
// process-local map.
type InMemoryCertificationTypeStore struct{ *memStore[CertificationType] }

func NewInMemoryCertificationTypeStore() *InMemoryCertificationTypeStore {
	return &InMemoryCertificationTypeStore{newMemStore(
		func(ct *CertificationType) string { return ct.Name },
		func(ct *CertificationType) *CertificationType {
			cp := *ct
			return &cp
		},
	)}
}
