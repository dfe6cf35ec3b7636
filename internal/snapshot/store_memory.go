package snapshot

import (
	"context"
	"sync"

	"rescueops/pkg/platform/sentinel"
)

// InMemoryStore keeps snapshots in a mutex-guarded map by date key.
type InMemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{snapshots: make(map[string]*Snapshot)}
}

func (s *InMemoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *snap
	s.snapshots[snap.Date] = &cp
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, date string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[date]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *snap
	return &cp, nil
}

func (s *InMemoryStore) Latest(_ context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *Snapshot
	for _, snap := range s.snapshots {
		if latest == nil || snap.Date > latest.Date {
			latest = snap
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}
