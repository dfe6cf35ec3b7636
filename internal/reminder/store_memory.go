package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"rescueops/pkg/platform/sentinel"
)

// InMemoryStore keeps reminders in mutex-guarded maps, one by ID and one by
// dedup tuple so Create stays atomic under the lock like the Postgres unique
// index makes it.
type InMemoryStore struct {
	mu        sync.RWMutex
	reminders map[string]*Reminder
	byTuple   map[tupleKey]string
}

type tupleKey struct {
	userID          string
	certificationID string
	typ             Type
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		reminders: make(map[string]*Reminder),
		byTuple:   make(map[tupleKey]string),
	}
}

func (s *InMemoryStore) List(_ context.Context) ([]*Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reminders[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *InMemoryStore) Create(_ context.Context, r *Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tupleKey{r.UserID, r.CertificationID, r.Type}
	if _, ok := s.byTuple[key]; ok {
		return sentinel.ErrConflict
	}
	if _, ok := s.reminders[r.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *r
	s.reminders[r.ID] = &cp
	s.byTuple[key] = r.ID
	return nil
}

func (s *InMemoryStore) HasReminderOfType(_ context.Context, userID, certificationID string, typ Type) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byTuple[tupleKey{userID, certificationID, typ}]
	return ok, nil
}

func (s *InMemoryStore) CountSentSince(_ context.Context, since time.Time) (map[Type]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[Type]int)
	for _, r := range s.reminders {
		if !r.SentAt.Before(since) {
			counts[r.Type]++
		}
	}
	return counts, nil
}
