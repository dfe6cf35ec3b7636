package certification

import (
	"context"
	"sort"
	"sync"
	"time"

	"rescueops/pkg/platform/sentinel"
)

// InMemoryStore keeps certifications in a mutex-guarded map.
type InMemoryStore struct {
	mu    sync.RWMutex
	certs map[string]*Certification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{certs: make(map[string]*Certification)}
}

func (s *InMemoryStore) List(_ context.Context) ([]*Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Certification, 0, len(s.certs))
	for _, c := range s.certs {
		out = append(out, cloneCert(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.certs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneCert(c), nil
}

func (s *InMemoryStore) Create(_ context.Context, cert *Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.certs[cert.ID]; ok {
		return sentinel.ErrConflict
	}
	s.certs[cert.ID] = cloneCert(cert)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, cert *Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.certs[cert.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.certs[cert.ID] = cloneCert(cert)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Certification
	for _, c := range s.certs {
		if c.UserID == userID && !c.Deleted() {
			out = append(out, cloneCert(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (s *InMemoryStore) Supersede(_ context.Context, userID, certTypeName string, deletedAt time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for _, c := range s.certs {
		if c.UserID == userID && c.CertificationTypeName == certTypeName && !c.Deleted() {
			at := deletedAt
			c.DeletedAt = &at
			marked++
		}
	}
	return marked, nil
}

func cloneCert(c *Certification) *Certification {
	cp := *c
	if c.ExpiresOn != nil {
		e := *c.ExpiresOn
		cp.ExpiresOn = &e
	}
	if c.DeletedAt != nil {
		d := *c.DeletedAt
		cp.DeletedAt = &d
	}
	return &cp
}
