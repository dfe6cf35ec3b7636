package documents

import (
	"context"
	"io"
	"sync"

	"rescueops/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map. Test and development use only.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]*Document)}
}

func (s *InMemoryStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = &Document{Key: key, ContentType: contentType, Body: data}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, key string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *doc
	cp.Body = append([]byte(nil), doc.Body...)
	return &cp, nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}
