package store

import (
	"context"
	"sync"

	"github.com/notes-bin/wallpapersky/internal/model"
)

// MemoryStore holds the document in process memory. Callers never share
// slices with the stored copy.
type MemoryStore struct {
	mu  sync.Mutex
	doc *model.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: model.EmptyDocument()}
}

func (s *MemoryStore) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone().Normalize()
	return nil
}
