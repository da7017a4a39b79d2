package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/hackstack/internal/domain/model"
)

// MemoryStore is an in-process Catalog guarded by a RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string // newest first
	byID  map[string]model.Hackathon
	opts  options
}

// NewMemoryStore creates an empty in-memory catalog.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{
		byID: make(map[string]model.Hackathon),
		opts: o,
	}
}

// Create implements Catalog.
func (s *MemoryStore) Create(_ context.Context, h model.Hackathon) (model.Hackathon, error) {
	defer observeUpdate(time.Now())

	rec, err := prepareCreate(h, s.opts)
	if err != nil {
		return model.Hackathon{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[rec.ID]; ok {
		return model.Hackathon{}, fmt.Errorf("%w: %s", ErrConflict, rec.ID)
	}
	s.byID[rec.ID] = rec
	s.order = slices.Insert(s.order, 0, rec.ID)
	return rec.Clone(), nil
}

// Get implements Catalog.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Hackathon, error) {
	defer observeQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byID[id]
	if !ok {
		return model.Hackathon{}, notFound(id)
	}
	return h.Clone(), nil
}

// Update implements Catalog.
func (s *MemoryStore) Update(_ context.Context, id string, p model.HackathonPatch) (model.Hackathon, error) {
	defer observeUpdate(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	if !ok {
		return model.Hackathon{}, notFound(id)
	}
	rec, err := prepareUpdate(h, p)
	if err != nil {
		return model.Hackathon{}, err
	}
	s.byID[id] = rec
	return rec.Clone(), nil
}

// Delete implements Catalog.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	defer observeUpdate(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return notFound(id)
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// List implements Catalog.
func (s *MemoryStore) List(_ context.Context) ([]model.Hackathon, error) {
	defer observeQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Hackathon, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// Count implements Catalog.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Seed implements Catalog. Nothing is stored when any record is rejected.
func (s *MemoryStore) Seed(_ context.Context, hs []model.Hackathon) error {
	defer observeUpdate(time.Now())

	recs := make([]model.Hackathon, 0, len(hs))
	seen := make(map[string]struct{}, len(hs))
	for _, h := range hs {
		rec, err := prepareSeed(h, s.opts)
		if err != nil {
			return err
		}
		if _, dup := seen[rec.ID]; dup {
			return fmt.Errorf("%w: %s", ErrConflict, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		recs = append(recs, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		if _, ok := s.byID[rec.ID]; ok {
			return fmt.Errorf("%w: %s", ErrConflict, rec.ID)
		}
	}
	for _, rec := range recs {
		s.byID[rec.ID] = rec
		s.order = append(s.order, rec.ID)
	}
	return nil
}

// Close implements Catalog.
func (s *MemoryStore) Close() error { return nil }
