// Package idempotency remembers which resource a client-supplied
// Idempotency-Key produced so a retried create can be answered with the
// original result.
package idempotency

import (
	"container/list"
	"context"
	"sync"
)

// DefaultMaxSize bounds the key store when no option overrides it.
const DefaultMaxSize = 10000

// Store maps idempotency keys to the IDs they created.
type Store interface {
	// Lookup returns the ID recorded for key.
	Lookup(ctx context.Context, key string) (string, bool)
	// Record remembers id for key, replacing any earlier value.
	Record(ctx context.Context, key, id string)
	// Forget drops key so the next request with it creates again.
	Forget(ctx context.Context, key string)
	// Size returns the number of remembered keys.
	Size() int64
}

type entry struct {
	key string
	id  string
}

// memoryStore keeps keys in insertion order and evicts the oldest once full.
// A maxSize of zero or less disables eviction.
type memoryStore struct {
	mu      sync.Mutex
	index   map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	s := &memoryStore{
		index:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *memoryStore) Lookup(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.index[key]
	if !ok {
		return "", false
	}
	return el.Value.(*entry).id, true
}

func (s *memoryStore) Record(_ context.Context, key, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[key]; ok {
		el.Value.(*entry).id = id
		return
	}
	if s.maxSize > 0 && s.order.Len() >= s.maxSize {
		s.evictOldest()
	}
	s.index[key] = s.order.PushBack(&entry{key: key, id: id})
}

func (s *memoryStore) Forget(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.index[key]; ok {
		s.order.Remove(el)
		delete(s.index, key)
	}
}

func (s *memoryStore) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.order.Len())
}

// evictOldest must be called with s.mu held.
func (s *memoryStore) evictOldest() {
	front := s.order.Front()
	if front == nil {
		return
	}
	s.order.Remove(front)
	delete(s.index, front.Value.(*entry).key)
}
