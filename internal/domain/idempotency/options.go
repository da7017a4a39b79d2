package idempotency

// Option configures the in-memory Store.
type Option func(*memoryStore)

// WithMaxSize sets how many keys are kept before the oldest is evicted.
// Zero or a negative value keeps every key.
func WithMaxSize(maxSize int) Option {
	return func(s *memoryStore) {
		s.maxSize = maxSize
	}
}
