package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// ttlStore keeps entries after they expire; get simply stops returning them.
type ttlStore[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]
}

func newTTLStore[V any](ttl time.Duration) *ttlStore[V] {
	return &ttlStore[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

func (s *ttlStore[V]) get(key string, now time.Time) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || now.Sub(e.storedAt) >= s.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *ttlStore[V]) set(key string, value V, now time.Time) {
	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, storedAt: now}
	s.mu.Unlock()
}

func (s *ttlStore[V]) clear() int {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[string]entry[V])
	s.mu.Unlock()
	return n
}

func (s *ttlStore[V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
