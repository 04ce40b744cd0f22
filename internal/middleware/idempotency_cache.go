package middleware

import (
	"sync"
	"time"
)

// replayStore keeps recent responses by idempotency fingerprint. It holds at
// most capacity entries; when full the oldest entry is evicted.
type replayStore struct {
	mu       sync.Mutex
	items    map[string]*cachedResponse
	order    []string
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

func newReplayStore(ttl time.Duration, capacity int) *replayStore {
	if capacity <= 0 {
		capacity = defaultReplayCapacity
	}
	return &replayStore{
		items:    make(map[string]*cachedResponse),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

func (s *replayStore) get(key string) (*cachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(resp.storedAt) > s.ttl {
		delete(s.items, key)
		return nil, false
	}
	return resp, true
}

func (s *replayStore) set(key string, resp *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp.storedAt = s.now()
	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = resp

	for len(s.items) > s.capacity && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
	}
	if len(s.order) > 2*s.capacity {
		s.compact()
	}
}

// compact drops order entries whose item already expired or was evicted.
func (s *replayStore) compact() {
	kept := s.order[:0]
	for _, k := range s.order {
		if _, ok := s.items[k]; ok {
			kept = append(kept, k)
		}
	}
	s.order = kept
}

func (s *replayStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
