// pkg/mem/session_cache.go
package mem

import (
	"sync"
	"time"
)

type SessionCache interface {
	Set(key string, value []byte, ttl time.Duration)

	// Get returns the value for key if not expired. Expired entries are dropped.
	Get(key string) ([]byte, bool)

	// Sweep removes every expired entry and reports how many were removed.
	Sweep() int
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

type SessionEntries struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewSessionEntries() *SessionEntries {
	return &SessionEntries{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *SessionEntries) Set(key string, value []byte, ttl time.Duration) {
	buf := make([]byte, len(value))
	copy(buf, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     buf,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *SessionEntries) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check: a concurrent Set may have refreshed it
		if cur, still := s.data[key]; still && s.now().After(cur.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	buf := make([]byte, len(e.value))
	copy(buf, e.value)
	return buf, true
}

func (s *SessionEntries) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
