package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"travelcraft/internal/models/session_models"
	mem "travelcraft/pkg/memcache"
)

// SessionRepository stores one Session per browser session.
// Get returns (nil, nil) when the session does not exist or has expired.
//
// Update is an atomic read-modify-write: fn receives the stored session (or a
// fresh one) and nothing else writes that session until the result is stored.
// When fn returns an error nothing is written and the error is returned as is.
// fn may run more than once if the backend retries, so it must only touch the
// session it is given.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*session_models.Session, error)
	Update(ctx context.Context, id string, fn func(*session_models.Session) error) (*session_models.Session, error)
}

type memorySessionRepository struct {
	mu    sync.Mutex // serializes Update across all sessions
	cache mem.SessionCache
	ttl   time.Duration
}

func NewMemorySessionRepository(cache mem.SessionCache, ttl time.Duration) SessionRepository {
	return &memorySessionRepository{cache: cache, ttl: ttl}
}

func (r *memorySessionRepository) Get(ctx context.Context, id string) (*session_models.Session, error) {
	data, ok := r.cache.Get(id)
	if !ok {
		return nil, nil
	}
	return decodeSession(data)
}

func (r *memorySessionRepository) Update(ctx context.Context, id string, fn func(*session_models.Session) error) (*session_models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = session_models.NewSession(id)
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	data, err := encodeSession(session)
	if err != nil {
		return nil, err
	}
	r.cache.Set(id, data, r.ttl)
	return session, nil
}

func decodeSession(data []byte) (*session_models.Session, error) {
	var session session_models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func encodeSession(session *session_models.Session) ([]byte, error) {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}
