package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelcraft/internal/models/session_models"
)

const (
	sessionKeyPrefix = "travelcraft:session:" // travelcraft:session:{session_id}

	// Optimistic transactions are retried when another writer touched the key.
	maxUpdateAttempts = 16
)

var ErrUpdateConflict = errors.New("session changed concurrently, update abandoned")

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*session_models.Session, error) {
	return r.load(ctx, r.client, r.key(id))
}

// Update watches the session key and writes inside MULTI/EXEC, retrying when
// the key changed between the read and the write.
func (r *redisSessionRepository) Update(ctx context.Context, id string, fn func(*session_models.Session) error) (*session_models.Session, error) {
	key := r.key(id)
	var updated *session_models.Session

	txf := func(tx *redis.Tx) error {
		session, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if session == nil {
			session = session_models.NewSession(id)
		}

		if err := fn(session); err != nil {
			return err
		}

		data, err := encodeSession(session)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = session
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrUpdateConflict
}

func (r *redisSessionRepository) load(ctx context.Context, cmd getter, key string) (*session_models.Session, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return decodeSession(data)
}

func (r *redisSessionRepository) key(id string) string {
	return sessionKeyPrefix + id
}
