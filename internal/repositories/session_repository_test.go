package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelcraft/internal/models/session_models"
	mem "travelcraft/pkg/memcache"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	return client, mr
}

func exerciseRepository(t *testing.T, repo SessionRepository) {
	ctx := context.Background()

	t.Run("missing session", func(t *testing.T) {
		got, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update creates and stores", func(t *testing.T) {
		updated, err := repo.Update(ctx, "s1", func(s *session_models.Session) error {
			s.Form.SetCountry("イタリア")
			s.Form.ToggleCity("ミラノ", true)
			s.Form.ToggleCity("ローマ", true)
			s.Form.SetStyle(session_models.StyleTight)
			s.Plan = "Day 1: Rome"
			s.IssuedSeq = 3
			s.AppliedSeq = 2
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "s1", updated.ID)

		got, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "イタリア", got.Form.Country)
		assert.Equal(t, []string{"ミラノ", "ローマ"}, got.Form.Cities)
		assert.Equal(t, session_models.StyleTight, got.Form.Style)
		assert.Equal(t, "Day 1: Rome", got.Plan)
		assert.Equal(t, uint64(3), got.IssuedSeq)
		assert.Equal(t, uint64(2), got.AppliedSeq)
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		errStop := errors.New("stop")
		_, err := repo.Update(ctx, "s1", func(s *session_models.Session) error {
			s.Plan = "discarded"
			return errStop
		})
		assert.ErrorIs(t, err, errStop)

		got, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Day 1: Rome", got.Plan)
	})

	t.Run("overlapping updates are not lost", func(t *testing.T) {
		const writers = 8

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, "counter", func(s *session_models.Session) error {
					seen := s.IssuedSeq
					time.Sleep(5 * time.Millisecond)
					s.IssuedSeq = seen + 1
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.Get(ctx, "counter")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint64(writers), got.IssuedSeq)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	exerciseRepository(t, NewMemorySessionRepository(mem.NewSessionEntries(), time.Hour))
}

func TestRedisSessionRepository(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	exerciseRepository(t, NewRedisSessionRepository(client, time.Hour))
}

func TestRedisSessionRepository_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisSessionRepository(client, time.Minute)
	_, err := repo.Update(ctx, "short", func(*session_models.Session) error { return nil })
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, got)
}
