package session_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelcraft/internal/config"
	"travelcraft/internal/infra"
	"travelcraft/internal/repositories"
	mem "travelcraft/pkg/memcache"
)

var Module = fx.Provide(provideSessionRepository)

const sweepInterval = 10 * time.Minute

func provideSessionRepository(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repositories.SessionRepository, error) {
	if cfg.Session.Backend == config.SessionBackendRedis {
		client, err := infra.InitRedis(context.Background(), cfg.Session)
		if err != nil {
			return nil, err
		}
		logger.Info("using redis session store", zap.String("addr", cfg.Session.RedisAddr))

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return repositories.NewRedisSessionRepository(client, cfg.Session.TTL), nil
	}

	cache := mem.NewSessionEntries()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go sweep(cache, stop, logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})

	logger.Info("using in-memory session store", zap.Duration("ttl", cfg.Session.TTL))
	return repositories.NewMemorySessionRepository(cache, cfg.Session.TTL), nil
}

func sweep(cache mem.SessionCache, stop <-chan struct{}, logger *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := cache.Sweep(); n > 0 {
				logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		case <-stop:
			return
		}
	}
}
