package cache

import (
	"github.com/printdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns a Redis cache when Redis is enabled and reachable.
// Otherwise it returns an in-memory cache, which is not shared between instances.
func New(cfg config.RedisConfig, logger *zap.Logger) Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory cache")
		return NewInMemoryCache()
	}

	c, err := NewRedisCache(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryCache()
	}

	logger.Info("using Redis cache", zap.String("addr", cfg.Addr()))
	return c
}
