package pkg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/grading-service/internal/cache"
	"github.com/SAP-F-2025/grading-service/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewGradingCache returns the redis-backed result cache, or a no-op cache
// when caching is disabled or redis is unreachable. Grading never depends on
// the cache being up.
func NewGradingCache(cfg *config.Config, logger *slog.Logger) (cache.CacheService, func() error) {
	if !cfg.CacheEnabled {
		logger.Info("Grading cache disabled")
		return cache.NewNoopCache(), func() error { return nil }
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, grading without cache", "error", err)
		return cache.NewNoopCache(), func() error { return nil }
	}

	return cache.NewRedisCache(client, logger), client.Close
}
