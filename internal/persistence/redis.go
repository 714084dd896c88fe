package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bookshelf-labs/book-service/internal/config"
)

// Redis is an optional dependency reported by the readiness endpoint.
// The client only issues PING, so its pool is small and commands are not retried.
type Redis struct {
	client *redis.Client
	addr   string
}

// NewRedis returns nil when no address is configured. An unreachable server is
// logged and left to the readiness check rather than failing startup.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not provided; redis readiness check disabled")
		return nil
	}

	r := &Redis{client: redis.NewClient(redisOptions(cfg)), addr: cfg.Addr}
	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis not reachable; readiness will report it", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}
	return r
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     2,
		MaxRetries:   -1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// Ping reports whether the Redis server answers.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}
