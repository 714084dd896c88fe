package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookshelf-labs/book-service/internal/config"
)

func TestRedisOptionsNeverRetry(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 3})

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, -1, opts.MaxRetries)
	assert.Positive(t, opts.DialTimeout)
}

func TestNewRedisUnreachableReportsOnPing(t *testing.T) {
	ctx := context.Background()

	// Port 1 is closed on test hosts; startup must not fail because of it.
	rdb := NewRedis(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	require.NotNil(t, rdb)
	t.Cleanup(rdb.Close)

	err := rdb.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
