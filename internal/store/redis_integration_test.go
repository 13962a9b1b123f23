//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRateLimitRedisStoreIntegration(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	s := store.NewRateLimitRedisStore(client)
	key := "test:" + t.Name()

	t.Run("counts within window", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			count, err := s.Record(ctx, key, time.Minute)

			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("entries slide out of the window", func(t *testing.T) {
		slidingKey := key + ":sliding"

		_, err := s.Record(ctx, slidingKey, 50*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(60 * time.Millisecond)

		count, err := s.Record(ctx, slidingKey, 50*time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
