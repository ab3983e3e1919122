package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"school-api/internal/cache"
	"school-api/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCachedCount(t *testing.T) {
	count := func(context.Context, database.DB) (int, error) { return 42, nil }

	t.Run("cache hit skips the query", func(t *testing.T) {
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				require.Equal(t, CourseCountKey, key)
				return redis.NewStringResult("17", nil)
			},
		}
		n, err := CachedCount(context.Background(), nil, rdb, CourseCountKey, count)
		require.NoError(t, err)
		require.Equal(t, 17, n)
	})

	t.Run("cache miss counts and stores", func(t *testing.T) {
		stored := false
		rdb := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
			SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				require.Equal(t, CourseCountKey, key)
				require.Equal(t, 42, value)
				require.Equal(t, time.Minute, ttl)
				stored = true
				return redis.NewStatusResult("OK", nil)
			},
		}
		n, err := CachedCount(context.Background(), nil, rdb, CourseCountKey, count)
		require.NoError(t, err)
		require.Equal(t, 42, n)
		require.True(t, stored)
	})

	t.Run("nil cache counts directly", func(t *testing.T) {
		n, err := CachedCount(context.Background(), nil, nil, CourseCountKey, count)
		require.NoError(t, err)
		require.Equal(t, 42, n)
	})

	t.Run("count error", func(t *testing.T) {
		bad := func(context.Context, database.DB) (int, error) { return 0, errors.New("down") }
		_, err := CachedCount(context.Background(), nil, nil, CourseCountKey, bad)
		require.Error(t, err)
	})
}

func TestRefreshCount(t *testing.T) {
	t.Run("overwrites the cached value", func(t *testing.T) {
		stored := false
		rdb := &cache.FakeCache{
			SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
				require.Equal(t, TeacherCountKey, key)
				require.Equal(t, 5, value)
				stored = true
				return redis.NewStatusResult("OK", nil)
			},
		}
		count := func(context.Context, database.DB) (int, error) { return 5, nil }
		RefreshCount(context.Background(), nil, rdb, TeacherCountKey, count)
		require.True(t, stored)
	})

	t.Run("drops the key on a failed recount", func(t *testing.T) {
		dropped := false
		rdb := &cache.FakeCache{
			DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
				require.Equal(t, []string{StudentCountKey}, keys)
				dropped = true
				return redis.NewIntResult(1, nil)
			},
		}
		count := func(context.Context, database.DB) (int, error) { return 0, errors.New("down") }
		RefreshCount(context.Background(), nil, rdb, StudentCountKey, count)
		require.True(t, dropped)
	})

	t.Run("nil cache is a no-op", func(t *testing.T) {
		count := func(context.Context, database.DB) (int, error) {
			t.Fatal("count should not run")
			return 0, nil
		}
		RefreshCount(context.Background(), nil, nil, StudentCountKey, count)
	})
}
