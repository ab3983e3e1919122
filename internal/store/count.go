package store

import (
	"context"
	"strings"
	"time"

	"school-api/internal/cache"
	"school-api/internal/database"
	"school-api/internal/query"
)

// Redis keys for the per-resource list-count cache.
const (
	CourseCountKey  = "courses:count"
	TeacherCountKey = "teachers:count"
	StudentCountKey = "students:count"
)

// countTTL bounds staleness when an asynchronous refresh is lost.
const countTTL = time.Minute

// CountFunc is a COUNT(*) query for one resource.
type CountFunc func(ctx context.Context, db database.DB) (int, error)

func orderDirection(d query.Direction) string {
	return strings.ToUpper(string(d))
}

// CachedCount reads the total from the cache and falls back to the counting
// query on a miss. A nil cache degrades to counting every time.
func CachedCount(ctx context.Context, db database.DB, c cache.Cache, key string, count CountFunc) (int, error) {
	if c != nil {
		if n, err := c.Get(ctx, key).Int(); err == nil {
			return n, nil
		}
	}
	n, err := count(ctx, db)
	if err != nil {
		return 0, err
	}
	if c != nil {
		c.Set(ctx, key, n, countTTL)
	}
	return n, nil
}

// RefreshCount recomputes a resource's total and overwrites the cached value.
// Mutation handlers submit this to the worker pool after create/delete so the
// next listing reads a warm, current count. On a failed recount the stale key
// is dropped instead of kept.
func RefreshCount(ctx context.Context, db database.DB, c cache.Cache, key string, count CountFunc) {
	if c == nil {
		return
	}
	n, err := count(ctx, db)
	if err != nil {
		c.Del(ctx, key)
		return
	}
	c.Set(ctx, key, n, countTTL)
}
