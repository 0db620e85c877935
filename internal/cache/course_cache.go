package cache

import (
	"context"
	"time"

	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const (
	publicKeyPrefix  = "courses:public:"
	cacheName        = "public_courses"
	cacheCheckPeriod = 10 * time.Second
)

// FetchFunc loads the public course listing from the repository on a miss.
type FetchFunc func(ctx context.Context, category string) ([]*models.Course, error)

// CourseCache is a TTL read-through cache for the anonymous public listing.
// Admin listings always hit the database; only the public capped listing is
// cached, keyed by category filter. Mutations invalidate the whole cache.
type CourseCache struct {
	cache *gocache.Cache
	fetch FetchFunc
	ttl   time.Duration
}

// NewCourseCache creates a course cache with the given TTL in seconds.
func NewCourseCache(fetch FetchFunc, ttlSeconds int) *CourseCache {
	return &CourseCache{
		cache: gocache.New(time.Duration(ttlSeconds)*time.Second, cacheCheckPeriod),
		fetch: fetch,
		ttl:   time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the cached public listing for a category, fetching on miss.
func (cc *CourseCache) Get(ctx context.Context, category string) ([]*models.Course, error) {
	key := publicKeyPrefix + category

	if cached, found := cc.cache.Get(key); found {
		metrics.CacheHits.WithLabelValues(cacheName).Inc()
		return cached.([]*models.Course), nil
	}

	metrics.CacheMisses.WithLabelValues(cacheName).Inc()

	courses, err := cc.fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	cc.cache.Set(key, courses, cc.ttl)
	return courses, nil
}

// Invalidate drops all cached listings. Called after every course mutation
// so anonymous browsers never see a deleted course beyond the TTL window.
func (cc *CourseCache) Invalidate() {
	cc.cache.Flush()
}
