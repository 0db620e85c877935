package cache

import (
	"context"
	"testing"

	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCache_ReadThrough(t *testing.T) {
	fetchCalls := 0
	fetch := func(ctx context.Context, category string) ([]*models.Course, error) {
		fetchCalls++
		return []*models.Course{{ID: 1, Title: "Intro to Go"}}, nil
	}

	cc := NewCourseCache(fetch, 60)

	first, err := cc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, fetchCalls)

	// Second read is served from cache
	second, err := cc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, fetchCalls)
}

func TestCourseCache_KeyedByCategory(t *testing.T) {
	fetch := func(ctx context.Context, category string) ([]*models.Course, error) {
		return []*models.Course{{ID: 1, Category: category}}, nil
	}

	cc := NewCourseCache(fetch, 60)

	all, err := cc.Get(context.Background(), "")
	require.NoError(t, err)
	devops, err := cc.Get(context.Background(), "devops")
	require.NoError(t, err)

	assert.Equal(t, "", all[0].Category)
	assert.Equal(t, "devops", devops[0].Category)
}

func TestCourseCache_Invalidate(t *testing.T) {
	fetchCalls := 0
	fetch := func(ctx context.Context, category string) ([]*models.Course, error) {
		fetchCalls++
		return []*models.Course{}, nil
	}

	cc := NewCourseCache(fetch, 60)

	_, err := cc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)

	cc.Invalidate()

	_, err = cc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, fetchCalls, "invalidation must force a refetch")
}

func TestCourseCache_FetchError(t *testing.T) {
	fetch := func(ctx context.Context, category string) ([]*models.Course, error) {
		return nil, assert.AnError
	}

	cc := NewCourseCache(fetch, 60)

	courses, err := cc.Get(context.Background(), "")
	assert.Nil(t, courses)
	assert.Error(t, err)
}
