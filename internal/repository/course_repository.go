package repository

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/cache"
	"github.com/learnhub/learnhub-api/internal/database/postgres"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/pkg/slug"
)

// CourseRepository handles course data access. The public listing goes
// through a TTL cache; admin listings and all mutations hit the database
// directly. Mutations invalidate the cache.
type CourseRepository struct {
	db           *postgres.Client
	cache        *cache.CourseCache
	publicLimit  int
	disableCache bool
}

// NewCourseRepository creates a course repository.
func NewCourseRepository(db *postgres.Client, publicLimit, cacheTTLSeconds int, disableCache bool) *CourseRepository {
	r := &CourseRepository{
		db:           db,
		publicLimit:  publicLimit,
		disableCache: disableCache,
	}
	r.cache = cache.NewCourseCache(r.fetchPublicFromDB, cacheTTLSeconds)
	return r
}

func (r *CourseRepository) fetchPublicFromDB(ctx context.Context, category string) ([]*models.Course, error) {
	return r.db.ListCourses(ctx, models.ListOptions{
		Category: category,
		Limit:    r.publicLimit,
	})
}

// List returns the full admin listing with filter and ordering options.
func (r *CourseRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Course, error) {
	return r.db.ListCourses(ctx, opts)
}

// ListPublic returns the capped anonymous listing, cached per category.
func (r *CourseRepository) ListPublic(ctx context.Context, category string) ([]*models.Course, error) {
	if r.disableCache {
		return r.fetchPublicFromDB(ctx, category)
	}
	return r.cache.Get(ctx, category)
}

// GetByID fetches a single course.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	return r.db.GetCourseByID(ctx, id)
}

// GetBySlug fetches a single course by slug.
func (r *CourseRepository) GetBySlug(ctx context.Context, courseSlug string) (*models.Course, error) {
	return r.db.GetCourseBySlug(ctx, courseSlug)
}

// Create inserts a course. When no slug was supplied one is generated from
// the title and the new row id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	stored, err := r.db.InsertCourse(ctx, course)
	if err != nil {
		return nil, err
	}

	if stored.Slug == "" {
		generated := slug.GenerateWithID(stored.Title, stored.ID)
		if err := r.db.UpdateCourseSlug(ctx, stored.ID, generated); err != nil {
			return nil, err
		}
		stored.Slug = generated
	}

	r.cache.Invalidate()
	return stored, nil
}

// Update applies a partial column update.
func (r *CourseRepository) Update(ctx context.Context, id int, updates map[string]any) (*models.Course, error) {
	stored, err := r.db.UpdateCourse(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate()
	return stored, nil
}

// Delete removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	if err := r.db.DeleteCourse(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate()
	return nil
}
