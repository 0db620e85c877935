package repository

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/models"
)

// CourseRepositoryInterface defines course data access operations.
type CourseRepositoryInterface interface {
	List(ctx context.Context, opts models.ListOptions) ([]*models.Course, error)
	ListPublic(ctx context.Context, category string) ([]*models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	Update(ctx context.Context, id int, updates map[string]any) (*models.Course, error)
	Delete(ctx context.Context, id int) error
}

// AdminRepositoryInterface defines admin credential lookups.
type AdminRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}
