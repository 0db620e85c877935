package services

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/models"
)

// AuthServiceInterface defines admin authentication operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
}

// CourseServiceInterface defines course catalog operations.
type CourseServiceInterface interface {
	ListCourses(ctx context.Context, opts models.ListOptions) ([]*models.Course, error)
	ListPublicCourses(ctx context.Context, category string) ([]*models.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest, image *ImageUpload) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest, image *ImageUpload) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int) error
}
