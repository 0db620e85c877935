package handlers_test

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/services"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

type mockCourseService struct {
	mock.Mock
}

func (m *mockCourseService) ListCourses(ctx context.Context, opts models.ListOptions) ([]*models.Course, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *mockCourseService) ListPublicCourses(ctx context.Context, category string) ([]*models.Course, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *mockCourseService) GetCourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *mockCourseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest, image *services.ImageUpload) (*models.Course, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *mockCourseService) UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest, image *services.ImageUpload) (*models.Course, error) {
	args := m.Called(ctx, id, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *mockCourseService) DeleteCourse(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
