package services

import (
	"context"
	"testing"

	"github.com/learnhub/learnhub-api/internal/models"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCourseService_CreateCourse_NormalizesListFields(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return assert.ObjectsAreEqual([]string{"go", "backend"}, c.Tags) &&
			assert.ObjectsAreEqual([]string{"goroutines", "channels"}, c.WhatYoullLearn)
	})).Return(&models.Course{ID: 1, Title: "Intro to Go"}, nil)

	svc := NewCourseService(courseRepo, nil)

	req := &models.CreateCourseRequest{
		Title:          "Intro to Go",
		Tags:           `["go","backend"]`,
		WhatYoullLearn: "goroutines, channels",
	}

	course, err := svc.CreateCourse(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, course.ID)
	courseRepo.AssertExpectations(t)
}

func TestCourseService_CreateCourse_EmptyListsStayNonNil(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return c.Tags != nil && len(c.Tags) == 0 &&
			c.WhatYoullLearn != nil && len(c.WhatYoullLearn) == 0
	})).Return(&models.Course{ID: 2, Title: "Bare"}, nil)

	svc := NewCourseService(courseRepo, nil)

	_, err := svc.CreateCourse(context.Background(), &models.CreateCourseRequest{Title: "Bare"}, nil)
	require.NoError(t, err)
	courseRepo.AssertExpectations(t)
}

func TestCourseService_CreateCourse_WithImage(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	images := new(mockImageStorage)

	images.On("SaveImage", mock.Anything, mock.MatchedBy(func(key string) bool {
		// Keys are uuid-based under courses/ with the original extension
		return len(key) > len("courses/") && key[:8] == "courses/" && key[len(key)-4:] == ".png"
	}), []byte("fake-png"), "image/png").Return("/uploads/courses/abc.png", nil)

	courseRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Course) bool {
		return c.Image == "/uploads/courses/abc.png"
	})).Return(&models.Course{ID: 3, Image: "/uploads/courses/abc.png"}, nil)

	svc := NewCourseService(courseRepo, images)

	course, err := svc.CreateCourse(context.Background(), &models.CreateCourseRequest{Title: "Visual"}, &ImageUpload{
		Filename:    "cover.PNG",
		ContentType: "image/png",
		Data:        []byte("fake-png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/courses/abc.png", course.Image)

	images.AssertExpectations(t)
	courseRepo.AssertExpectations(t)
}

func TestCourseService_CreateCourse_ImageStorageFailure(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	images := new(mockImageStorage)

	images.On("SaveImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	svc := NewCourseService(courseRepo, images)

	course, err := svc.CreateCourse(context.Background(), &models.CreateCourseRequest{Title: "Visual"}, &ImageUpload{
		Filename: "cover.png",
		Data:     []byte("fake"),
	})
	assert.Nil(t, course)
	assert.Error(t, err)
	courseRepo.AssertNotCalled(t, "Create")
}

func TestCourseService_UpdateCourse_OnlySuppliedFields(t *testing.T) {
	courseRepo := new(mockCourseRepository)

	title := "New Title"
	tags := "go, web"
	courseRepo.On("Update", mock.Anything, 7, map[string]any{
		"title": "New Title",
		"tags":  `["go","web"]`,
	}).Return(&models.Course{ID: 7, Title: "New Title"}, nil)

	svc := NewCourseService(courseRepo, nil)

	course, err := svc.UpdateCourse(context.Background(), 7, &models.UpdateCourseRequest{
		Title: &title,
		Tags:  &tags,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Title", course.Title)
	courseRepo.AssertExpectations(t)
}

func TestCourseService_UpdateCourse_NotFound(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("Update", mock.Anything, 99, mock.Anything).
		Return(nil, apperrors.NotFoundError("course"))

	svc := NewCourseService(courseRepo, nil)

	course, err := svc.UpdateCourse(context.Background(), 99, &models.UpdateCourseRequest{}, nil)
	assert.Nil(t, course)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCourseService_DeleteCourse(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("Delete", mock.Anything, 5).Return(nil)

	svc := NewCourseService(courseRepo, nil)

	assert.NoError(t, svc.DeleteCourse(context.Background(), 5))
	courseRepo.AssertExpectations(t)
}

func TestCourseService_DeleteCourse_NotFound(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("Delete", mock.Anything, 5).Return(apperrors.NotFoundError("course"))

	svc := NewCourseService(courseRepo, nil)

	err := svc.DeleteCourse(context.Background(), 5)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCourseService_ListPublicCourses(t *testing.T) {
	courseRepo := new(mockCourseRepository)
	courseRepo.On("ListPublic", mock.Anything, "devops").
		Return([]*models.Course{{ID: 1}, {ID: 2}}, nil)

	svc := NewCourseService(courseRepo, nil)

	courses, err := svc.ListPublicCourses(context.Background(), "devops")
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}
