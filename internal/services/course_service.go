package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/repository"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/storage"
	"go.uber.org/zap"
)

// ImageUpload carries an uploaded course image from the handler layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CourseService implements course catalog operations on top of the
// repository and image storage.
type CourseService struct {
	courseRepo repository.CourseRepositoryInterface
	images     storage.ImageStorage
}

// NewCourseService creates a CourseService.
func NewCourseService(courseRepo repository.CourseRepositoryInterface, images storage.ImageStorage) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		images:     images,
	}
}

// ListCourses returns the full admin listing.
func (s *CourseService) ListCourses(ctx context.Context, opts models.ListOptions) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, opts)
}

// ListPublicCourses returns the capped anonymous listing.
func (s *CourseService) ListPublicCourses(ctx context.Context, category string) ([]*models.Course, error) {
	return s.courseRepo.ListPublic(ctx, category)
}

// GetCourseBySlug fetches a single course for the detail view.
func (s *CourseService) GetCourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.courseRepo.GetBySlug(ctx, slug)
}

// CreateCourse normalizes list-valued fields, stores an uploaded image if
// present, and inserts the course. Title is the only mandatory field.
func (s *CourseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest, image *ImageUpload) (*models.Course, error) {
	course := &models.Course{
		Title:           strings.TrimSpace(req.Title),
		Slug:            req.Slug,
		Description:     req.Description,
		Image:           req.Image,
		Category:        req.Category,
		Tags:            models.ParseStringList(req.Tags),
		Instructor:      req.Instructor,
		Duration:        req.Duration,
		Students:        req.Students,
		Rating:          req.Rating,
		ExternalLink:    req.ExternalLink,
		FullDescription: req.FullDescription,
		Prerequisites:   req.Prerequisites,
		Level:           req.Level,
		Language:        req.Language,
		LastUpdated:     req.LastUpdated,
		Certificate:     req.Certificate,
		WhatYoullLearn:  models.ParseStringList(req.WhatYoullLearn),
	}

	if image != nil {
		imagePath, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		course.Image = imagePath
	}

	stored, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	logger.Info("Course created",
		zap.Int("course_id", stored.ID),
		zap.String("title", stored.Title))

	return stored, nil
}

// UpdateCourse applies a partial update; only supplied fields are changed.
// List-valued fields are re-normalized through the same parse/serialize
// round trip as creation.
func (s *CourseService) UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest, image *ImageUpload) (*models.Course, error) {
	updates := make(map[string]any)

	setString := func(col string, val *string) {
		if val != nil {
			updates[col] = *val
		}
	}
	setString("title", req.Title)
	setString("slug", req.Slug)
	setString("description", req.Description)
	setString("category", req.Category)
	setString("instructor", req.Instructor)
	setString("duration", req.Duration)
	setString("external_link", req.ExternalLink)
	setString("full_description", req.FullDescription)
	setString("prerequisites", req.Prerequisites)
	setString("level", req.Level)
	setString("language", req.Language)
	setString("last_updated", req.LastUpdated)
	setString("image", req.Image)

	if req.Students != nil {
		updates["students"] = *req.Students
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Certificate != nil {
		updates["certificate"] = *req.Certificate
	}
	if req.Tags != nil {
		updates["tags"] = models.SerializeStringList(models.ParseStringList(*req.Tags))
	}
	if req.WhatYoullLearn != nil {
		updates["what_youll_learn"] = models.SerializeStringList(models.ParseStringList(*req.WhatYoullLearn))
	}

	if image != nil {
		imagePath, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		updates["image"] = imagePath
	}

	stored, err := s.courseRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	logger.Info("Course updated",
		zap.Int("course_id", id),
		zap.Int("changed_fields", len(updates)))

	return stored, nil
}

// DeleteCourse removes a course.
func (s *CourseService) DeleteCourse(ctx context.Context, id int) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Course deleted", zap.Int("course_id", id))
	return nil
}

// saveImage stores an upload under a unique key, keeping the original
// extension for content negotiation by the static file server.
func (s *CourseService) saveImage(ctx context.Context, image *ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(image.Filename))
	key := fmt.Sprintf("courses/%s%s", uuid.NewString(), ext)
	return s.images.SaveImage(ctx, key, image.Data, image.ContentType)
}
