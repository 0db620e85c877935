package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/services"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
)

// imageFormField is the multipart field carrying the course image.
const imageFormField = "image"

// CourseHandler handles course catalog endpoints.
type CourseHandler struct {
	service services.CourseServiceInterface
}

func NewCourseHandler(service services.CourseServiceInterface) *CourseHandler {
	return &CourseHandler{service: service}
}

// GetPublicCourses handles GET /api/v1/public/courses, the capped
// anonymous listing. Only the category filter is exposed here.
func (h *CourseHandler) GetPublicCourses(c *gin.Context) {
	courses, err := h.service.ListPublicCourses(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch courses", err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCourseBySlug handles GET /api/v1/public/courses/:slug for the SPA
// detail view.
func (h *CourseHandler) GetCourseBySlug(c *gin.Context) {
	course, err := h.service.GetCourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Course not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch course", err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetCourses handles GET /api/v1/courses, the authenticated full listing
// with filtering and ordering.
func (h *CourseHandler) GetCourses(c *gin.Context) {
	opts := models.ListOptions{
		Category:  c.Query("category"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "DESC"),
	}

	courses, err := h.service.ListCourses(c.Request.Context(), opts)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch courses", err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// CreateCourse handles POST /api/v1/courses (multipart with optional image).
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded image", err)
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), &req, image)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create course", err)
		return
	}

	c.JSON(http.StatusCreated, models.CourseResponse{
		Message: "Course created successfully",
		Course:  course,
	})
}

// UpdateCourse handles PUT /api/v1/courses/:id (multipart, partial update).
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid course ID", err)
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded image", err)
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), id, &req, image)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Course not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update course", err)
		return
	}

	c.JSON(http.StatusOK, models.CourseResponse{
		Message: "Course updated successfully",
		Course:  course,
	})
}

// DeleteCourse handles DELETE /api/v1/courses/:id.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid course ID", err)
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Course not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete course", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// readImageUpload extracts the optional image file from a multipart request.
// Returns nil when the field is absent.
func readImageUpload(c *gin.Context) (*services.ImageUpload, error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, err
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return nil, err
	}

	return &services.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
