package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/learnhub/learnhub-api/internal/models"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"go.uber.org/zap"
)

// CourseRow represents a course row from the database. List-valued fields
// are stored as JSON-serialized text; NULL deserializes to [].
type CourseRow struct {
	ID              int
	Title           string
	Slug            string
	Description     *string
	Image           *string
	Category        *string
	Tags            *string
	Instructor      *string
	Duration        *string
	Students        int
	Rating          float64
	ExternalLink    *string
	FullDescription *string
	Prerequisites   *string
	Level           *string
	Language        *string
	LastUpdated     *string
	Certificate     bool
	WhatYoullLearn  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const courseColumns = `
	id, title, slug, description, image, category, tags, instructor,
	duration, students, rating, external_link, full_description,
	prerequisites, level, language, last_updated, certificate,
	what_youll_learn, created_at, updated_at`

// sortableColumns whitelists the ORDER BY targets exposed through the API.
// Request keys use the JSON field names; values are the real columns.
var sortableColumns = map[string]string{
	"createdAt":   "created_at",
	"title":       "title",
	"rating":      "rating",
	"students":    "students",
	"lastUpdated": "last_updated",
	"category":    "category",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var r CourseRow
	err := row.Scan(
		&r.ID, &r.Title, &r.Slug, &r.Description, &r.Image, &r.Category,
		&r.Tags, &r.Instructor, &r.Duration, &r.Students, &r.Rating,
		&r.ExternalLink, &r.FullDescription, &r.Prerequisites, &r.Level,
		&r.Language, &r.LastUpdated, &r.Certificate, &r.WhatYoullLearn,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rowToCourse(&r), nil
}

func rowToCourse(r *CourseRow) *models.Course {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	return &models.Course{
		ID:              r.ID,
		Title:           r.Title,
		Slug:            r.Slug,
		Description:     deref(r.Description),
		Image:           deref(r.Image),
		Category:        deref(r.Category),
		Tags:            models.DeserializeStringList(r.Tags),
		Instructor:      deref(r.Instructor),
		Duration:        deref(r.Duration),
		Students:        r.Students,
		Rating:          r.Rating,
		ExternalLink:    deref(r.ExternalLink),
		FullDescription: deref(r.FullDescription),
		Prerequisites:   deref(r.Prerequisites),
		Level:           deref(r.Level),
		Language:        deref(r.Language),
		LastUpdated:     deref(r.LastUpdated),
		Certificate:     r.Certificate,
		WhatYoullLearn:  models.DeserializeStringList(r.WhatYoullLearn),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ListCourses fetches courses with optional category filter and ordering.
func (c *Client) ListCourses(ctx context.Context, opts models.ListOptions) ([]*models.Course, error) {
	start := time.Now()
	operation := "listCourses"

	sortCol, ok := sortableColumns[opts.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	sortDir := "DESC"
	if strings.EqualFold(opts.SortOrder, "ASC") {
		sortDir = "ASC"
	}

	query := fmt.Sprintf("SELECT %s FROM courses", courseColumns)
	args := []any{}
	if opts.Category != "" {
		query += " WHERE category = $1"
		args = append(args, opts.Category)
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortCol, sortDir)
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, scanErr := scanCourse(rows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(scanErr))
			return nil, fmt.Errorf("failed to scan course row: %w", scanErr)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(courses)))

	return courses, nil
}

// GetCourseByID fetches a single course.
func (c *Client) GetCourseByID(ctx context.Context, id int) (*models.Course, error) {
	start := time.Now()
	operation := "getCourseByID"

	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	course, err := scanCourse(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("course")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch course %d: %w", id, err)
	}

	recordMetrics(operation, "success", duration)
	return course, nil
}

// GetCourseBySlug fetches a single course by its slug.
func (c *Client) GetCourseBySlug(ctx context.Context, courseSlug string) (*models.Course, error) {
	start := time.Now()
	operation := "getCourseBySlug"

	query := fmt.Sprintf("SELECT %s FROM courses WHERE slug = $1", courseColumns)
	course, err := scanCourse(c.pool.QueryRow(ctx, query, courseSlug))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("course")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch course %q: %w", courseSlug, err)
	}

	recordMetrics(operation, "success", duration)
	return course, nil
}

// InsertCourse inserts a new course and returns the stored record.
func (c *Client) InsertCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	start := time.Now()
	operation := "insertCourse"

	query := fmt.Sprintf(`
		INSERT INTO courses (
			title, slug, description, image, category, tags, instructor,
			duration, students, rating, external_link, full_description,
			prerequisites, level, language, last_updated, certificate,
			what_youll_learn
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING %s`, courseColumns)

	stored, err := scanCourse(c.pool.QueryRow(ctx, query,
		course.Title,
		course.Slug,
		nilIfEmpty(course.Description),
		nilIfEmpty(course.Image),
		nilIfEmpty(course.Category),
		models.SerializeStringList(course.Tags),
		nilIfEmpty(course.Instructor),
		nilIfEmpty(course.Duration),
		course.Students,
		course.Rating,
		nilIfEmpty(course.ExternalLink),
		nilIfEmpty(course.FullDescription),
		nilIfEmpty(course.Prerequisites),
		nilIfEmpty(course.Level),
		nilIfEmpty(course.Language),
		nilIfEmpty(course.LastUpdated),
		course.Certificate,
		models.SerializeStringList(course.WhatYoullLearn),
	))

	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert course: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("course_id", stored.ID))
	return stored, nil
}

// UpdateCourseSlug sets the generated slug after insert when the client did
// not supply one (the slug embeds the new row's id).
func (c *Client) UpdateCourseSlug(ctx context.Context, id int, courseSlug string) error {
	_, err := c.pool.Exec(ctx,
		"UPDATE courses SET slug = $1, updated_at = now() WHERE id = $2",
		courseSlug, id)
	if err != nil {
		return fmt.Errorf("failed to update course slug: %w", err)
	}
	return nil
}

// UpdateCourse applies a partial update. updates maps column names to new
// values; only supplied columns are changed. Returns the stored record or
// ErrNotFound.
func (c *Client) UpdateCourse(ctx context.Context, id int, updates map[string]any) (*models.Course, error) {
	start := time.Now()
	operation := "updateCourse"

	if len(updates) == 0 {
		return c.GetCourseByID(ctx, id)
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]any, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE courses SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), i, courseColumns,
	)

	stored, err := scanCourse(c.pool.QueryRow(ctx, query, args...))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("course")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("course_id", id))
	return stored, nil
}

// DeleteCourse removes a course. Returns ErrNotFound when no row matched;
// other records are never affected.
func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	start := time.Now()
	operation := "deleteCourse"

	tag, err := c.pool.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("course")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("course_id", id))
	return nil
}
