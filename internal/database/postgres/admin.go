package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/learnhub/learnhub-api/internal/models"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"go.uber.org/zap"
)

// GetAdminByUsername fetches an admin record by exact username match.
func (c *Client) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	start := time.Now()
	operation := "getAdminByUsername"

	var admin models.Admin
	err := c.pool.QueryRow(ctx,
		"SELECT id, username, password_hash FROM admins WHERE username = $1",
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("admin")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return &admin, nil
}

// CreateAdmin inserts an admin record. Used only by the seed command; the
// running service never mutates admins. The unique constraint on username
// surfaces as ErrConflict.
func (c *Client) CreateAdmin(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	start := time.Now()
	operation := "createAdmin"

	var admin models.Admin
	err := c.pool.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		 RETURNING id, username, password_hash`,
		username, passwordHash,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create admin %q: %w", username, apperrors.ErrConflict)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("username", username))
	return &admin, nil
}
