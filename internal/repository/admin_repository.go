package repository

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/database/postgres"
	"github.com/learnhub/learnhub-api/internal/models"
)

// AdminRepository handles admin credential lookups. Read-only from the
// service's point of view; admins are created by the seed command.
type AdminRepository struct {
	db *postgres.Client
}

// NewAdminRepository creates an admin repository.
func NewAdminRepository(db *postgres.Client) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByUsername fetches an admin by exact username match.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.db.GetAdminByUsername(ctx, username)
}
