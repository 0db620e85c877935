package services

import (
	"context"
	"errors"
	"time"

	"github.com/learnhub/learnhub-api/config"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/repository"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
	"github.com/learnhub/learnhub-api/pkg/jwt"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown username and wrong password so
// the response cannot be used for username enumeration.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles admin authentication.
type AuthService struct {
	adminRepo    repository.AdminRepositoryInterface
	tokenManager *jwt.TokenManager
}

// NewAuthService creates an AuthService.
func NewAuthService(adminRepo repository.AdminRepositoryInterface, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		tokenManager: jwt.NewTokenManager(
			cfg.Auth.JWTSecret,
			cfg.Auth.JWTIssuer,
			cfg.Auth.SessionTTLMinutes,
		),
	}
}

// GetTokenManager exposes the token manager for the auth middleware.
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// Login verifies credentials against the stored bcrypt hash and issues a
// session token. Read-only against the store; both failure modes return the
// same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	start := time.Now()

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Burn a bcrypt comparison anyway so unknown usernames take as
			// long as wrong passwords
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
				[]byte(password),
			)
			metrics.LoginAttempts.WithLabelValues("unknown_username").Inc()
			logger.Warn("Login attempt for unknown username", zap.String("username", username))
			return nil, ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("store_error").Inc()
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("wrong_password").Inc()
		logger.Warn("Login attempt with wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("token_error").Inc()
		logger.Error("Failed to generate session token", zap.Error(err))
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info("Admin logged in",
		zap.String("username", admin.Username),
		zap.Duration("duration", time.Since(start)))

	return &models.LoginResponse{
		Message:  "Login successful",
		Username: admin.Username,
		Token:    token,
	}, nil
}
