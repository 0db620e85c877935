package services

import (
	"context"
	"testing"

	"github.com/learnhub/learnhub-api/config"
	"github.com/learnhub/learnhub-api/internal/models"
	apperrors "github.com/learnhub/learnhub-api/pkg/errors"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	_ = logger.Initialize(logger.Config{
		Level:       "info",
		Environment: "test",
	})
}

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			JWTIssuer:         "learnhub-api",
			SessionTTLMinutes: 60,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	adminRepo := new(mockAdminRepository)
	adminRepo.On("GetByUsername", mock.Anything, "admin").Return(&models.Admin{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "correct-password"),
	}, nil)

	svc := NewAuthService(adminRepo, testAuthConfig())

	resp, err := svc.Login(context.Background(), "admin", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "admin", resp.Username)
	assert.NotEmpty(t, resp.Token)

	// The issued token must validate against the service's own manager
	claims, err := svc.GetTokenManager().ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)

	adminRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	adminRepo := new(mockAdminRepository)
	adminRepo.On("GetByUsername", mock.Anything, "admin").Return(&models.Admin{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "correct-password"),
	}, nil)

	svc := NewAuthService(adminRepo, testAuthConfig())

	resp, err := svc.Login(context.Background(), "admin", "wrong-password")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	adminRepo := new(mockAdminRepository)
	adminRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, apperrors.NotFoundError("admin"))

	svc := NewAuthService(adminRepo, testAuthConfig())

	resp, err := svc.Login(context.Background(), "ghost", "any-password")
	assert.Nil(t, resp)

	// Unknown username must be indistinguishable from wrong password
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	adminRepo := new(mockAdminRepository)
	adminRepo.On("GetByUsername", mock.Anything, "admin").
		Return(nil, assert.AnError)

	svc := NewAuthService(adminRepo, testAuthConfig())

	resp, err := svc.Login(context.Background(), "admin", "password")
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
