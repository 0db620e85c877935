package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-api/internal/middleware"
	"github.com/learnhub/learnhub-api/pkg/jwt"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "info",
		Environment: "test",
	})
}

func setupAuthRouter(tm *jwt.TokenManager) (*gin.Engine, *bool) {
	router := gin.New()
	handlerCalled := false
	router.Use(middleware.AdminAuthMiddleware(tm))
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		session, err := middleware.GetAdminSession(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": session.Username})
	})
	return router, &handlerCalled
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "learnhub-api", 60)
	token, err := tm.GenerateToken(1, "admin")
	require.NoError(t, err)

	router, handlerCalled := setupAuthRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.True(t, *handlerCalled, "Handler should be called for valid token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestAdminAuthMiddleware_MissingToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "learnhub-api", 60)
	router, handlerCalled := setupAuthRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called without a token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Access denied. No token provided."}`, w.Body.String())
}

func TestAdminAuthMiddleware_InvalidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "learnhub-api", 60)
	router, handlerCalled := setupAuthRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled, "Handler should not be called for invalid token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token."}`, w.Body.String())
}

func TestAdminAuthMiddleware_TokenSignedWithDifferentSecret(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "learnhub-api", 60)
	other := jwt.NewTokenManager("other-secret", "learnhub-api", 60)
	token, err := other.GenerateToken(1, "admin")
	require.NoError(t, err)

	router, handlerCalled := setupAuthRouter(tm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)

	router.ServeHTTP(w, req)

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuthMiddleware_MalformedHeader(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "learnhub-api", 60)

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "some-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, handlerCalled := setupAuthRouter(tm)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			router.ServeHTTP(w, req)

			assert.False(t, *handlerCalled)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
