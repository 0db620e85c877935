package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/pkg/jwt"
)

// AdminSessionContextKey stores the authenticated admin session in request context.
const AdminSessionContextKey = "admin_session"

var (
	ErrSessionNotFound = errors.New("admin session not found in context")
	ErrInvalidSession  = errors.New("invalid admin session type")
)

// AdminAuthMiddleware gates admin routes on a bearer token. Per-request
// states: no token → 401, bad or expired token → 403, valid token → decoded
// identity attached to context. Any valid token is treated as full admin;
// there are no roles.
func AdminAuthMiddleware(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			_ = c.Error(fmt.Errorf("missing bearer token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid admin token: %w", err)) //nolint:errcheck
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token."})
			c.Abort()
			return
		}

		session := &models.AdminSession{
			AdminID:   claims.AdminID,
			Username:  claims.Username,
			IssuedAt:  claims.IssuedAt.Unix(),
			ExpiresAt: claims.ExpiresAt.Unix(),
		}

		c.Set(AdminSessionContextKey, session)
		c.Next()
	}
}

// GetAdminSession extracts the session from context.
func GetAdminSession(c *gin.Context) (*models.AdminSession, error) {
	val, exists := c.Get(AdminSessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.AdminSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. Returns "" for a missing or malformed header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
