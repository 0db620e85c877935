package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/services"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	service services.AuthServiceInterface
}

func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown username and wrong password
			respondError(c, http.StatusUnauthorized, "Invalid username or password", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error while logging in", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
