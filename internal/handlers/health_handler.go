package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger abstracts database connectivity checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service readiness.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthcheck handles GET /api/healthcheck
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
