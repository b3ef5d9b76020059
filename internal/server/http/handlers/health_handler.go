package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordermart/internal/server/http/dto"
)

const healthTimeout = 2 * time.Second

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves readiness probes.
type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Ready handles GET /healthz.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.checker == nil {
		c.Status(http.StatusOK)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	if err := h.checker.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "database unavailable"})
		return
	}
	c.Status(http.StatusOK)
}
