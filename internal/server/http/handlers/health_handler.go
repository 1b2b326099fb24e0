package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/server/http/dto"
)

// HealthHandler reports liveness together with a storage ping.
type HealthHandler struct {
	checker HealthChecker
	logger  *slog.Logger
	now     func() time.Time
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(checker HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "UNAVAILABLE", Timestamp: h.now()})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "OK", Timestamp: h.now()})
}
