package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/pkg/response"
	"github.com/rs/zerolog/log"
)

// HealthHandler answers the liveness and readiness probes.
type HealthHandler struct {
	store repository.Pinger
}

func NewHealthHandler(store repository.Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness only says the process is serving; the store is not consulted.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness pings the store within the usual request budget. The driver error
// stays in the log; clients only see the mapped category.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		status, payload := response.MapError(err)
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("readiness check failed")
		c.AbortWithStatusJSON(status, gin.H{
			"status": "unavailable",
			"error":  payload.Error,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
