package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/internal/service"
)

// serviceTimeout bounds every service call made on behalf of a request.
const serviceTimeout = 5 * time.Second

// Register mounts all public routes on the given engine: health probes, docs,
// the JSON API and the form-based UI.
func Register(r *gin.Engine, store repository.Pinger, playerSvc service.PlayerService, matchSvc service.MatchService) error {
	h := NewHealthHandler(store)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewPlayerHandler(playerSvc).Register(api)
		NewMatchHandler(matchSvc).Register(api)
		NewLeaderboardHandler(playerSvc).Register(api)
	}

	ui, err := NewUIHandler(playerSvc, matchSvc)
	if err != nil {
		return err
	}
	ui.Register(r)
	return nil
}

func withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), serviceTimeout)
}
