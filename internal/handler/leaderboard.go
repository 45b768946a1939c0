package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/service"
	"github.com/maxviazov/cricket-stats-service/pkg/response"
	"github.com/rs/zerolog/log"
)

type LeaderboardHandler struct {
	svc service.PlayerService
}

func NewLeaderboardHandler(svc service.PlayerService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/leaderboards")
	{
		g.GET("", h.all)
		g.GET("/scorers", h.scorers)
		g.GET("/wickets", h.wicketTakers)
	}
}

func (h *LeaderboardHandler) all(c *gin.Context) {
	start := time.Now()
	ctx, cancel := withTimeout(c)
	defer cancel()
	boards, err := h.svc.Leaderboards(ctx)

	logger := log.With().
		Str("path", c.Request.URL.Path).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("failed to build leaderboards")
		response.WriteError(c, err)
		return
	}
	logger.Debug().Int("status", http.StatusOK).Msg("leaderboards retrieved")
	response.WriteData(c, http.StatusOK, boards)
}

func (h *LeaderboardHandler) scorers(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	res, err := h.svc.TopScorers(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *LeaderboardHandler) wicketTakers(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	res, err := h.svc.TopWicketTakers(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
