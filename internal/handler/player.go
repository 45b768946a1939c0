package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/service"
	"github.com/maxviazov/cricket-stats-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.POST("/:id/performance", h.recordPerformance)
	}
	// Team stats: /api/v1/teams/:team/players
	r.Group("/teams").GET("/:team/players", h.listByTeam)
}

type createPlayerRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Team string `json:"team"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	player, err := h.svc.AddPlayer(ctx, req.Name, model.Role(req.Role), req.Team)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

// list returns every player; ?team= narrows to an exact, case-sensitive team match.
func (h *PlayerHandler) list(c *gin.Context) {
	var team *string
	if v := strings.TrimSpace(c.Query("team")); v != "" {
		team = &v
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	players, err := h.svc.ListPlayers(ctx, team)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

func (h *PlayerHandler) listByTeam(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	players, err := h.svc.TeamPlayers(ctx, c.Param("team"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}

type recordPerformanceRequest struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

type recordPerformanceResponse struct {
	PlayerID int64 `json:"player_id"`
	Matched  bool  `json:"matched"`
}

// recordPerformance answers 200 even when no player has the id; matched tells the caller.
func (h *PlayerHandler) recordPerformance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}
	var req recordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	matched, err := h.svc.RecordPerformance(ctx, model.Performance{PlayerID: id, Runs: req.Runs, Wickets: req.Wickets})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, recordPerformanceResponse{PlayerID: id, Matched: matched})
}
