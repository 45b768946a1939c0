package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/service"
	"github.com/maxviazov/cricket-stats-service/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		g.GET("", h.list)
	}
}

type createMatchRequest struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Winner string `json:"winner"`
	Venue  string `json:"venue"`
	Date   string `json:"date"` // YYYY-MM-DD, empty means today
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	match, err := h.svc.AddMatch(ctx, model.Match{
		Team1:  req.Team1,
		Team2:  req.Team2,
		Winner: req.Winner,
		Venue:  req.Venue,
		Date:   req.Date,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, match)
}

func (h *MatchHandler) list(c *gin.Context) {
	ctx, cancel := withTimeout(c)
	defer cancel()
	matches, err := h.svc.ListMatches(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, matches)
}
