package handler

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/service"
	"github.com/maxviazov/cricket-stats-service/pkg/response"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// PerformancePath takes the record performance form posted from the players page.
const PerformancePath = "/players/performance"

type flashKind string

const (
	flashSuccess flashKind = "success"
	flashWarning flashKind = "warning"
	flashError   flashKind = "error"
)

type flash struct {
	Kind flashKind
	Text string
}

// pageData is everything a page template may read. Unused fields stay zero.
type pageData struct {
	Menu    []MenuChoice
	Active  MenuChoice
	Flash   *flash
	Roles   []model.Role
	Form    map[string]string
	Players []model.Player
	Matches []model.Match
	Boards  model.Leaderboards
	Team    string
}

// UIHandler serves the form-based pages, one per menu choice.
type UIHandler struct {
	players service.PlayerService
	matches service.MatchService
	pages   map[MenuChoice]*template.Template
	today   func() string
}

func NewUIHandler(players service.PlayerService, matches service.MatchService) (*UIHandler, error) {
	pages := make(map[MenuChoice]*template.Template, len(MenuChoices))
	for _, m := range MenuChoices {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+m.page())
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", m.Title(), err)
		}
		pages[m] = t
	}
	return &UIHandler{
		players: players,
		matches: matches,
		pages:   pages,
		today:   func() string { return time.Now().UTC().Format(service.DateLayout) },
	}, nil
}

func (h *UIHandler) Register(r *gin.Engine) {
	r.GET("/", h.index)
	for _, m := range MenuChoices {
		r.GET(m.Path(), h.show(m))
	}
	r.POST(MenuAddPlayer.Path(), h.addPlayer)
	r.POST(PerformancePath, h.recordPerformance)
	r.POST(MenuAddMatch.Path(), h.addMatch)
}

// index plays the role of the sidebar select: ?menu=<title> picks a page, the first choice otherwise.
func (h *UIHandler) index(c *gin.Context) {
	choice := MenuChoices[0]
	if m, ok := ParseMenuChoice(c.Query("menu")); ok {
		choice = m
	}
	c.Redirect(http.StatusFound, choice.Path())
}

func (h *UIHandler) show(m MenuChoice) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := h.newPage(m)
		ctx, cancel := withTimeout(c)
		defer cancel()

		var err error
		switch m {
		case MenuAddPlayer:
		case MenuViewPlayers:
			data.Team = strings.TrimSpace(c.Query("team"))
			err = h.loadPlayers(ctx, &data)
		case MenuAddMatch:
			data.Form["date"] = h.today()
		case MenuViewMatches:
			data.Matches, err = h.matches.ListMatches(ctx)
		case MenuLeaderboards:
			data.Boards, err = h.players.Leaderboards(ctx)
		case MenuTeamStats:
			data.Team = strings.TrimSpace(c.Query("team"))
			if data.Team == "" {
				break
			}
			data.Players, err = h.players.TeamPlayers(ctx, data.Team)
			if err == nil && len(data.Players) == 0 {
				data.Flash = &flash{flashWarning, fmt.Sprintf("No players found for team %s.", data.Team)}
			}
		}
		if err != nil {
			h.fail(c, data, err)
			return
		}
		h.render(c, http.StatusOK, data)
	}
}

func (h *UIHandler) addPlayer(c *gin.Context) {
	data := h.newPage(MenuAddPlayer)
	name := strings.TrimSpace(c.PostForm("name"))
	team := strings.TrimSpace(c.PostForm("team"))
	role := c.PostForm("role")
	data.Form["name"], data.Form["team"], data.Form["role"] = name, team, role

	if name == "" || team == "" {
		data.Flash = &flash{flashWarning, "Please enter both name and team."}
		h.render(c, http.StatusUnprocessableEntity, data)
		return
	}
	if !model.Role(role).Valid() {
		data.Flash = &flash{flashWarning, "Please choose one of the listed roles."}
		h.render(c, http.StatusUnprocessableEntity, data)
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if _, err := h.players.AddPlayer(ctx, name, model.Role(role), team); err != nil {
		h.fail(c, data, err)
		return
	}
	data.Form = map[string]string{}
	data.Flash = &flash{flashSuccess, fmt.Sprintf("Player %s added successfully!", name)}
	h.render(c, http.StatusOK, data)
}

func (h *UIHandler) recordPerformance(c *gin.Context) {
	data := h.newPage(MenuViewPlayers)
	ctx, cancel := withTimeout(c)
	defer cancel()

	id, errID := strconv.ParseInt(strings.TrimSpace(c.PostForm("player_id")), 10, 64)
	runs, errRuns := strconv.Atoi(strings.TrimSpace(c.PostForm("runs")))
	wickets, errWickets := strconv.Atoi(strings.TrimSpace(c.PostForm("wickets")))
	if errID != nil || errRuns != nil || errWickets != nil {
		data.Flash = &flash{flashWarning, "Player id, runs and wickets must be whole numbers."}
		h.renderPlayers(ctx, c, http.StatusUnprocessableEntity, data)
		return
	}

	matched, err := h.players.RecordPerformance(ctx, model.Performance{PlayerID: id, Runs: runs, Wickets: wickets})
	switch {
	case err != nil:
		h.fail(c, data, err)
		return
	case !matched:
		data.Flash = &flash{flashWarning, fmt.Sprintf("No player with id %d, nothing was updated.", id)}
	default:
		data.Flash = &flash{flashSuccess, fmt.Sprintf("Performance recorded for player %d.", id)}
	}
	h.renderPlayers(ctx, c, http.StatusOK, data)
}

func (h *UIHandler) addMatch(c *gin.Context) {
	data := h.newPage(MenuAddMatch)
	for _, k := range []string{"team1", "team2", "winner", "venue", "date"} {
		data.Form[k] = strings.TrimSpace(c.PostForm(k))
	}
	if data.Form["team1"] == "" || data.Form["team2"] == "" || data.Form["winner"] == "" {
		data.Flash = &flash{flashWarning, "Please fill all required fields."}
		h.render(c, http.StatusUnprocessableEntity, data)
		return
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	_, err := h.matches.AddMatch(ctx, model.Match{
		Team1:  data.Form["team1"],
		Team2:  data.Form["team2"],
		Winner: data.Form["winner"],
		Venue:  data.Form["venue"],
		Date:   data.Form["date"],
	})
	if err != nil {
		h.fail(c, data, err)
		return
	}
	data.Form = map[string]string{"date": h.today()}
	data.Flash = &flash{flashSuccess, "Match added successfully!"}
	h.render(c, http.StatusOK, data)
}

func (h *UIHandler) newPage(m MenuChoice) pageData {
	return pageData{
		Menu:   MenuChoices,
		Active: m,
		Roles:  model.Roles,
		Form:   map[string]string{},
	}
}

func (h *UIHandler) loadPlayers(ctx context.Context, data *pageData) error {
	var team *string
	if data.Team != "" {
		team = &data.Team
	}
	players, err := h.players.ListPlayers(ctx, team)
	if err != nil {
		return err
	}
	data.Players = players
	return nil
}

// renderPlayers re-renders the players page after a performance form; a listing failure replaces the flash.
func (h *UIHandler) renderPlayers(ctx context.Context, c *gin.Context, status int, data pageData) {
	if err := h.loadPlayers(ctx, &data); err != nil {
		h.fail(c, data, err)
		return
	}
	h.render(c, status, data)
}

// fail renders the active page with the error as a flash. Validation problems are warnings.
func (h *UIHandler) fail(c *gin.Context, data pageData, err error) {
	status, payload := response.MapError(err)
	if errors.Is(err, service.ErrInvalidInput) {
		msgs := make([]string, 0)
		for _, fe := range service.FieldErrors(err) {
			msgs = append(msgs, fe.Field+" "+fe.Message)
		}
		data.Flash = &flash{flashWarning, "Please check the form: " + strings.Join(msgs, "; ") + "."}
		h.render(c, http.StatusUnprocessableEntity, data)
		return
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("ui request failed")
	text := payload.Message
	if text == "" {
		text = "Something went wrong, please try again."
	}
	data.Flash = &flash{flashError, text}
	h.render(c, status, data)
}

func (h *UIHandler) render(c *gin.Context, status int, data pageData) {
	c.Render(status, render.HTML{Template: h.pages[data.Active], Name: "layout", Data: data})
}
