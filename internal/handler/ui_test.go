package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/maxviazov/cricket-stats-service/internal/handler"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMenuChoices_Fixed(t *testing.T) {
	titles := make([]string, 0, len(handler.MenuChoices))
	for _, m := range handler.MenuChoices {
		titles = append(titles, m.Title())
	}
	assert.Equal(t, []string{"Add Player", "View Players", "Add Match", "View Matches", "Leaderboards", "Team Stats"}, titles)

	m, ok := handler.ParseMenuChoice("Team Stats")
	require.True(t, ok)
	assert.Equal(t, handler.MenuTeamStats, m)
	_, ok = handler.ParseMenuChoice("team stats")
	assert.False(t, ok)
}

func TestUI_IndexRedirects(t *testing.T) {
	r := newEngine(stubPinger{}, nil, nil)

	w := get(r, "/")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/players/new", w.Header().Get("Location"))

	w = get(r, "/?menu=Leaderboards")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/leaderboards", w.Header().Get("Location"))
}

func TestUI_EveryMenuPageRenders(t *testing.T) {
	r := newEngine(stubPinger{}, nil, nil)
	for _, m := range handler.MenuChoices {
		w := get(r, m.Path())
		require.Equal(t, http.StatusOK, w.Code, m.Title())
		assert.Contains(t, w.Body.String(), "Cricket Database Management System")
		assert.Contains(t, w.Body.String(), `class="active">`+m.Title()+"</a>")
	}
}

func TestUI_AddPlayer(t *testing.T) {
	ps := &stubPlayerService{}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, "/players/new", url.Values{"name": {" Virat "}, "role": {"Batsman"}, "team": {"India"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Player Virat added successfully!")
	assert.Equal(t, "Virat", ps.added.name)
}

func TestUI_AddPlayer_MissingFields(t *testing.T) {
	ps := &stubPlayerService{}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, "/players/new", url.Values{"name": {"Virat"}, "role": {"Batsman"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter both name and team.")
	assert.Empty(t, ps.added.name, "service must not be called")
}

func TestUI_AddPlayer_UnknownRole(t *testing.T) {
	ps := &stubPlayerService{}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, "/players/new", url.Values{"name": {"Virat"}, "role": {"batsman"}, "team": {"India"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please choose one of the listed roles.")
	assert.Empty(t, ps.added.name, "service must not be called")
}

func TestUI_AddPlayer_StorageUnavailable(t *testing.T) {
	ps := &stubPlayerService{addErr: repository.Unavailable("insert player", errors.New("locked"))}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, "/players/new", url.Values{"name": {"Virat"}, "role": {"Batsman"}, "team": {"India"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "could not be reached")
}

func TestUI_ViewPlayers_Filter(t *testing.T) {
	ps := &stubPlayerService{players: []model.Player{{ID: 3, Name: "Bumrah", Role: model.RoleBowler, Team: "India", Wickets: 2}}}
	r := newEngine(stubPinger{}, ps, nil)

	w := get(r, "/players?team=India")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ps.team)
	assert.Equal(t, "India", *ps.team)
	assert.Contains(t, w.Body.String(), "Bumrah")

	_ = get(r, "/players?team=")
	assert.Nil(t, ps.team)
}

func TestUI_RecordPerformance(t *testing.T) {
	ps := &stubPlayerService{matched: true}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, handler.PerformancePath, url.Values{"player_id": {"4"}, "runs": {"30"}, "wickets": {"1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.Performance{PlayerID: 4, Runs: 30, Wickets: 1}, ps.perf)
	assert.Contains(t, w.Body.String(), "Performance recorded for player 4.")
}

func TestUI_RecordPerformance_UnknownPlayerWarns(t *testing.T) {
	ps := &stubPlayerService{matched: false}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, handler.PerformancePath, url.Values{"player_id": {"99"}, "runs": {"5"}, "wickets": {"0"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No player with id 99, nothing was updated.")
}

func TestUI_RecordPerformance_NotANumber(t *testing.T) {
	ps := &stubPlayerService{}
	r := newEngine(stubPinger{}, ps, nil)

	w := postForm(r, handler.PerformancePath, url.Values{"player_id": {"x"}, "runs": {"5"}, "wickets": {"0"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, ps.perf.PlayerID)
}

func TestUI_AddMatch(t *testing.T) {
	ms := &stubMatchService{}
	r := newEngine(stubPinger{}, nil, ms)

	w := postForm(r, "/matches/new", url.Values{"team1": {"A"}, "team2": {"B"}, "winner": {"Z"}, "venue": {""}, "date": {"2024-03-09"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Match added successfully!")
	assert.Equal(t, "Z", ms.added.Winner, "winner is free text")
	assert.Equal(t, "2024-03-09", ms.added.Date)
}

func TestUI_AddMatch_MissingFields(t *testing.T) {
	ms := &stubMatchService{}
	r := newEngine(stubPinger{}, nil, ms)

	w := postForm(r, "/matches/new", url.Values{"team1": {"A"}, "team2": {"B"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill all required fields.")
	assert.Empty(t, ms.added.Team1)
}

func TestUI_TeamStats_NoPlayers(t *testing.T) {
	r := newEngine(stubPinger{}, &stubPlayerService{}, nil)

	w := get(r, "/teams?team=Nowhere")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No players found for team Nowhere.")
}

func TestUI_TeamStats_ListsPlayers(t *testing.T) {
	ps := &stubPlayerService{players: []model.Player{{ID: 1, Name: "Root", Team: "England", Runs: 120}}}
	r := newEngine(stubPinger{}, ps, nil)

	w := get(r, "/teams?team=England")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Players of England")
	assert.Contains(t, w.Body.String(), "Root")
}

func TestUI_Leaderboards(t *testing.T) {
	ps := &stubPlayerService{boards: model.Leaderboards{
		TopScorers:      []model.ScorerEntry{{Name: "Smith", Team: "Australia", Runs: 88}},
		TopWicketTakers: []model.WicketTakerEntry{{Name: "Starc", Team: "Australia", Wickets: 5}},
	}}
	r := newEngine(stubPinger{}, ps, nil)

	w := get(r, "/leaderboards")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Top 5 Run Scorers")
	assert.Contains(t, body, "Smith")
	assert.Contains(t, body, "Starc")
}
