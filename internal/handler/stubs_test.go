package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/cricket-stats-service/internal/handler"
	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/internal/service"
)

// stubPinger implements repository.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

// stubPlayerService lets each test control outcomes and inspect what reached the service.
type stubPlayerService struct {
	added struct {
		name, team string
		role       model.Role
	}
	addErr    error
	perf      model.Performance
	matched   bool
	perfErr   error
	team      *string
	players   []model.Player
	listErr   error
	boards    model.Leaderboards
	boardsErr error
}

func (s *stubPlayerService) AddPlayer(ctx context.Context, name string, role model.Role, team string) (model.Player, error) {
	s.added.name, s.added.role, s.added.team = name, role, team
	if s.addErr != nil {
		return model.Player{}, s.addErr
	}
	return model.Player{ID: 1, Name: name, Role: role, Team: team}, nil
}

func (s *stubPlayerService) RecordPerformance(ctx context.Context, perf model.Performance) (bool, error) {
	s.perf = perf
	return s.matched, s.perfErr
}

func (s *stubPlayerService) ListPlayers(ctx context.Context, team *string) ([]model.Player, error) {
	s.team = team
	return s.players, s.listErr
}

func (s *stubPlayerService) TeamPlayers(ctx context.Context, team string) ([]model.Player, error) {
	return s.ListPlayers(ctx, &team)
}

func (s *stubPlayerService) TopScorers(ctx context.Context) ([]model.ScorerEntry, error) {
	return s.boards.TopScorers, s.boardsErr
}

func (s *stubPlayerService) TopWicketTakers(ctx context.Context) ([]model.WicketTakerEntry, error) {
	return s.boards.TopWicketTakers, s.boardsErr
}

func (s *stubPlayerService) Leaderboards(ctx context.Context) (model.Leaderboards, error) {
	return s.boards, s.boardsErr
}

type stubMatchService struct {
	added   model.Match
	addErr  error
	matches []model.Match
	listErr error
}

func (s *stubMatchService) AddMatch(ctx context.Context, m model.Match) (model.Match, error) {
	s.added = m
	if s.addErr != nil {
		return model.Match{}, s.addErr
	}
	m.ID = 1
	return m, nil
}

func (s *stubMatchService) ListMatches(ctx context.Context) ([]model.Match, error) {
	return s.matches, s.listErr
}

var (
	_ service.PlayerService = (*stubPlayerService)(nil)
	_ service.MatchService  = (*stubMatchService)(nil)
)

func newEngine(p repository.Pinger, ps *stubPlayerService, ms *stubMatchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if ps == nil {
		ps = &stubPlayerService{}
	}
	if ms == nil {
		ms = &stubMatchService{}
	}
	r := gin.New()
	if err := handler.Register(r, p, ps, ms); err != nil {
		panic(err)
	}
	return r
}
