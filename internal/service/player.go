package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, log: l}
}

type addPlayerInput struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=Batsman Bowler All-rounder Wicket-keeper"`
	Team string `json:"team" validate:"required"`
}

func (s *playerService) AddPlayer(ctx context.Context, name string, role model.Role, team string) (model.Player, error) {
	start := time.Now()
	// Normalize early so validation and persistence see canonical values.
	in := addPlayerInput{
		Name: strings.TrimSpace(name),
		Role: strings.TrimSpace(string(role)),
		Team: strings.TrimSpace(team),
	}
	if err := validateStruct(in); err != nil {
		s.log.Debug().Str("name_raw", name).Str("role_raw", string(role)).Str("team_raw", team).Msg("player validation failed")
		return model.Player{}, err
	}

	out, err := s.players.Create(ctx, model.Player{Name: in.Name, Role: model.Role(in.Role), Team: in.Team})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Str("team", in.Team).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player created")
	return out, nil
}

type performanceInput struct {
	PlayerID int64 `json:"player_id" validate:"gt=0"`
	Runs     int   `json:"runs" validate:"gte=0,lte=1000"`
	Wickets  int   `json:"wickets" validate:"gte=0,lte=20"`
}

// RecordPerformance keeps counters monotonic by refusing negative deltas.
// One match caps the deltas at 1000 runs and 20 wickets (two innings of ten).
// An unknown player id is tolerated: nothing changes and matched comes back false.
func (s *playerService) RecordPerformance(ctx context.Context, perf model.Performance) (bool, error) {
	if err := validateStruct(performanceInput(perf)); err != nil {
		return false, err
	}
	matched, err := s.players.RecordPerformance(ctx, perf)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", perf.PlayerID).Msg("record performance failed")
		return false, err
	}
	if !matched {
		s.log.Warn().Int64("player_id", perf.PlayerID).Msg("performance recorded for unknown player; no rows changed")
		return false, nil
	}
	s.log.Info().Int64("player_id", perf.PlayerID).Int("runs", perf.Runs).Int("wickets", perf.Wickets).Msg("performance recorded")
	return true, nil
}

func (s *playerService) ListPlayers(ctx context.Context, team *string) ([]model.Player, error) {
	res, err := s.players.List(ctx, team)
	if err != nil {
		ev := s.log.Error().Err(err)
		if team != nil {
			ev = ev.Str("team", *team)
		}
		ev.Msg("list players failed")
		return nil, err
	}
	return res, nil
}

func (s *playerService) TeamPlayers(ctx context.Context, team string) ([]model.Player, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return nil, NewInvalidInputError([]FieldError{{Field: "team", Message: "must not be empty"}})
	}
	return s.ListPlayers(ctx, &team)
}

func (s *playerService) TopScorers(ctx context.Context) ([]model.ScorerEntry, error) {
	res, err := s.players.TopScorers(ctx, repository.LeaderboardSize)
	if err != nil {
		s.log.Error().Err(err).Msg("top scorers failed")
		return nil, err
	}
	return res, nil
}

func (s *playerService) TopWicketTakers(ctx context.Context) ([]model.WicketTakerEntry, error) {
	res, err := s.players.TopWicketTakers(ctx, repository.LeaderboardSize)
	if err != nil {
		s.log.Error().Err(err).Msg("top wicket takers failed")
		return nil, err
	}
	return res, nil
}

func (s *playerService) Leaderboards(ctx context.Context) (model.Leaderboards, error) {
	scorers, err := s.TopScorers(ctx)
	if err != nil {
		return model.Leaderboards{}, err
	}
	takers, err := s.TopWicketTakers(ctx)
	if err != nil {
		return model.Leaderboards{}, err
	}
	return model.Leaderboards{TopScorers: scorers, TopWicketTakers: takers}, nil
}
