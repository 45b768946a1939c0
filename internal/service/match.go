package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type matchService struct {
	matches repository.MatchRepository
	now     func() time.Time
	log     zerolog.Logger
}

func NewMatchService(matches repository.MatchRepository, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{matches: matches, now: time.Now, log: l}
}

type addMatchInput struct {
	Team1  string `json:"team1" validate:"required"`
	Team2  string `json:"team2" validate:"required"`
	Winner string `json:"winner" validate:"required"`
	Venue  string `json:"venue"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// AddMatch checks presence only. The winner is deliberately not compared with
// the two teams. A missing date means today.
func (s *matchService) AddMatch(ctx context.Context, m model.Match) (model.Match, error) {
	start := time.Now()
	in := addMatchInput{
		Team1:  strings.TrimSpace(m.Team1),
		Team2:  strings.TrimSpace(m.Team2),
		Winner: strings.TrimSpace(m.Winner),
		Venue:  strings.TrimSpace(m.Venue),
		Date:   strings.TrimSpace(m.Date),
	}
	if err := validateStruct(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("match validation failed")
		return model.Match{}, err
	}
	if in.Date == "" {
		in.Date = s.now().UTC().Format(DateLayout)
	}

	out, err := s.matches.Create(ctx, model.Match{
		Team1:  in.Team1,
		Team2:  in.Team2,
		Winner: in.Winner,
		Venue:  in.Venue,
		Date:   in.Date,
	})
	if err != nil {
		s.log.Error().Err(err).Str("team1", in.Team1).Str("team2", in.Team2).Msg("create match failed")
		return model.Match{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("match_id", out.ID).Msg("match created")
	return out, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]model.Match, error) {
	res, err := s.matches.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list matches failed")
		return nil, err
	}
	return res, nil
}
