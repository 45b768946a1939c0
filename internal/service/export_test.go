package service

import (
	"time"

	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

// NewMatchServiceAt pins the clock used for defaulting match dates.
func NewMatchServiceAt(matches repository.MatchRepository, logger zerolog.Logger, now func() time.Time) MatchService {
	s := NewMatchService(matches, logger).(*matchService)
	s.now = now
	return s
}
