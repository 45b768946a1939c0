package repository

import (
	"fmt"
	"math"

	"github.com/maxviazov/cricket-stats-service/internal/model"
)

// SanitizeLimit clamps a leaderboard limit into (0, LeaderboardSize].
// Callers never get more than the leaderboard size, whatever they ask for.
func SanitizeLimit(limit int) int {
	if limit <= 0 || limit > LeaderboardSize {
		return LeaderboardSize
	}
	return limit
}

// MaxPerformanceDelta is the largest runs or wickets delta a repository accepts.
// It keeps every update inside a 32-bit column and far from the 64-bit SQLite integer limit.
const MaxPerformanceDelta = math.MaxInt32

// CheckPerformance rejects deltas that would shrink a counter or overflow it.
func CheckPerformance(perf model.Performance) error {
	if perf.Runs < 0 || perf.Runs > MaxPerformanceDelta || perf.Wickets < 0 || perf.Wickets > MaxPerformanceDelta {
		return fmt.Errorf("runs=%d wickets=%d: %w", perf.Runs, perf.Wickets, ErrOutOfRange)
	}
	return nil
}
