package repository

import (
	"context"

	"github.com/maxviazov/cricket-stats-service/internal/model"
)

// LeaderboardSize is how many rows the top scorers and top wicket takers queries return at most.
const LeaderboardSize = 5

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchemaInitializer makes sure the players and matches tables exist.
// Init must be safe to call on every process start; existing rows are left alone.
type SchemaInitializer interface {
	Init(ctx context.Context) error
}

// PlayerRepository declares persistence operations for players.
// Every call runs exactly one statement on a connection it acquires and releases itself.
type PlayerRepository interface {
	// Create inserts a player with zeroed counters and returns the stored row.
	Create(ctx context.Context, p model.Player) (model.Player, error)
	// RecordPerformance adds the deltas to runs and wickets and bumps matches by one.
	// matched is false when no player has that id; that is not an error.
	RecordPerformance(ctx context.Context, perf model.Performance) (matched bool, err error)
	// List returns all players in insertion order, or only those whose team equals *team exactly.
	List(ctx context.Context, team *string) ([]model.Player, error)
	TopScorers(ctx context.Context, limit int) ([]model.ScorerEntry, error)
	TopWicketTakers(ctx context.Context, limit int) ([]model.WicketTakerEntry, error)
}

// MatchRepository declares persistence operations for matches.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	List(ctx context.Context) ([]model.Match, error)
}
