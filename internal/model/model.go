// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

// Role is the fixed set of playing roles a player can be registered with.
type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-rounder"
	RoleWicketKeeper Role = "Wicket-keeper"
)

// Roles lists every role in the order the add-player form offers them.
var Roles = []Role{RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper}

// Valid reports whether r is one of the known roles. Matching is exact.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Player is a registered cricketer with career counters.
// Runs, Wickets and Matches only ever grow, via a recorded performance.
type Player struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Team    string `json:"team"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Matches int    `json:"matches"`
}

// Match is a finished fixture. Winner is free text and is not checked against Team1/Team2.
type Match struct {
	ID     int64  `json:"id"`
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Winner string `json:"winner"`
	Venue  string `json:"venue"`
	Date   string `json:"date"`
}

// Performance is the delta applied to a player after one match.
type Performance struct {
	PlayerID int64 `json:"player_id"`
	Runs     int   `json:"runs"`
	Wickets  int   `json:"wickets"`
}

// ScorerEntry is one row of the run scorers leaderboard.
type ScorerEntry struct {
	Name string `json:"name"`
	Team string `json:"team"`
	Runs int    `json:"runs"`
}

// WicketTakerEntry is one row of the wicket takers leaderboard.
type WicketTakerEntry struct {
	Name    string `json:"name"`
	Team    string `json:"team"`
	Wickets int    `json:"wickets"`
}

// Leaderboards is a read-only summary of the top performers.
type Leaderboards struct {
	TopScorers      []ScorerEntry      `json:"top_scorers"`
	TopWicketTakers []WicketTakerEntry `json:"top_wicket_takers"`
}
