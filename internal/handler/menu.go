package handler

// MenuChoice is one entry of the UI sidebar. The set is fixed.
type MenuChoice int

const (
	MenuAddPlayer MenuChoice = iota
	MenuViewPlayers
	MenuAddMatch
	MenuViewMatches
	MenuLeaderboards
	MenuTeamStats
)

// MenuChoices lists the sidebar in display order.
var MenuChoices = []MenuChoice{
	MenuAddPlayer,
	MenuViewPlayers,
	MenuAddMatch,
	MenuViewMatches,
	MenuLeaderboards,
	MenuTeamStats,
}

var menuMeta = map[MenuChoice]struct {
	title, path, page string
}{
	MenuAddPlayer:    {"Add Player", "/players/new", "add_player.html"},
	MenuViewPlayers:  {"View Players", "/players", "view_players.html"},
	MenuAddMatch:     {"Add Match", "/matches/new", "add_match.html"},
	MenuViewMatches:  {"View Matches", "/matches", "view_matches.html"},
	MenuLeaderboards: {"Leaderboards", "/leaderboards", "leaderboards.html"},
	MenuTeamStats:    {"Team Stats", "/teams", "team_stats.html"},
}

func (m MenuChoice) Title() string { return menuMeta[m].title }

// Path is the UI route serving the choice.
func (m MenuChoice) Path() string { return menuMeta[m].path }

func (m MenuChoice) page() string { return menuMeta[m].page }

func (m MenuChoice) String() string { return m.Title() }

// ParseMenuChoice resolves a sidebar title back to its choice.
func ParseMenuChoice(title string) (MenuChoice, bool) {
	for _, m := range MenuChoices {
		if m.Title() == title {
			return m, true
		}
	}
	return 0, false
}
