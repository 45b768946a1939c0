// Package contract holds behaviour suites every storage backend must pass.
// Backends wire them from their own _test.go files with a factory that hands out a fresh store.
package contract

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
)

// Stores is everything a backend exposes, already pointed at an initialized, empty schema.
type Stores struct {
	Schema  repository.SchemaInitializer
	Players repository.PlayerRepository
	Matches repository.MatchRepository
	Pinger  repository.Pinger
}

// StoresFactory returns fresh stores and a cleanup func.
type StoresFactory func(t *testing.T) (Stores, func())

func RunSchemaContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("init_twice_keeps_rows", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := s.Players.Create(ctx, model.Player{Name: "Root", Role: model.RoleBatsman, Team: "ENG"}); err != nil {
			t.Fatalf("seed player: %v", err)
		}
		if _, err := s.Matches.Create(ctx, model.Match{Team1: "ENG", Team2: "AUS", Winner: "ENG"}); err != nil {
			t.Fatalf("seed match: %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := s.Schema.Init(ctx); err != nil {
				t.Fatalf("init #%d: %v", i+1, err)
			}
		}
		players, err := s.Players.List(ctx, nil)
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		matches, err := s.Matches.List(ctx)
		if err != nil {
			t.Fatalf("list matches: %v", err)
		}
		if len(players) != 1 || len(matches) != 1 {
			t.Fatalf("rows changed by init: players=%d matches=%d", len(players), len(matches))
		}
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("create_starts_counters_at_zero", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := s.Players.Create(ctx, model.Player{Name: "Virat Kohli", Role: model.RoleBatsman, Team: "India"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID <= 0 {
			t.Fatalf("expected assigned id, got %d", created.ID)
		}
		team := "India"
		list, err := s.Players.List(ctx, &team)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected exactly one player, got %d", len(list))
		}
		got := list[0]
		if got.ID != created.ID || got.Name != "Virat Kohli" || got.Role != model.RoleBatsman || got.Team != "India" {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.Runs != 0 || got.Wickets != 0 || got.Matches != 0 {
			t.Fatalf("expected zero counters, got %+v", got)
		}
	})

	t.Run("duplicate_names_are_distinct_rows", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, err := s.Players.Create(ctx, model.Player{Name: "Smith", Role: model.RoleBatsman, Team: "AUS"})
		if err != nil {
			t.Fatalf("create a: %v", err)
		}
		b, err := s.Players.Create(ctx, model.Player{Name: "Smith", Role: model.RoleBatsman, Team: "AUS"})
		if err != nil {
			t.Fatalf("create b: %v", err)
		}
		if a.ID == b.ID {
			t.Fatalf("expected distinct ids, both %d", a.ID)
		}
	})

	t.Run("record_performance_accumulates", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p, err := s.Players.Create(ctx, model.Player{Name: "Stokes", Role: model.RoleAllRounder, Team: "ENG"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		for i := 0; i < 2; i++ {
			matched, err := s.Players.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: 5, Wickets: 1})
			if err != nil {
				t.Fatalf("record #%d: %v", i+1, err)
			}
			if !matched {
				t.Fatalf("record #%d: expected a matched row", i+1)
			}
		}
		list, err := s.Players.List(ctx, nil)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		got := list[0]
		if got.Runs != 10 || got.Wickets != 2 || got.Matches != 2 {
			t.Fatalf("expected runs=10 wickets=2 matches=2, got %+v", got)
		}
	})

	t.Run("record_performance_unknown_id_is_noop", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p, err := s.Players.Create(ctx, model.Player{Name: "Rashid", Role: model.RoleBowler, Team: "AFG"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		matched, err := s.Players.RecordPerformance(ctx, model.Performance{PlayerID: p.ID + 1000, Runs: 50, Wickets: 3})
		if err != nil {
			t.Fatalf("expected no error for unknown id, got %v", err)
		}
		if matched {
			t.Fatalf("expected matched=false for unknown id")
		}
		list, err := s.Players.List(ctx, nil)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || list[0].Runs != 0 || list[0].Wickets != 0 || list[0].Matches != 0 {
			t.Fatalf("rows changed: %+v", list)
		}
	})

	t.Run("record_performance_rejects_out_of_range_deltas", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p, err := s.Players.Create(ctx, model.Player{Name: "Gayle", Role: model.RoleBatsman, Team: "WI"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		bad := []model.Performance{
			{PlayerID: p.ID, Runs: math.MaxInt64},
			{PlayerID: p.ID, Wickets: repository.MaxPerformanceDelta + 1},
			{PlayerID: p.ID, Runs: -1},
		}
		for i, perf := range bad {
			for attempt := 0; attempt < 2; attempt++ {
				_, err := s.Players.RecordPerformance(ctx, perf)
				if !errors.Is(err, repository.ErrOutOfRange) {
					t.Fatalf("case %d attempt %d: expected ErrOutOfRange, got %v", i, attempt, err)
				}
			}
		}
		// The row must stay readable and untouched.
		list, err := s.Players.List(ctx, nil)
		if err != nil {
			t.Fatalf("list after rejected deltas: %v", err)
		}
		if len(list) != 1 || list[0].Runs != 0 || list[0].Wickets != 0 || list[0].Matches != 0 {
			t.Fatalf("rows changed: %+v", list)
		}
		if _, err := s.Players.TopScorers(ctx, repository.LeaderboardSize); err != nil {
			t.Fatalf("top scorers after rejected deltas: %v", err)
		}
	})

	t.Run("list_filter_is_exact_and_a_subset", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := []model.Player{
			{Name: "A", Role: model.RoleBatsman, Team: "India"},
			{Name: "B", Role: model.RoleBowler, Team: "india"},
			{Name: "C", Role: model.RoleWicketKeeper, Team: "India A"},
			{Name: "D", Role: model.RoleAllRounder, Team: "India"},
		}
		for _, p := range seed {
			if _, err := s.Players.Create(ctx, p); err != nil {
				t.Fatalf("seed %s: %v", p.Name, err)
			}
		}
		all, err := s.Players.List(ctx, nil)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		team := "India"
		filtered, err := s.Players.List(ctx, &team)
		if err != nil {
			t.Fatalf("list filtered: %v", err)
		}
		if len(all) != 4 || len(filtered) != 2 {
			t.Fatalf("unexpected sizes: all=%d filtered=%d", len(all), len(filtered))
		}
		var fromAll []model.Player
		for _, p := range all {
			if p.Team == team {
				fromAll = append(fromAll, p)
			}
		}
		if len(fromAll) != len(filtered) {
			t.Fatalf("filtered list differs from all restricted to team")
		}
		for i := range filtered {
			if filtered[i] != fromAll[i] {
				t.Fatalf("row %d differs: %+v vs %+v", i, filtered[i], fromAll[i])
			}
		}
		if all[0].Name != "A" || all[3].Name != "D" {
			t.Fatalf("expected insertion order, got %+v", all)
		}
	})

	t.Run("list_empty_ok", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		team := "Nobody"
		list, err := s.Players.List(context.Background(), &team)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
	})
}

func RunLeaderboardContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	seed := func(t *testing.T, s Stores) {
		t.Helper()
		ctx := context.Background()
		stats := []struct {
			name          string
			runs, wickets int
		}{
			{"P1", 10, 0}, {"P2", 80, 1}, {"P3", 45, 7}, {"P4", 80, 2},
			{"P5", 5, 3}, {"P6", 120, 0}, {"P7", 60, 7},
		}
		for _, st := range stats {
			p, err := s.Players.Create(ctx, model.Player{Name: st.name, Role: model.RoleAllRounder, Team: "XI"})
			if err != nil {
				t.Fatalf("seed %s: %v", st.name, err)
			}
			if _, err := s.Players.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: st.runs, Wickets: st.wickets}); err != nil {
				t.Fatalf("seed stats %s: %v", st.name, err)
			}
		}
	}

	t.Run("top_scorers_sorted_and_bounded", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		seed(t, s)
		top, err := s.Players.TopScorers(context.Background(), repository.LeaderboardSize)
		if err != nil {
			t.Fatalf("top scorers: %v", err)
		}
		if len(top) != 5 {
			t.Fatalf("expected 5 rows, got %d", len(top))
		}
		want := []string{"P6", "P2", "P4", "P7", "P3"}
		for i := range top {
			if i > 0 && top[i].Runs > top[i-1].Runs {
				t.Fatalf("not sorted desc at %d: %+v", i, top)
			}
			if top[i].Name != want[i] {
				t.Fatalf("row %d = %s, want %s (ties by insertion order)", i, top[i].Name, want[i])
			}
		}
	})

	t.Run("top_wicket_takers_sorted_and_bounded", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		seed(t, s)
		top, err := s.Players.TopWicketTakers(context.Background(), repository.LeaderboardSize)
		if err != nil {
			t.Fatalf("top wicket takers: %v", err)
		}
		want := []string{"P3", "P7", "P5", "P4", "P2"}
		if len(top) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(top))
		}
		for i := range top {
			if top[i].Name != want[i] {
				t.Fatalf("row %d = %s, want %s", i, top[i].Name, want[i])
			}
		}
		if top[0].Wickets != 7 || top[0].Team != "XI" {
			t.Fatalf("unexpected leader: %+v", top[0])
		}
	})

	t.Run("oversized_limit_is_capped", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		seed(t, s)
		top, err := s.Players.TopScorers(context.Background(), 100)
		if err != nil {
			t.Fatalf("top scorers: %v", err)
		}
		if len(top) > repository.LeaderboardSize {
			t.Fatalf("expected at most %d rows, got %d", repository.LeaderboardSize, len(top))
		}
	})

	t.Run("empty_store_ok", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		top, err := s.Players.TopScorers(context.Background(), repository.LeaderboardSize)
		if err != nil {
			t.Fatalf("top scorers: %v", err)
		}
		if len(top) != 0 {
			t.Fatalf("expected no rows, got %d", len(top))
		}
	})
}

func RunMatchRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("winner_not_validated", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := s.Matches.Create(ctx, model.Match{Team1: "A", Team2: "B", Winner: "A", Venue: "Lord's", Date: "2025-07-10"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := s.Matches.Create(ctx, model.Match{Team1: "A", Team2: "B", Winner: "Z"}); err != nil {
			t.Fatalf("create with foreign winner: %v", err)
		}
		list, err := s.Matches.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(list))
		}
		if list[0] != created {
			t.Fatalf("first row mismatch: %+v vs %+v", list[0], created)
		}
		if list[0].Winner != "A" || list[1].Winner != "Z" {
			t.Fatalf("unexpected winners: %+v", list)
		}
	})

	t.Run("list_empty_ok", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		list, err := s.Matches.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
	})
}

func RunPingerContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		s, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		if err := s.Pinger.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

// RunAll runs every suite above.
func RunAll(t *testing.T, makeStores StoresFactory) {
	t.Helper()
	t.Run("schema", func(t *testing.T) { RunSchemaContract(t, makeStores) })
	t.Run("players", func(t *testing.T) { RunPlayerRepositoryContract(t, makeStores) })
	t.Run("leaderboards", func(t *testing.T) { RunLeaderboardContract(t, makeStores) })
	t.Run("matches", func(t *testing.T) { RunMatchRepositoryContract(t, makeStores) })
	t.Run("pinger", func(t *testing.T) { RunPingerContract(t, makeStores) })
}
