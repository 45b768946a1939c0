package service_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/internal/service"
)

func TestPlayerService_AddPlayer_Validation(t *testing.T) {
	logger := zerolog.New(io.Discard)
	cases := []struct {
		name       string
		pName      string
		role       model.Role
		team       string
		wantErr    bool
		wantFields []string
	}{
		{"missing name", "", model.RoleBatsman, "India", true, []string{"name"}},
		{"blank team", "Kohli", model.RoleBatsman, "   ", true, []string{"team"}},
		{"both missing", "", model.RoleBowler, "", true, []string{"name", "team"}},
		{"unknown role", "Kohli", model.Role("Captain"), "India", true, []string{"role"}},
		{"role is case sensitive", "Kohli", model.Role("batsman"), "India", true, []string{"role"}},
		{"ok", "Kohli", model.RoleBatsman, "India", false, nil},
		{"ok all-rounder", "Jadeja", model.RoleAllRounder, "India", false, nil},
		{"ok keeper", "Pant", model.RoleWicketKeeper, "India", false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewPlayerService(newFakePlayerRepo(), logger)
			_, err := svc.AddPlayer(context.Background(), tc.pName, tc.role, tc.team)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			for _, f := range tc.wantFields {
				assert.True(t, hasField(err, f), "field %s not reported in %v", f, service.FieldErrors(err))
			}
		})
	}
}

func TestPlayerService_AddPlayer_TrimsAndZeroesCounters(t *testing.T) {
	repo := newFakePlayerRepo()
	svc := service.NewPlayerService(repo, zerolog.New(io.Discard))

	p, err := svc.AddPlayer(context.Background(), "  Joe Root ", model.RoleBatsman, " England ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Joe Root", p.Name)
	assert.Equal(t, "England", p.Team)
	assert.Zero(t, p.Runs)
	assert.Zero(t, p.Wickets)
	assert.Zero(t, p.Matches)
}

func TestPlayerService_AddPlayer_StorageUnavailablePassesThrough(t *testing.T) {
	repo := newFakePlayerRepo()
	repo.err = errStoreDown
	svc := service.NewPlayerService(repo, zerolog.New(io.Discard))

	_, err := svc.AddPlayer(context.Background(), "Root", model.RoleBatsman, "ENG")
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestPlayerService_RecordPerformance(t *testing.T) {
	repo := newFakePlayerRepo()
	svc := service.NewPlayerService(repo, zerolog.New(io.Discard))
	ctx := context.Background()
	p, err := svc.AddPlayer(ctx, "Stokes", model.RoleAllRounder, "ENG")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		matched, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: 5, Wickets: 1})
		require.NoError(t, err)
		assert.True(t, matched)
	}
	list, err := svc.ListPlayers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].Runs)
	assert.Equal(t, 2, list[0].Wickets)
	assert.Equal(t, 2, list[0].Matches)

	t.Run("unknown id is tolerated", func(t *testing.T) {
		matched, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: 999, Runs: 1})
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("negative deltas rejected", func(t *testing.T) {
		_, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: -1, Wickets: -2})
		require.ErrorIs(t, err, service.ErrInvalidInput)
		assert.True(t, hasField(err, "runs"))
		assert.True(t, hasField(err, "wickets"))
	})

	t.Run("deltas above one match rejected", func(t *testing.T) {
		_, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: math.MaxInt64, Wickets: 21})
		require.ErrorIs(t, err, service.ErrInvalidInput)
		assert.True(t, hasField(err, "runs"))
		assert.True(t, hasField(err, "wickets"))

		matched, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: p.ID, Runs: 1000, Wickets: 20})
		require.NoError(t, err)
		assert.True(t, matched, "the per-match ceiling itself is accepted")
	})

	t.Run("non-positive id rejected", func(t *testing.T) {
		_, err := svc.RecordPerformance(ctx, model.Performance{PlayerID: 0})
		require.ErrorIs(t, err, service.ErrInvalidInput)
		assert.True(t, hasField(err, "player_id"))
	})
}

func TestPlayerService_TeamPlayers(t *testing.T) {
	repo := newFakePlayerRepo()
	svc := service.NewPlayerService(repo, zerolog.New(io.Discard))
	ctx := context.Background()
	_, err := svc.AddPlayer(ctx, "Babar", model.RoleBatsman, "Pakistan")
	require.NoError(t, err)
	_, err = svc.AddPlayer(ctx, "Shaheen", model.RoleBowler, "Pakistan")
	require.NoError(t, err)
	_, err = svc.AddPlayer(ctx, "Head", model.RoleBatsman, "Australia")
	require.NoError(t, err)

	got, err := svc.TeamPlayers(ctx, "Pakistan")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.TeamPlayers(ctx, "Nepal")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.TeamPlayers(ctx, " ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestPlayerService_Leaderboards(t *testing.T) {
	repo := newFakePlayerRepo()
	svc := service.NewPlayerService(repo, zerolog.New(io.Discard))

	boards, err := svc.Leaderboards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.LeaderboardSize, repo.lastTop)
	require.Len(t, boards.TopScorers, 1)
	require.Len(t, boards.TopWicketTakers, 1)
	assert.Equal(t, 10, boards.TopScorers[0].Runs)
	assert.Equal(t, 3, boards.TopWicketTakers[0].Wickets)

	repo.err = errStoreDown
	_, err = svc.Leaderboards(context.Background())
	assert.True(t, errors.Is(err, repository.ErrStorageUnavailable))
}
