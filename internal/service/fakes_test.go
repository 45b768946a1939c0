package service_test

import (
	"context"
	"errors"

	"github.com/maxviazov/cricket-stats-service/internal/model"
	"github.com/maxviazov/cricket-stats-service/internal/repository"
	"github.com/maxviazov/cricket-stats-service/internal/service"
)

// errStoreDown mimics what repositories return when the store file is unreachable.
var errStoreDown = errors.Join(repository.ErrStorageUnavailable, errors.New("disk I/O error"))

type fakePlayerRepo struct {
	nextID  int64
	players []model.Player
	err     error
	lastTop int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1}
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	if f.err != nil {
		return model.Player{}, f.err
	}
	p.ID = f.nextID
	f.nextID++
	f.players = append(f.players, p)
	return p, nil
}

func (f *fakePlayerRepo) RecordPerformance(_ context.Context, perf model.Performance) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := range f.players {
		if f.players[i].ID == perf.PlayerID {
			f.players[i].Runs += perf.Runs
			f.players[i].Wickets += perf.Wickets
			f.players[i].Matches++
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlayerRepo) List(_ context.Context, team *string) ([]model.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	var res []model.Player
	for _, p := range f.players {
		if team == nil || p.Team == *team {
			res = append(res, p)
		}
	}
	return res, nil
}

func (f *fakePlayerRepo) TopScorers(_ context.Context, limit int) ([]model.ScorerEntry, error) {
	f.lastTop = limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.ScorerEntry{{Name: "A", Team: "T", Runs: 10}}, nil
}

func (f *fakePlayerRepo) TopWicketTakers(_ context.Context, limit int) ([]model.WicketTakerEntry, error) {
	f.lastTop = limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.WicketTakerEntry{{Name: "B", Team: "T", Wickets: 3}}, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

type fakeMatchRepo struct {
	nextID  int64
	matches []model.Match
	err     error
}

func (f *fakeMatchRepo) Create(_ context.Context, m model.Match) (model.Match, error) {
	if f.err != nil {
		return model.Match{}, f.err
	}
	f.nextID++
	m.ID = f.nextID
	f.matches = append(f.matches, m)
	return m, nil
}

func (f *fakeMatchRepo) List(_ context.Context) ([]model.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}
