package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

func TestWarmupService_RunPrefetchesCatalog(t *testing.T) {
	t.Parallel()

	_, m := newCompetitionServiceWithMocks(t)
	service := NewWarmupService(m.competitions, m.teams, m.standings, m.scorers, m.matches, 3, logging.NewNop())

	m.competitions.On("List", anyContext()).Return([]competition.Competition{
		premierLeague,
		{Code: "SA", Name: "Serie A", Type: competition.TypeLeague},
	}, nil).Once()
	m.teams.On("ListByCompetition", anyContext(), mock.AnythingOfType("string")).Return([]team.Team{{Ref: arsenal}}, nil).Twice()
	m.standings.On("ListByCompetition", anyContext(), mock.AnythingOfType("string")).Return([]standing.Table{{Type: "TOTAL"}}, nil).Twice()
	m.scorers.On("ListByCompetition", anyContext(), mock.AnythingOfType("string"), maxLeaderboardLimit).Return([]scorer.Scorer{}, nil).Twice()
	m.matches.On("ListByCompetition", anyContext(), "PL", match.Filter{}).Return([]match.Record{{ID: 1}, {ID: 2}}, nil).Once()
	m.matches.On("ListByCompetition", anyContext(), "SA", match.Filter{}).Return(nil, ErrDependencyUnavailable).Once()

	got, err := service.Run(context.Background(), WarmupInput{MaxWorkers: 10})
	if err != nil {
		t.Fatalf("run warmup: %v", err)
	}
	if got.CompetitionCount != 2 || got.TaskCount != 8 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.WorkerCount != 3 {
		t.Fatalf("expected worker count capped at configured max, got %d", got.WorkerCount)
	}
	if got.SuccessCount != 7 || got.FailedCount != 1 {
		t.Fatalf("unexpected outcome: success=%d failed=%d", got.SuccessCount, got.FailedCount)
	}
	if got.Tasks[0].Competition != "PL" || got.Tasks[0].Kind != warmupKindMatches || got.Tasks[0].Records != 2 {
		t.Fatalf("expected tasks sorted by competition and kind, got %+v", got.Tasks[0])
	}
}

func TestWarmupService_RunRejectsUnknownCompetition(t *testing.T) {
	t.Parallel()

	_, m := newCompetitionServiceWithMocks(t)
	service := NewWarmupService(m.competitions, m.teams, m.standings, m.scorers, m.matches, 2, logging.NewNop())
	m.competitions.On("GetByCode", anyContext(), "XX").Return(competition.Competition{}, false, nil).Once()

	_, err := service.Run(context.Background(), WarmupInput{CompetitionCodes: []string{"xx"}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

var errPoolFull = errors.New("pool full")

// limitedPool accepts a fixed number of tasks and rejects the rest.
type limitedPool struct {
	accept int
}

func (p *limitedPool) Submit(task func()) error {
	if p.accept == 0 {
		return errPoolFull
	}
	p.accept--
	go task()
	return nil
}

func (p *limitedPool) Release() {}

func TestWarmupService_RunWaitsForSubmittedTasksOnSubmitFailure(t *testing.T) {
	t.Parallel()

	_, m := newCompetitionServiceWithMocks(t)
	service := NewWarmupService(m.competitions, m.teams, m.standings, m.scorers, m.matches, 4, logging.NewNop())
	service.newPool = func(int) (taskPool, error) { return &limitedPool{accept: 2}, nil }

	m.competitions.On("GetByCode", anyContext(), "PL").Return(premierLeague, true, nil).Once()
	m.teams.On("ListByCompetition", anyContext(), "PL").Return([]team.Team{{Ref: arsenal}, {Ref: chelsea}}, nil).Once()
	m.standings.On("ListByCompetition", anyContext(), "PL").Return([]standing.Table{{Type: "TOTAL"}}, nil).Once()

	got, err := service.Run(context.Background(), WarmupInput{CompetitionCodes: []string{"PL"}})
	if !errors.Is(err, errPoolFull) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if len(got.Tasks) != 2 || got.SuccessCount != 2 {
		t.Fatalf("expected submitted tasks to be collected, got %+v", got)
	}
	if got.Tasks[0].Kind != warmupKindStandings || got.Tasks[1].Kind != warmupKindTeams || got.Tasks[1].Records != 2 {
		t.Fatalf("unexpected task rows: %+v", got.Tasks)
	}
}
