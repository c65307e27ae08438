package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	matchmock "github.com/riskibarqy/matchcentre/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/matchcentre/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/matchcentre/internal/platform/cache"
)

func TestMatchRepository_CachesByFilter(t *testing.T) {
	t.Parallel()

	next := matchmock.NewRepository(t)
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	finished := match.Filter{Status: match.StatusFinished}
	next.On("ListByCompetition", mock.Anything, "PL", finished).
		Return([]match.Record{{ID: 1}}, nil).Once()
	next.On("ListByCompetition", mock.Anything, "PL", match.Filter{}).
		Return([]match.Record{{ID: 2}, {ID: 3}}, nil).Once()

	for range 2 {
		got, err := repo.ListByCompetition(ctx, "PL", finished)
		if err != nil || len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("unexpected finished matches: %+v err=%v", got, err)
		}
	}

	got, err := repo.ListByCompetition(ctx, "PL", match.Filter{})
	if err != nil || len(got) != 2 {
		t.Fatalf("expected unfiltered call to miss the cache, got %+v err=%v", got, err)
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	next := matchmock.NewRepository(t)
	repo := NewMatchRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	next.On("ListByTeam", mock.Anything, int64(57), match.Filter{}).
		Return([]match.Record{{ID: 10}}, nil).Once()

	first, err := repo.ListByTeam(ctx, 57, match.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first[0].ID = 99

	second, err := repo.ListByTeam(ctx, 57, match.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if second[0].ID != 10 {
		t.Fatalf("cached slice was mutated through a previous result: %+v", second)
	}
}

func TestTeamRepository_CachesMissesAndSkipsErrors(t *testing.T) {
	t.Parallel()

	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	next.On("GetByID", mock.Anything, int64(404)).Return(team.Team{}, false, nil).Once()
	for range 2 {
		_, exists, err := repo.GetByID(ctx, 404)
		if err != nil || exists {
			t.Fatalf("expected cached miss, got exists=%v err=%v", exists, err)
		}
	}

	upstreamErr := errors.New("upstream down")
	next.On("GetByID", mock.Anything, int64(57)).Return(team.Team{}, false, upstreamErr).Once()
	next.On("GetByID", mock.Anything, int64(57)).Return(team.Team{Ref: team.Ref{ID: 57}}, true, nil).Once()

	if _, _, err := repo.GetByID(ctx, 57); !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	item, exists, err := repo.GetByID(ctx, 57)
	if err != nil || !exists || item.ID != 57 {
		t.Fatalf("expected retry after error, got %+v exists=%v err=%v", item, exists, err)
	}
}
