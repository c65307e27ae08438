package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

var (
	arsenal   = team.Ref{ID: 57, Name: "Arsenal FC", ShortName: "Arsenal", TLA: "ARS"}
	chelsea   = team.Ref{ID: 61, Name: "Chelsea FC", ShortName: "Chelsea", TLA: "CHE"}
	liverpool = team.Ref{ID: 64, Name: "Liverpool FC", ShortName: "Liverpool", TLA: "LIV"}
	everton   = team.Ref{ID: 62, Name: "Everton FC", ShortName: "Everton", TLA: "EVE"}
)

func goals(v int) *int { return &v }

func finishedMatch(id int64, date string, home, away team.Ref, homeGoals, awayGoals int) match.Record {
	h, a := home, away
	return match.Record{
		ID:       id,
		UTCDate:  date,
		Status:   match.StatusFinished,
		HomeTeam: &h,
		AwayTeam: &a,
		Score:    &match.Score{FullTime: &match.Line{Home: goals(homeGoals), Away: goals(awayGoals)}},
	}
}

func scheduledMatch(id int64, date string, home, away team.Ref) match.Record {
	h, a := home, away
	return match.Record{
		ID:       id,
		UTCDate:  date,
		Status:   match.StatusTimed,
		HomeTeam: &h,
		AwayTeam: &a,
		Score:    &match.Score{FullTime: &match.Line{}},
	}
}

func anyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

// resident reports how many session stores are held in memory.
func (s *SessionService) resident() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

func waitForRefs(t *testing.T, s *SessionService, sessionID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		entry, ok := s.stores[sessionID]
		got := 0
		if ok {
			got = entry.refs
		}
		s.mu.Unlock()
		if got == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session %s never reached %d refs", sessionID, want)
}
