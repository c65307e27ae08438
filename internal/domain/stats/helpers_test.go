package stats

import (
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func ref(id int64, name, tla string) team.Ref {
	return team.Ref{ID: id, Name: name, ShortName: name, TLA: tla}
}

func finished(id int64, date string, home, away team.Ref, homeGoals, awayGoals int) match.Record {
	h, a := home, away
	return match.Record{
		ID:       id,
		UTCDate:  date,
		Status:   match.StatusFinished,
		HomeTeam: &h,
		AwayTeam: &a,
		Score:    &match.Score{FullTime: &match.Line{Home: intPtr(homeGoals), Away: intPtr(awayGoals)}},
	}
}

func scheduled(id int64, date string, home, away team.Ref) match.Record {
	h, a := home, away
	return match.Record{
		ID:       id,
		UTCDate:  date,
		Status:   match.StatusScheduled,
		HomeTeam: &h,
		AwayTeam: &a,
		Score:    &match.Score{FullTime: &match.Line{}},
	}
}
