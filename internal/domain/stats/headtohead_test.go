package stats

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
)

var (
	arsenal     = ref(57, "Arsenal FC", "ARS")
	chelsea     = ref(61, "Chelsea FC", "CHE")
	liverpool   = ref(64, "Liverpool FC", "LIV")
	southampton = ref(340, "Southampton FC", "SOU")
	newcastle   = ref(67, "Newcastle United FC", "NEW")
)

func londonDerbyInput() HeadToHeadInput {
	derby := finished(1, "2024-10-20T16:30:00Z", arsenal, chelsea, 2, 1)
	derby.Score.Winner = match.WinnerHomeTeam

	return HeadToHeadInput{
		HomeTeamID: arsenal.ID,
		AwayTeamID: chelsea.ID,
		HomeHistory: []match.Record{
			derby,
			finished(2, "2024-10-05T14:00:00Z", arsenal, southampton, 3, 0),
			finished(3, "2024-04-23T19:00:00Z", chelsea, arsenal, 0, 5),
			finished(4, "2024-09-28T11:30:00Z", liverpool, arsenal, 1, 1),
			scheduled(5, "2025-03-16T13:30:00Z", arsenal, chelsea),
		},
		AwayHistory: []match.Record{
			derby,
			finished(6, "2023-10-21T16:30:00Z", chelsea, arsenal, 2, 2),
			finished(7, "2024-10-19T14:00:00Z", chelsea, newcastle, 4, 2),
		},
		Now: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHeadToHeadOf_AggregatesMeetings(t *testing.T) {
	t.Parallel()

	got := HeadToHeadOf(londonDerbyInput())

	if got.Played != 3 || got.HomeWins != 2 || got.Draws != 1 || got.AwayWins != 0 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.HomeGoals != 9 || got.AwayGoals != 3 {
		t.Fatalf("unexpected goals: home=%d away=%d", got.HomeGoals, got.AwayGoals)
	}

	ids := make([]int64, 0, len(got.PreviousResults))
	for _, item := range got.PreviousResults {
		ids = append(ids, item.MatchID)
	}
	if !reflect.DeepEqual(ids, []int64{1, 3, 6}) {
		t.Fatalf("unexpected previous results order: %v", ids)
	}
	if got.PreviousResults[1].Winner != match.WinnerAwayTeam || got.PreviousResults[1].HomeTeam != chelsea.Name {
		t.Fatalf("previous results must keep literal orientation: %+v", got.PreviousResults[1])
	}
}

func TestHeadToHeadOf_FormGuide(t *testing.T) {
	t.Parallel()

	got := HeadToHeadOf(londonDerbyInput())

	wantHome := []string{"2-1 v CHE (H)", "3-0 v SOU (H)", "1-1 v LIV (A)", "5-0 v CHE (A)"}
	if !reflect.DeepEqual(got.FormGuide.Home, wantHome) {
		t.Fatalf("unexpected home form: %v", got.FormGuide.Home)
	}
	wantAway := []string{"1-2 v ARS (A)", "4-2 v NEW (H)", "2-2 v ARS (H)"}
	if !reflect.DeepEqual(got.FormGuide.Away, wantAway) {
		t.Fatalf("unexpected away form: %v", got.FormGuide.Away)
	}
}

func TestHeadToHeadOf_SeasonStats(t *testing.T) {
	t.Parallel()

	got := HeadToHeadOf(londonDerbyInput())

	home := got.ThisSeason.Home
	if home.Played != 3 || home.Won != 2 || home.Drawn != 1 || home.Lost != 0 {
		t.Fatalf("unexpected home season: %+v", home)
	}
	if home.AvgScored != 2.0 || home.AvgConceded != 0.7 {
		t.Fatalf("unexpected home averages: %+v", home)
	}

	away := got.ThisSeason.Away
	if away.Played != 2 || away.Won != 1 || away.Lost != 1 || away.Drawn != 0 {
		t.Fatalf("unexpected away season: %+v", away)
	}
	if away.AvgScored != 2.5 || away.AvgConceded != 2.0 {
		t.Fatalf("unexpected away averages: %+v", away)
	}
}

func TestHeadToHeadOf_RemapsOrientation(t *testing.T) {
	t.Parallel()

	in := londonDerbyInput()
	in.HomeTeamID, in.AwayTeamID = in.AwayTeamID, in.HomeTeamID
	in.HomeHistory, in.AwayHistory = in.AwayHistory, in.HomeHistory

	got := HeadToHeadOf(in)
	if got.Played != 3 || got.HomeWins != 0 || got.AwayWins != 2 || got.Draws != 1 {
		t.Fatalf("unexpected swapped counts: %+v", got)
	}
	if got.HomeGoals != 3 || got.AwayGoals != 9 {
		t.Fatalf("unexpected swapped goals: home=%d away=%d", got.HomeGoals, got.AwayGoals)
	}
}

func TestHeadToHeadOf_PrefersWinnerLabel(t *testing.T) {
	t.Parallel()

	shootout := finished(20, "2024-02-25T15:00:00Z", chelsea, liverpool, 0, 0)
	shootout.Score.Winner = match.WinnerAwayTeam
	shootout.Score.Duration = "PENALTY_SHOOTOUT"

	got := HeadToHeadOf(HeadToHeadInput{
		HomeTeamID:  liverpool.ID,
		AwayTeamID:  chelsea.ID,
		HomeHistory: []match.Record{shootout},
	})
	if got.Played != 1 || got.HomeWins != 1 || got.Draws != 0 {
		t.Fatalf("winner label should decide the result: %+v", got)
	}
}

func TestHeadToHeadOf_InvariantsAndDeterminism(t *testing.T) {
	t.Parallel()

	history := make([]match.Record, 0, 12)
	for i := 0; i < 12; i++ {
		home, away := arsenal, chelsea
		if i%2 == 1 {
			home, away = chelsea, arsenal
		}
		if i%3 == 0 {
			away = liverpool
		}
		date := fmt.Sprintf("2024-%02d-%02dT15:00:00Z", 1+i%12, 1+i)
		history = append(history, finished(int64(300+i), date, home, away, i%4, (i+1)%3))
	}
	in := HeadToHeadInput{HomeTeamID: arsenal.ID, AwayTeamID: chelsea.ID, HomeHistory: history, AwayHistory: history}

	first := HeadToHeadOf(in)
	second := HeadToHeadOf(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("head-to-head is not deterministic")
	}
	if first.HomeWins+first.Draws+first.AwayWins != first.Played {
		t.Fatalf("win/draw/loss do not add up: %+v", first)
	}
	limit := first.Played
	if limit > MaxPreviousResults {
		limit = MaxPreviousResults
	}
	if len(first.PreviousResults) > limit {
		t.Fatalf("too many previous results: %d", len(first.PreviousResults))
	}
	if len(first.FormGuide.Home) > MaxFormGuide || len(first.FormGuide.Away) > MaxFormGuide {
		t.Fatalf("form guide too long: %+v", first.FormGuide)
	}
}

func TestHeadToHeadOf_EmptyInputIsZeroFilled(t *testing.T) {
	t.Parallel()

	got := HeadToHeadOf(HeadToHeadInput{HomeTeamID: arsenal.ID, AwayTeamID: chelsea.ID})
	if !reflect.DeepEqual(got, EmptyHeadToHead()) {
		t.Fatalf("expected zero-filled result, got %+v", got)
	}
	if got.PreviousResults == nil || got.FormGuide.Home == nil || got.FormGuide.Away == nil {
		t.Fatalf("collections must be non-nil: %#v", got)
	}

	if missing := HeadToHeadOf(HeadToHeadInput{}); missing.Played != 0 || missing.PreviousResults == nil {
		t.Fatalf("missing team ids must yield zero-filled result: %#v", missing)
	}
}

func TestSeasonStart(t *testing.T) {
	t.Parallel()

	start, ok := SeasonStart(time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC))
	if !ok || start.Year() != 2024 || start.Month() != time.July {
		t.Fatalf("unexpected season start: %v", start)
	}
	start, _ = SeasonStart(time.Date(2024, time.August, 10, 0, 0, 0, 0, time.UTC))
	if start.Year() != 2024 {
		t.Fatalf("unexpected season start: %v", start)
	}
	if _, ok := SeasonStart(time.Time{}); ok {
		t.Fatalf("zero time has no season window")
	}
}
