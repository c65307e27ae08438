package stats

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

func TestCleanSheets_CreditsBothSidesOnGoallessDraw(t *testing.T) {
	t.Parallel()

	a, b := ref(1, "A", "AAA"), ref(2, "B", "BBB")
	matches := []match.Record{
		finished(10, "2024-08-17T14:00:00Z", a, b, 2, 0),
		finished(11, "2024-08-24T14:00:00Z", b, a, 0, 0),
	}

	got := CleanSheets([]team.Ref{a, b}, matches)
	if len(got) != 2 {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[0].Team.ID != 1 || got[0].CleanSheets != 2 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].Team.ID != 2 || got[1].CleanSheets != 1 {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
}

func TestCleanSheets_SkipsUnfinishedAndUnknownScores(t *testing.T) {
	t.Parallel()

	a, b := ref(1, "A", "AAA"), ref(2, "B", "BBB")
	noScore := finished(12, "2024-09-01T14:00:00Z", a, b, 0, 0)
	noScore.Score = nil
	matches := []match.Record{
		scheduled(10, "2024-09-14T14:00:00Z", a, b),
		{ID: 11, Status: match.StatusFinished},
		noScore,
	}

	got := CleanSheets([]team.Ref{a, b}, matches)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestCleanSheets_IgnoresTeamsOutsideList(t *testing.T) {
	t.Parallel()

	a, b, c := ref(1, "A", "AAA"), ref(2, "B", "BBB"), ref(3, "C", "CCC")
	matches := []match.Record{
		finished(10, "2024-08-17T14:00:00Z", a, c, 1, 0),
		finished(11, "2024-08-24T14:00:00Z", c, b, 3, 0),
	}

	got := CleanSheets([]team.Ref{a, b}, matches)
	if len(got) != 1 || got[0].Team.ID != 1 || got[0].CleanSheets != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCleanSheets_StableOnTies(t *testing.T) {
	t.Parallel()

	a, b, c := ref(1, "A", "AAA"), ref(2, "B", "BBB"), ref(3, "C", "CCC")
	matches := []match.Record{
		finished(10, "2024-08-17T14:00:00Z", c, a, 1, 0),
		finished(11, "2024-08-17T14:00:00Z", b, a, 2, 0),
	}

	got := CleanSheets([]team.Ref{a, b, c}, matches)
	if len(got) != 2 || got[0].Team.ID != 2 || got[1].Team.ID != 3 {
		t.Fatalf("ties must keep teams order: %+v", got)
	}
}

func TestCleanSheets_NilInputs(t *testing.T) {
	t.Parallel()

	if got := CleanSheets(nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestCleanSheets_ReconcilesWithFinishedShutouts(t *testing.T) {
	t.Parallel()

	teams := make([]team.Ref, 0, 20)
	for i := 1; i <= 20; i++ {
		teams = append(teams, ref(int64(i), fmt.Sprintf("Club %02d", i), fmt.Sprintf("C%02d", i)))
	}

	scores := [][2]int{{2, 0}, {0, 0}, {1, 1}, {0, 3}, {4, 2}, {1, 0}, {0, 0}, {2, 2}, {3, 1}, {0, 1}}
	statuses := []string{
		match.StatusFinished, match.StatusFinished, match.StatusScheduled, match.StatusFinished,
		match.StatusInPlay, match.StatusFinished, match.StatusFinished, match.StatusTimed,
		match.StatusFinished, match.StatusPostponed,
	}

	matches := make([]match.Record, 0, 20)
	expected := 0
	for i := 0; i < 20; i++ {
		home := teams[i]
		away := teams[(i+7)%20]
		score := scores[i%len(scores)]
		record := finished(int64(100+i), fmt.Sprintf("2024-08-%02dT15:00:00Z", 10+i), home, away, score[0], score[1])
		record.Status = statuses[i%len(statuses)]
		matches = append(matches, record)

		if record.Status != match.StatusFinished {
			continue
		}
		if score[1] == 0 {
			expected++
		}
		if score[0] == 0 {
			expected++
		}
	}

	got := CleanSheets(teams, matches)
	total := 0
	for i, entry := range got {
		if entry.CleanSheets <= 0 {
			t.Fatalf("zero clean sheet entry returned: %+v", entry)
		}
		if i > 0 && got[i-1].CleanSheets < entry.CleanSheets {
			t.Fatalf("result not sorted at %d: %+v", i, got)
		}
		total += entry.CleanSheets
	}
	if total != expected {
		t.Fatalf("clean sheet total mismatch: got=%d want=%d", total, expected)
	}
}

func TestCleanSheetCounts_KeepsZeroRows(t *testing.T) {
	t.Parallel()

	a, b := ref(1, "A", "AAA"), ref(2, "B", "BBB")
	matches := []match.Record{finished(10, "2024-08-17T14:00:00Z", a, b, 2, 1)}

	got := CleanSheetCounts([]team.Ref{a, b, a, ref(0, "", "")}, matches)
	if len(got) != 2 {
		t.Fatalf("expected one row per distinct team, got %+v", got)
	}
	for i, want := range []int64{1, 2} {
		if got[i].Team.ID != want || got[i].CleanSheets != 0 {
			t.Fatalf("row %d: unexpected entry %+v", i, got[i])
		}
	}
	if sheets := CleanSheets([]team.Ref{a, b}, matches); len(sheets) != 0 {
		t.Fatalf("expected no positive clean sheets, got %+v", sheets)
	}

	ranked := Leaderboard(FromCleanSheets(got), FieldCleanSheets, Threshold{Min: 0, Inclusive: true})
	if len(ranked) != 2 {
		t.Fatalf("expected inclusive zero threshold to keep both teams, got %+v", ranked)
	}
}

func TestCleanSheets_AwardedMatchNotCredited(t *testing.T) {
	t.Parallel()

	a, b := ref(1, "A", "AAA"), ref(2, "B", "BBB")
	awarded := finished(10, "2024-08-17T14:00:00Z", a, b, 3, 0)
	awarded.Status = match.StatusAwarded

	if got := CleanSheets([]team.Ref{a, b}, []match.Record{awarded}); len(got) != 0 {
		t.Fatalf("awarded match must not count, got %+v", got)
	}
}
