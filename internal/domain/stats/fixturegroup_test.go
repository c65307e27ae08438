package stats

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
)

func TestGroupFixtures_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	matches := []match.Record{
		scheduled(1, "2024-08-17T11:30:00Z", arsenal, chelsea),
		scheduled(2, "2024-08-18T13:00:00Z", liverpool, newcastle),
		scheduled(3, "2024-08-17T14:00:00Z", southampton, liverpool),
		{ID: 4, UTCDate: "not a date"},
		scheduled(5, "2024-08-16T19:00:00Z", chelsea, newcastle),
	}

	got := GroupFixtures(matches, time.UTC)
	wantDates := []string{"Sat, 17 Aug 2024", "Sun, 18 Aug 2024", UnknownDateKey, "Fri, 16 Aug 2024"}
	if len(got) != len(wantDates) {
		t.Fatalf("unexpected groups: %+v", got)
	}
	for i, date := range wantDates {
		if got[i].Date != date {
			t.Fatalf("group %d: got=%q want=%q", i, got[i].Date, date)
		}
	}
	if len(got[0].Matches) != 2 || got[0].Matches[0].ID != 1 || got[0].Matches[1].ID != 3 {
		t.Fatalf("matches must keep input order: %+v", got[0].Matches)
	}
}

func TestGroupFixtures_UnionEqualsInput(t *testing.T) {
	t.Parallel()

	matches := make([]match.Record, 0, 30)
	for i := 0; i < 30; i++ {
		date := time.Date(2024, time.September, 1+i%7, 12+i%5, 0, 0, 0, time.UTC).Format(time.RFC3339)
		matches = append(matches, scheduled(int64(i+1), date, arsenal, chelsea))
	}

	got := GroupFixtures(matches, time.UTC)
	if got.Len() != len(matches) {
		t.Fatalf("grouped %d matches, want %d", got.Len(), len(matches))
	}
	seen := make(map[int64]string, len(matches))
	for _, group := range got {
		for _, record := range group.Matches {
			if prev, dup := seen[record.ID]; dup {
				t.Fatalf("match %d in both %q and %q", record.ID, prev, group.Date)
			}
			seen[record.ID] = group.Date
			if key := DateKey(record, time.UTC); key != group.Date {
				t.Fatalf("match %d keyed %q but grouped under %q", record.ID, key, group.Date)
			}
		}
	}
}

func TestGroupFixtures_UsesLocation(t *testing.T) {
	t.Parallel()

	jakarta := time.FixedZone("WIB", 7*60*60)
	got := GroupFixtures([]match.Record{scheduled(1, "2024-08-17T19:00:00Z", arsenal, chelsea)}, jakarta)
	if len(got) != 1 || got[0].Date != "Sun, 18 Aug 2024" {
		t.Fatalf("unexpected local grouping: %+v", got)
	}
	if empty := GroupFixtures(nil, nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil groups, got %#v", empty)
	}
}

func TestSortByKickoff(t *testing.T) {
	t.Parallel()

	matches := []match.Record{
		{ID: 1, UTCDate: "2024-08-18T13:00:00Z"},
		{ID: 2, UTCDate: ""},
		{ID: 3, UTCDate: "2024-08-17T11:30:00Z"},
		{ID: 4, UTCDate: "2024-08-19T19:00:00Z"},
	}

	desc := SortByKickoff(matches, true)
	if desc[0].ID != 4 || desc[1].ID != 1 || desc[2].ID != 3 || desc[3].ID != 2 {
		t.Fatalf("unexpected desc order: %+v", desc)
	}
	asc := SortByKickoff(matches, false)
	if asc[0].ID != 3 || asc[3].ID != 2 {
		t.Fatalf("unexpected asc order: %+v", asc)
	}
	if matches[0].ID != 1 || matches[1].ID != 2 {
		t.Fatalf("input was mutated: %+v", matches)
	}
}
