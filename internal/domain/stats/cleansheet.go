package stats

import (
	"sort"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

// CleanSheetEntry is a team's clean sheet tally.
type CleanSheetEntry struct {
	Team        team.Ref `json:"team"`
	CleanSheets int      `json:"cleanSheets"`
}

// CleanSheets counts, per team in teams, the finished matches in which the
// opponent did not score. A goalless draw credits both sides. Only teams with
// at least one clean sheet are returned, most first; ties keep teams order.
func CleanSheets(teams []team.Ref, matches []match.Record) []CleanSheetEntry {
	counts := CleanSheetCounts(teams, matches)
	out := make([]CleanSheetEntry, 0, len(counts))
	for _, entry := range counts {
		if entry.CleanSheets > 0 {
			out = append(out, entry)
		}
	}
	return out
}

// CleanSheetCounts is CleanSheets without the zero filter: every distinct team
// with a positive id gets a row, in the same order.
func CleanSheetCounts(teams []team.Ref, matches []match.Record) []CleanSheetEntry {
	counts := make(map[int64]int, len(teams))
	for _, item := range teams {
		if item.ID > 0 {
			counts[item.ID] = 0
		}
	}

	for _, record := range matches {
		n := match.Normalize(record)
		if !n.Finished || !n.HasGoals() {
			continue
		}
		if *n.AwayGoals == 0 {
			credit(counts, n.HomeTeamID)
		}
		if *n.HomeGoals == 0 {
			credit(counts, n.AwayTeamID)
		}
	}

	out := make([]CleanSheetEntry, 0, len(counts))
	seen := make(map[int64]struct{}, len(teams))
	for _, item := range teams {
		if _, dup := seen[item.ID]; dup || item.ID <= 0 {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, CleanSheetEntry{Team: item, CleanSheets: counts[item.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CleanSheets > out[j].CleanSheets
	})
	return out
}

func credit(counts map[int64]int, teamID int64) {
	if _, ok := counts[teamID]; ok {
		counts[teamID]++
	}
}
