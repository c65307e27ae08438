package stats

import (
	"sort"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
)

const (
	FixtureDateLayout = "Mon, 2 Jan 2006"
	UnknownDateKey    = "TBD"
)

// FixtureGroup holds the matches sharing one calendar date.
type FixtureGroup struct {
	Date    string         `json:"date"`
	Matches []match.Record `json:"matches"`
}

// FixtureGroups is ordered by the first appearance of each date.
type FixtureGroups []FixtureGroup

// Len returns the total number of matches across all groups.
func (g FixtureGroups) Len() int {
	total := 0
	for _, group := range g {
		total += len(group.Matches)
	}
	return total
}

// DateKey formats the kickoff date of a record in loc.
func DateKey(record match.Record, loc *time.Location) string {
	kickoff, ok := match.ParseKickoff(record)
	if !ok {
		return UnknownDateKey
	}
	if loc == nil {
		loc = time.UTC
	}
	return kickoff.In(loc).Format(FixtureDateLayout)
}

// GroupFixtures buckets matches by calendar date in loc. Buckets appear in
// the order their first match was seen and matches keep input order.
func GroupFixtures(matches []match.Record, loc *time.Location) FixtureGroups {
	out := make(FixtureGroups, 0)
	index := make(map[string]int)
	for _, record := range matches {
		key := DateKey(record, loc)
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, FixtureGroup{Date: key, Matches: make([]match.Record, 0, 1)})
		}
		out[pos].Matches = append(out[pos].Matches, record)
	}
	return out
}

// SortByKickoff returns a copy of matches ordered by kickoff. Records with an
// unparseable date go last in both directions.
func SortByKickoff(matches []match.Record, desc bool) []match.Record {
	out := make([]match.Record, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		left, leftOK := match.ParseKickoff(out[i])
		right, rightOK := match.ParseKickoff(out[j])
		switch {
		case !leftOK || !rightOK:
			return leftOK && !rightOK
		case desc:
			return left.After(right)
		default:
			return left.Before(right)
		}
	})
	return out
}
