package stats

import (
	"sort"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

// Field names a numeric statistic carried by a StatEntry.
type Field string

const (
	FieldGoals         Field = "goals"
	FieldAssists       Field = "assists"
	FieldPenalties     Field = "penalties"
	FieldPlayedMatches Field = "playedMatches"
	FieldCleanSheets   Field = "cleanSheets"
)

// ParseField resolves a field name case-insensitively.
func ParseField(raw string) (Field, bool) {
	for _, field := range []Field{FieldGoals, FieldAssists, FieldPenalties, FieldPlayedMatches, FieldCleanSheets} {
		if strings.EqualFold(strings.TrimSpace(raw), string(field)) {
			return field, true
		}
	}
	return "", false
}

// StatEntry is a team or player with its numeric statistics.
type StatEntry struct {
	Team   team.Ref      `json:"team"`
	Player *team.Player  `json:"player,omitempty"`
	Values map[Field]int `json:"values"`
}

// Value returns the entry's value for field, zero when absent.
func (e StatEntry) Value(field Field) int {
	if e.Values == nil {
		return 0
	}
	return e.Values[field]
}

// Threshold is the minimum an entry must reach to be ranked.
type Threshold struct {
	Min       int
	Inclusive bool
}

// DefaultThreshold keeps entries strictly above zero.
var DefaultThreshold = Threshold{Min: 0, Inclusive: false}

// Passes reports whether value clears the threshold.
func (t Threshold) Passes(value int) bool {
	if t.Inclusive {
		return value >= t.Min
	}
	return value > t.Min
}

// Leaderboard filters entries by threshold on field and sorts them by that
// field, highest first. Equal values keep their input order.
func Leaderboard(entries []StatEntry, field Field, threshold Threshold) []StatEntry {
	out := make([]StatEntry, 0, len(entries))
	for _, entry := range entries {
		if threshold.Passes(entry.Value(field)) {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(field) > out[j].Value(field)
	})
	return out
}

// RankedEntry is a leaderboard row with its 1-based position.
type RankedEntry struct {
	Rank  int       `json:"rank"`
	Value int       `json:"value"`
	Entry StatEntry `json:"entry"`
}

// Rank numbers a sorted leaderboard in order.
func Rank(entries []StatEntry, field Field) []RankedEntry {
	out := make([]RankedEntry, 0, len(entries))
	for i, entry := range entries {
		out = append(out, RankedEntry{Rank: i + 1, Value: entry.Value(field), Entry: entry})
	}
	return out
}

// FromScorers converts scorer rows into player stat entries.
func FromScorers(items []scorer.Scorer) []StatEntry {
	out := make([]StatEntry, 0, len(items))
	for _, item := range items {
		player := item.Player
		out = append(out, StatEntry{
			Team:   item.Team,
			Player: &player,
			Values: map[Field]int{
				FieldGoals:         item.Goals,
				FieldAssists:       valueOrZero(item.Assists),
				FieldPenalties:     valueOrZero(item.Penalties),
				FieldPlayedMatches: item.PlayedMatches,
			},
		})
	}
	return out
}

// FromCleanSheets converts clean sheet tallies into team stat entries.
func FromCleanSheets(items []CleanSheetEntry) []StatEntry {
	out := make([]StatEntry, 0, len(items))
	for _, item := range items {
		out = append(out, StatEntry{
			Team:   item.Team,
			Values: map[Field]int{FieldCleanSheets: item.CleanSheets},
		})
	}
	return out
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
