package match

import (
	"strings"
	"time"
)

// Normalized holds the fields every aggregation reads from a match.
type Normalized struct {
	HomeTeamID int64 `json:"homeTeamId"`
	AwayTeamID int64 `json:"awayTeamId"`
	HomeGoals  *int  `json:"homeGoals"`
	AwayGoals  *int  `json:"awayGoals"`
	Finished   bool  `json:"finished"`
}

// HasTeams reports whether both sides carry a usable team id.
func (n Normalized) HasTeams() bool {
	return n.HomeTeamID > 0 && n.AwayTeamID > 0
}

// HasGoals reports whether the final score is known.
func (n Normalized) HasGoals() bool {
	return n.HomeGoals != nil && n.AwayGoals != nil
}

// Normalize extracts team ids and the final score from a record. Goals stay
// nil unless the status is exactly FINISHED and both full-time values are
// present. AWARDED and lowercase variants do not count as finished.
func Normalize(r Record) Normalized {
	out := Normalized{
		Finished: r.Status == StatusFinished,
	}
	if r.HomeTeam != nil && r.HomeTeam.ID > 0 {
		out.HomeTeamID = r.HomeTeam.ID
	}
	if r.AwayTeam != nil && r.AwayTeam.ID > 0 {
		out.AwayTeamID = r.AwayTeam.ID
	}
	if !out.Finished || r.Score == nil || r.Score.FullTime == nil {
		return out
	}

	home, away := r.Score.FullTime.Home, r.Score.FullTime.Away
	if home == nil || away == nil || *home < 0 || *away < 0 {
		return out
	}
	homeGoals, awayGoals := *home, *away
	out.HomeGoals = &homeGoals
	out.AwayGoals = &awayGoals
	return out
}

// ParseKickoff parses the record's UTC kickoff time.
func ParseKickoff(r Record) (time.Time, bool) {
	value := strings.TrimSpace(r.UTCDate)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
