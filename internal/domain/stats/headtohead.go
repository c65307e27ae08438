package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
)

const (
	MaxPreviousResults = 3
	MaxFormGuide       = 5
)

// HeadToHeadInput carries the two reference teams and their recent histories.
// Now anchors the season window; a zero Now counts the whole history.
type HeadToHeadInput struct {
	HomeTeamID  int64
	AwayTeamID  int64
	HomeHistory []match.Record
	AwayHistory []match.Record
	Now         time.Time
}

type HeadToHead struct {
	Played          int              `json:"played"`
	HomeWins        int              `json:"homeWins"`
	Draws           int              `json:"draws"`
	AwayWins        int              `json:"awayWins"`
	HomeGoals       int              `json:"homeGoals"`
	AwayGoals       int              `json:"awayGoals"`
	PreviousResults []PreviousResult `json:"previousResults"`
	FormGuide       FormGuide        `json:"formGuide"`
	ThisSeason      SeasonPair       `json:"thisSeason"`
}

// PreviousResult is a past meeting in its literal home/away orientation.
type PreviousResult struct {
	MatchID   int64  `json:"matchId"`
	UTCDate   string `json:"utcDate"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
	Winner    string `json:"winner"`
}

type FormGuide struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

type SeasonPair struct {
	Home SeasonStats `json:"home"`
	Away SeasonStats `json:"away"`
}

type SeasonStats struct {
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Drawn         int     `json:"drawn"`
	Lost          int     `json:"lost"`
	GoalsScored   int     `json:"goalsScored"`
	GoalsConceded int     `json:"goalsConceded"`
	AvgScored     float64 `json:"avgScored"`
	AvgConceded   float64 `json:"avgConceded"`
}

// EmptyHeadToHead is the zero-filled result used when no history is available.
func EmptyHeadToHead() HeadToHead {
	return HeadToHead{
		PreviousResults: []PreviousResult{},
		FormGuide:       FormGuide{Home: []string{}, Away: []string{}},
	}
}

// HeadToHeadOf aggregates the meetings between the two reference teams and
// summarises each team's recent form and season record. Counts are always
// attributed to the reference roles, whichever side hosted a given meeting.
func HeadToHeadOf(in HeadToHeadInput) HeadToHead {
	out := EmptyHeadToHead()
	if in.HomeTeamID <= 0 || in.AwayTeamID <= 0 {
		return out
	}

	meetings := meetingsBetween(in.HomeTeamID, in.AwayTeamID, in.HomeHistory, in.AwayHistory)
	for _, record := range meetings {
		n := match.Normalize(record)
		referenceHomeHosted := n.HomeTeamID == in.HomeTeamID

		out.Played++
		switch winnerOf(record, n) {
		case match.WinnerDraw:
			out.Draws++
		case match.WinnerHomeTeam:
			if referenceHomeHosted {
				out.HomeWins++
			} else {
				out.AwayWins++
			}
		case match.WinnerAwayTeam:
			if referenceHomeHosted {
				out.AwayWins++
			} else {
				out.HomeWins++
			}
		}

		if referenceHomeHosted {
			out.HomeGoals += *n.HomeGoals
			out.AwayGoals += *n.AwayGoals
		} else {
			out.HomeGoals += *n.AwayGoals
			out.AwayGoals += *n.HomeGoals
		}
	}

	for _, record := range SortByKickoff(meetings, true) {
		if len(out.PreviousResults) == MaxPreviousResults {
			break
		}
		n := match.Normalize(record)
		out.PreviousResults = append(out.PreviousResults, PreviousResult{
			MatchID:   record.ID,
			UTCDate:   record.UTCDate,
			HomeTeam:  record.HomeRef().Name,
			AwayTeam:  record.AwayRef().Name,
			HomeGoals: *n.HomeGoals,
			AwayGoals: *n.AwayGoals,
			Winner:    winnerOf(record, n),
		})
	}

	out.FormGuide.Home = formGuide(in.HomeTeamID, in.HomeHistory)
	out.FormGuide.Away = formGuide(in.AwayTeamID, in.AwayHistory)
	out.ThisSeason.Home = seasonStats(in.HomeTeamID, in.HomeHistory, in.Now)
	out.ThisSeason.Away = seasonStats(in.AwayTeamID, in.AwayHistory, in.Now)
	return out
}

// meetingsBetween merges both histories into the finished meetings of the
// two teams, de-duplicated and in first-seen order.
func meetingsBetween(teamA, teamB int64, histories ...[]match.Record) []match.Record {
	seen := make(map[string]struct{})
	out := make([]match.Record, 0)
	for _, history := range histories {
		for _, record := range history {
			n := match.Normalize(record)
			if !n.Finished || !n.HasGoals() || !n.HasTeams() {
				continue
			}
			between := (n.HomeTeamID == teamA && n.AwayTeamID == teamB) ||
				(n.HomeTeamID == teamB && n.AwayTeamID == teamA)
			if !between {
				continue
			}
			key := dedupeKey(record, n)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, record)
		}
	}
	return out
}

func dedupeKey(record match.Record, n match.Normalized) string {
	if record.ID > 0 {
		return "id:" + strconv.FormatInt(record.ID, 10)
	}
	return fmt.Sprintf("%s|%d|%d", strings.TrimSpace(record.UTCDate), n.HomeTeamID, n.AwayTeamID)
}

// winnerOf trusts the provider's winner label and falls back to the score.
func winnerOf(record match.Record, n match.Normalized) string {
	if record.Score != nil {
		switch strings.ToUpper(strings.TrimSpace(record.Score.Winner)) {
		case match.WinnerHomeTeam:
			return match.WinnerHomeTeam
		case match.WinnerAwayTeam:
			return match.WinnerAwayTeam
		case match.WinnerDraw:
			return match.WinnerDraw
		}
	}
	switch {
	case *n.HomeGoals > *n.AwayGoals:
		return match.WinnerHomeTeam
	case *n.HomeGoals < *n.AwayGoals:
		return match.WinnerAwayTeam
	default:
		return match.WinnerDraw
	}
}

func formGuide(teamID int64, history []match.Record) []string {
	out := make([]string, 0, MaxFormGuide)
	if teamID <= 0 {
		return out
	}
	for _, record := range SortByKickoff(history, true) {
		if len(out) == MaxFormGuide {
			break
		}
		n := match.Normalize(record)
		if !n.Finished || !n.HasGoals() {
			continue
		}
		switch teamID {
		case n.HomeTeamID:
			out = append(out, fmt.Sprintf("%d-%d v %s (H)", *n.HomeGoals, *n.AwayGoals, record.AwayRef().Abbreviation()))
		case n.AwayTeamID:
			out = append(out, fmt.Sprintf("%d-%d v %s (A)", *n.AwayGoals, *n.HomeGoals, record.HomeRef().Abbreviation()))
		}
	}
	return out
}

func seasonStats(teamID int64, history []match.Record, now time.Time) SeasonStats {
	var out SeasonStats
	if teamID <= 0 {
		return out
	}
	start, hasWindow := SeasonStart(now)
	seen := make(map[string]struct{}, len(history))
	for _, record := range history {
		n := match.Normalize(record)
		if !n.Finished || !n.HasGoals() {
			continue
		}
		if hasWindow {
			kickoff, ok := match.ParseKickoff(record)
			if !ok || kickoff.Before(start) || kickoff.After(now) {
				continue
			}
		}
		key := dedupeKey(record, n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var scored, conceded int
		switch teamID {
		case n.HomeTeamID:
			scored, conceded = *n.HomeGoals, *n.AwayGoals
		case n.AwayTeamID:
			scored, conceded = *n.AwayGoals, *n.HomeGoals
		default:
			continue
		}

		out.Played++
		out.GoalsScored += scored
		out.GoalsConceded += conceded
		switch {
		case scored > conceded:
			out.Won++
		case scored < conceded:
			out.Lost++
		default:
			out.Drawn++
		}
	}
	if out.Played > 0 {
		out.AvgScored = roundOneDecimal(float64(out.GoalsScored) / float64(out.Played))
		out.AvgConceded = roundOneDecimal(float64(out.GoalsConceded) / float64(out.Played))
	}
	return out
}

// SeasonStart returns the July 1st (UTC) that opened the season containing
// now. European seasons straddle the calendar year.
func SeasonStart(now time.Time) (time.Time, bool) {
	if now.IsZero() {
		return time.Time{}, false
	}
	now = now.UTC()
	year := now.Year()
	if now.Month() < time.July {
		year--
	}
	return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC), true
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
