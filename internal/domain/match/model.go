package match

import "github.com/riskibarqy/matchcentre/internal/domain/team"

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusLive      = "LIVE"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusSuspended = "SUSPENDED"
	StatusCancelled = "CANCELLED"
	StatusAwarded   = "AWARDED"
)

const (
	WinnerHomeTeam = "HOME_TEAM"
	WinnerAwayTeam = "AWAY_TEAM"
	WinnerDraw     = "DRAW"
)

// Record is a match as delivered by the upstream provider. Pointer fields are
// nil when the provider sent null or omitted the field.
type Record struct {
	ID          int64           `json:"id"`
	UTCDate     string          `json:"utcDate"`
	Status      string          `json:"status"`
	Matchday    *int            `json:"matchday"`
	Stage       string          `json:"stage"`
	HomeTeam    *team.Ref       `json:"homeTeam"`
	AwayTeam    *team.Ref       `json:"awayTeam"`
	Score       *Score          `json:"score"`
	Venue       string          `json:"venue"`
	Competition *CompetitionRef `json:"competition"`
}

type Score struct {
	Winner   string `json:"winner"`
	Duration string `json:"duration"`
	FullTime *Line  `json:"fullTime"`
	HalfTime *Line  `json:"halfTime"`
}

// Line is a home/away goal pair. Either side may be unknown.
type Line struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type CompetitionRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Emblem string `json:"emblem"`
}

// HomeRef returns the home team reference or the zero value.
func (r Record) HomeRef() team.Ref {
	if r.HomeTeam == nil {
		return team.Ref{}
	}
	return *r.HomeTeam
}

// AwayRef returns the away team reference or the zero value.
func (r Record) AwayRef() team.Ref {
	if r.AwayTeam == nil {
		return team.Ref{}
	}
	return *r.AwayTeam
}
