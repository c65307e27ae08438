package match

import (
	"context"
	"strconv"
	"strings"
)

// Filter narrows match listings. Zero values are not sent upstream.
type Filter struct {
	Status   string
	DateFrom string
	DateTo   string
	Matchday int
	Season   int
	Limit    int
}

// Key renders the filter as a stable cache key fragment.
func (f Filter) Key() string {
	parts := []string{
		"status=" + strings.ToUpper(strings.TrimSpace(f.Status)),
		"from=" + strings.TrimSpace(f.DateFrom),
		"to=" + strings.TrimSpace(f.DateTo),
		"md=" + strconv.Itoa(f.Matchday),
		"season=" + strconv.Itoa(f.Season),
		"limit=" + strconv.Itoa(f.Limit),
	}
	return strings.Join(parts, "&")
}

// Repository exposes match read operations.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionCode string, filter Filter) ([]Record, error)
	ListByTeam(ctx context.Context, teamID int64, filter Filter) ([]Record, error)
	GetByID(ctx context.Context, matchID int64) (Record, bool, error)
}
