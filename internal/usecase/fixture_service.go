package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/stats"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	filterDateLayout = "2006-01-02"
)

type FixtureService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	location        *time.Location
}

func NewFixtureService(competitionRepo competition.Repository, matchRepo match.Repository, location *time.Location) *FixtureService {
	if location == nil {
		location = time.UTC
	}
	return &FixtureService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		location:        location,
	}
}

type FixtureQuery struct {
	CompetitionCode string
	Status          string
	DateFrom        string
	DateTo          string
	Matchday        int
	Order           string
}

// ListFixtures returns the competition's matches grouped by local kickoff day.
func (s *FixtureService) ListFixtures(ctx context.Context, query FixtureQuery) (stats.FixtureGroups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures")
	defer span.End()

	desc, err := parseOrder(query.Order)
	if err != nil {
		return nil, err
	}
	filter, err := buildMatchFilter(query.Status, query.DateFrom, query.DateTo)
	if err != nil {
		return nil, err
	}
	if query.Matchday < 0 {
		return nil, fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}
	filter.Matchday = query.Matchday

	item, err := resolveCompetition(ctx, s.competitionRepo, query.CompetitionCode)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByCompetition(ctx, item.Code, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches competition=%s: %w", item.Code, err)
	}

	return stats.GroupFixtures(stats.SortByKickoff(matches, desc), s.location), nil
}

func parseOrder(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", OrderAsc:
		return false, nil
	case OrderDesc:
		return true, nil
	default:
		return false, fmt.Errorf("%w: order must be %s or %s", ErrInvalidInput, OrderAsc, OrderDesc)
	}
}

func buildMatchFilter(status, dateFrom, dateTo string) (match.Filter, error) {
	filter := match.Filter{
		Status:   strings.ToUpper(strings.TrimSpace(status)),
		DateFrom: strings.TrimSpace(dateFrom),
		DateTo:   strings.TrimSpace(dateTo),
	}
	if filter.Status != "" && !isKnownStatus(filter.Status) {
		return match.Filter{}, fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, status)
	}

	var from, to time.Time
	var err error
	if filter.DateFrom != "" {
		from, err = time.Parse(filterDateLayout, filter.DateFrom)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: dateFrom must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if filter.DateTo != "" {
		to, err = time.Parse(filterDateLayout, filter.DateTo)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: dateTo must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if (filter.DateFrom == "") != (filter.DateTo == "") {
		return match.Filter{}, fmt.Errorf("%w: dateFrom and dateTo must be set together", ErrInvalidInput)
	}
	if !from.IsZero() && to.Before(from) {
		return match.Filter{}, fmt.Errorf("%w: dateTo must not be before dateFrom", ErrInvalidInput)
	}

	return filter, nil
}

func isKnownStatus(status string) bool {
	for _, item := range strings.Split(status, ",") {
		switch strings.TrimSpace(item) {
		case match.StatusScheduled, match.StatusTimed, match.StatusLive, match.StatusInPlay,
			match.StatusPaused, match.StatusFinished, match.StatusPostponed,
			match.StatusSuspended, match.StatusCancelled, match.StatusAwarded:
		default:
			return false
		}
	}
	return true
}
