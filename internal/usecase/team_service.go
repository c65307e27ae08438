package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/stats"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

const (
	defaultTeamMatchesLimit = 20
	maxTeamMatchesLimit     = 100
)

type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
}

func NewTeamService(teamRepo team.Repository, matchRepo match.Repository) *TeamService {
	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
	}
}

// TeamDetail is a club with its squad grouped by position line.
type TeamDetail struct {
	Team  team.Team         `json:"team"`
	Squad []team.SquadGroup `json:"squad"`
}

type TeamMatchesQuery struct {
	TeamID   int64
	Status   string
	DateFrom string
	DateTo   string
	Limit    int
	Order    string
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return TeamDetail{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team id=%d: %w", teamID, err)
	}
	if !exists {
		return TeamDetail{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	if item.Squad == nil {
		item.Squad = []team.Player{}
	}

	return TeamDetail{
		Team:  item,
		Squad: team.GroupSquad(item.Squad),
	}, nil
}

func (s *TeamService) ListMatches(ctx context.Context, query TeamMatchesQuery) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListMatches")
	defer span.End()

	if query.TeamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}
	desc, err := parseOrder(query.Order)
	if err != nil {
		return nil, err
	}
	filter, err := buildMatchFilter(query.Status, query.DateFrom, query.DateTo)
	if err != nil {
		return nil, err
	}
	filter.Limit = query.Limit
	if filter.Limit == 0 {
		filter.Limit = defaultTeamMatchesLimit
	}
	if filter.Limit < 0 || filter.Limit > maxTeamMatchesLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxTeamMatchesLimit)
	}

	matches, err := s.matchRepo.ListByTeam(ctx, query.TeamID, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches team=%d: %w", query.TeamID, err)
	}

	return stats.SortByKickoff(matches, desc), nil
}
