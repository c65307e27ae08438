package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/stats"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

type CompetitionService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
	standingRepo    standing.Repository
	scorerRepo      scorer.Repository
	matchRepo       match.Repository
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	scorerRepo scorer.Repository,
	matchRepo match.Repository,
) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		standingRepo:    standingRepo,
		scorerRepo:      scorerRepo,
		matchRepo:       matchRepo,
	}
}

// LeaderboardInput selects the statistic and cut-off for a leaderboard.
// A nil Min uses stats.DefaultThreshold.
type LeaderboardInput struct {
	CompetitionCode string
	Field           string
	Min             *int
	Inclusive       bool
	Limit           int
}

func (s *CompetitionService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListCompetitions")
	defer span.End()

	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	if items == nil {
		items = []competition.Competition{}
	}

	return items, nil
}

func (s *CompetitionService) GetStandings(ctx context.Context, code string) ([]standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetStandings")
	defer span.End()

	item, err := s.resolveCompetition(ctx, code)
	if err != nil {
		return nil, err
	}

	tables, err := s.standingRepo.ListByCompetition(ctx, item.Code)
	if err != nil {
		return nil, fmt.Errorf("list standings competition=%s: %w", item.Code, err)
	}

	return standing.SelectTotal(tables), nil
}

func (s *CompetitionService) ListTeams(ctx context.Context, code string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListTeams")
	defer span.End()

	item, err := s.resolveCompetition(ctx, code)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, item.Code)
	if err != nil {
		return nil, fmt.Errorf("list teams competition=%s: %w", item.Code, err)
	}
	if teams == nil {
		teams = []team.Team{}
	}

	return teams, nil
}

// CleanSheets counts shutouts per club over the competition's finished matches.
func (s *CompetitionService) CleanSheets(ctx context.Context, code string) ([]stats.CleanSheetEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.CleanSheets")
	defer span.End()

	item, err := s.resolveCompetition(ctx, code)
	if err != nil {
		return nil, err
	}

	refs, matches, err := s.cleanSheetInputs(ctx, item.Code)
	if err != nil {
		return nil, err
	}
	return stats.CleanSheets(refs, matches), nil
}

// Leaderboard ranks players (goals, assists, penalties, playedMatches) or
// clubs (cleanSheets) by the requested field.
func (s *CompetitionService) Leaderboard(ctx context.Context, input LeaderboardInput) ([]stats.RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Leaderboard")
	defer span.End()

	field := stats.FieldGoals
	if input.Field != "" {
		parsed, ok := stats.ParseField(input.Field)
		if !ok {
			return nil, fmt.Errorf("%w: unknown leaderboard field %q", ErrInvalidInput, input.Field)
		}
		field = parsed
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultLeaderboardLimit
	}
	if limit < 0 || limit > maxLeaderboardLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxLeaderboardLimit)
	}

	threshold := stats.DefaultThreshold
	if input.Min != nil {
		threshold = stats.Threshold{Min: *input.Min, Inclusive: input.Inclusive}
	}

	item, err := s.resolveCompetition(ctx, input.CompetitionCode)
	if err != nil {
		return nil, err
	}

	var entries []stats.StatEntry
	if field == stats.FieldCleanSheets {
		refs, matches, err := s.cleanSheetInputs(ctx, item.Code)
		if err != nil {
			return nil, err
		}
		entries = stats.FromCleanSheets(stats.CleanSheetCounts(refs, matches))
	} else {
		scorers, err := s.scorerRepo.ListByCompetition(ctx, item.Code, maxLeaderboardLimit)
		if err != nil {
			return nil, fmt.Errorf("list scorers competition=%s: %w", item.Code, err)
		}
		entries = stats.FromScorers(scorers)
	}

	ranked := stats.Rank(stats.Leaderboard(entries, field, threshold), field)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

func (s *CompetitionService) cleanSheetInputs(ctx context.Context, code string) ([]team.Ref, []match.Record, error) {
	teams, err := s.teamRepo.ListByCompetition(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams competition=%s: %w", code, err)
	}
	matches, err := s.matchRepo.ListByCompetition(ctx, code, match.Filter{Status: match.StatusFinished})
	if err != nil {
		return nil, nil, fmt.Errorf("list finished matches competition=%s: %w", code, err)
	}

	refs := make([]team.Ref, 0, len(teams))
	for _, item := range teams {
		refs = append(refs, item.Ref)
	}

	return refs, matches, nil
}

func (s *CompetitionService) resolveCompetition(ctx context.Context, code string) (competition.Competition, error) {
	return resolveCompetition(ctx, s.competitionRepo, code)
}

func resolveCompetition(ctx context.Context, repo competition.Repository, code string) (competition.Competition, error) {
	code = competition.NormalizeCode(code)
	if code == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition code is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByCode(ctx, code)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, code)
	}

	return item, nil
}
