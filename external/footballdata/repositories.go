package footballdata

import (
	"context"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

// The adapters below expose the client through the domain repository
// interfaces.

type MatchRepository struct{ client *Client }

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionCode string, filter match.Filter) ([]match.Record, error) {
	return r.client.FetchCompetitionMatches(ctx, competitionCode, filter)
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID int64, filter match.Filter) ([]match.Record, error) {
	return r.client.FetchTeamMatches(ctx, teamID, filter)
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Record, bool, error) {
	return r.client.FetchMatch(ctx, matchID)
}

type TeamRepository struct{ client *Client }

func NewTeamRepository(client *Client) *TeamRepository {
	return &TeamRepository{client: client}
}

func (r *TeamRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]team.Team, error) {
	return r.client.FetchCompetitionTeams(ctx, competitionCode)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.client.FetchTeam(ctx, teamID)
}

type StandingRepository struct{ client *Client }

func NewStandingRepository(client *Client) *StandingRepository {
	return &StandingRepository{client: client}
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]standing.Table, error) {
	return r.client.FetchStandings(ctx, competitionCode)
}

type ScorerRepository struct{ client *Client }

func NewScorerRepository(client *Client) *ScorerRepository {
	return &ScorerRepository{client: client}
}

func (r *ScorerRepository) ListByCompetition(ctx context.Context, competitionCode string, limit int) ([]scorer.Scorer, error) {
	return r.client.FetchScorers(ctx, competitionCode, limit)
}

var (
	_ match.Repository    = (*MatchRepository)(nil)
	_ team.Repository     = (*TeamRepository)(nil)
	_ standing.Repository = (*StandingRepository)(nil)
	_ scorer.Repository   = (*ScorerRepository)(nil)
)
