package fallback

import (
	"context"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/media"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
)

var (
	_ match.Repository    = (*MatchRepository)(nil)
	_ team.Repository     = (*TeamRepository)(nil)
	_ standing.Repository = (*StandingRepository)(nil)
	_ scorer.Repository   = (*ScorerRepository)(nil)
	_ media.Repository    = (*MediaRepository)(nil)
)

type MatchRepository struct {
	next      match.Repository
	snapshots *Snapshots
}

func NewMatchRepository(next match.Repository, snapshots *Snapshots) *MatchRepository {
	return &MatchRepository{next: next, snapshots: snapshots}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionCode string, filter match.Filter) ([]match.Record, error) {
	return load(ctx, r.snapshots, keyOf("matches:competition:", competitionCode, ":", filter.Key()), func(ctx context.Context) ([]match.Record, error) {
		return r.next.ListByCompetition(ctx, competitionCode, filter)
	})
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID int64, filter match.Filter) ([]match.Record, error) {
	return load(ctx, r.snapshots, keyOf("matches:team:", teamID, ":", filter.Key()), func(ctx context.Context) ([]match.Record, error) {
		return r.next.ListByTeam(ctx, teamID, filter)
	})
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Record, bool, error) {
	item, err := load(ctx, r.snapshots, keyOf("match:", matchID), func(ctx context.Context) (found[match.Record], error) {
		value, exists, err := r.next.GetByID(ctx, matchID)
		return found[match.Record]{Value: value, Exists: exists}, err
	})
	return item.Value, item.Exists, err
}

type TeamRepository struct {
	next      team.Repository
	snapshots *Snapshots
}

func NewTeamRepository(next team.Repository, snapshots *Snapshots) *TeamRepository {
	return &TeamRepository{next: next, snapshots: snapshots}
}

func (r *TeamRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]team.Team, error) {
	return load(ctx, r.snapshots, keyOf("teams:competition:", competitionCode), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByCompetition(ctx, competitionCode)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	item, err := load(ctx, r.snapshots, keyOf("team:", teamID), func(ctx context.Context) (found[team.Team], error) {
		value, exists, err := r.next.GetByID(ctx, teamID)
		return found[team.Team]{Value: value, Exists: exists}, err
	})
	return item.Value, item.Exists, err
}

type StandingRepository struct {
	next      standing.Repository
	snapshots *Snapshots
}

func NewStandingRepository(next standing.Repository, snapshots *Snapshots) *StandingRepository {
	return &StandingRepository{next: next, snapshots: snapshots}
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]standing.Table, error) {
	return load(ctx, r.snapshots, keyOf("standings:competition:", competitionCode), func(ctx context.Context) ([]standing.Table, error) {
		return r.next.ListByCompetition(ctx, competitionCode)
	})
}

type ScorerRepository struct {
	next      scorer.Repository
	snapshots *Snapshots
}

func NewScorerRepository(next scorer.Repository, snapshots *Snapshots) *ScorerRepository {
	return &ScorerRepository{next: next, snapshots: snapshots}
}

func (r *ScorerRepository) ListByCompetition(ctx context.Context, competitionCode string, limit int) ([]scorer.Scorer, error) {
	return load(ctx, r.snapshots, keyOf("scorers:competition:", competitionCode, ":", limit), func(ctx context.Context) ([]scorer.Scorer, error) {
		return r.next.ListByCompetition(ctx, competitionCode, limit)
	})
}

type MediaRepository struct {
	next      media.Repository
	snapshots *Snapshots
}

func NewMediaRepository(next media.Repository, snapshots *Snapshots) *MediaRepository {
	return &MediaRepository{next: next, snapshots: snapshots}
}

func (r *MediaRepository) ListArticles(ctx context.Context) ([]media.Article, error) {
	return load(ctx, r.snapshots, "articles", r.next.ListArticles)
}

func (r *MediaRepository) ListVideos(ctx context.Context) ([]media.Video, error) {
	return load(ctx, r.snapshots, "videos", r.next.ListVideos)
}

// found carries a lookup result through the snapshot codec.
type found[T any] struct {
	Value  T    `json:"value"`
	Exists bool `json:"exists"`
}
