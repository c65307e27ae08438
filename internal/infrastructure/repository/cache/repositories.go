package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/media"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	basecache "github.com/riskibarqy/matchcentre/internal/platform/cache"
)

var (
	_ match.Repository    = (*MatchRepository)(nil)
	_ team.Repository     = (*TeamRepository)(nil)
	_ standing.Repository = (*StandingRepository)(nil)
	_ scorer.Repository   = (*ScorerRepository)(nil)
	_ media.Repository    = (*MediaRepository)(nil)
)

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionCode string, filter match.Filter) ([]match.Record, error) {
	key := "match:competition:" + competitionCode + ":" + filter.Key()
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]match.Record, error) {
		items, err := r.next.ListByCompetition(ctx, competitionCode, filter)
		if err != nil {
			return nil, err
		}
		return append([]match.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]match.Record(nil), items...), nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID int64, filter match.Filter) ([]match.Record, error) {
	key := "match:team:" + strconv.FormatInt(teamID, 10) + ":" + filter.Key()
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]match.Record, error) {
		items, err := r.next.ListByTeam(ctx, teamID, filter)
		if err != nil {
			return nil, err
		}
		return append([]match.Record(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]match.Record(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Record, bool, error) {
	key := "match:id:" + strconv.FormatInt(matchID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Record{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

type cachedMatchByID struct {
	value  match.Record
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]team.Team, error) {
	key := "team:competition:" + competitionCode
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCompetition(ctx, competitionCode)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionCode string) ([]standing.Table, error) {
	key := "standing:competition:" + competitionCode
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]standing.Table, error) {
		items, err := r.next.ListByCompetition(ctx, competitionCode)
		if err != nil {
			return nil, err
		}
		return append([]standing.Table(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]standing.Table(nil), items...), nil
}

type ScorerRepository struct {
	next  scorer.Repository
	cache *basecache.Store
}

func NewScorerRepository(next scorer.Repository, cache *basecache.Store) *ScorerRepository {
	return &ScorerRepository{next: next, cache: cache}
}

func (r *ScorerRepository) ListByCompetition(ctx context.Context, competitionCode string, limit int) ([]scorer.Scorer, error) {
	key := "scorer:competition:" + competitionCode + ":" + strconv.Itoa(limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]scorer.Scorer, error) {
		items, err := r.next.ListByCompetition(ctx, competitionCode, limit)
		if err != nil {
			return nil, err
		}
		return append([]scorer.Scorer(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]scorer.Scorer(nil), items...), nil
}

type MediaRepository struct {
	next  media.Repository
	cache *basecache.Store
}

func NewMediaRepository(next media.Repository, cache *basecache.Store) *MediaRepository {
	return &MediaRepository{next: next, cache: cache}
}

func (r *MediaRepository) ListArticles(ctx context.Context) ([]media.Article, error) {
	items, err := basecache.Load(ctx, r.cache, "media:articles", func(ctx context.Context) ([]media.Article, error) {
		items, err := r.next.ListArticles(ctx)
		if err != nil {
			return nil, err
		}
		return append([]media.Article(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]media.Article(nil), items...), nil
}

func (r *MediaRepository) ListVideos(ctx context.Context) ([]media.Video, error) {
	items, err := basecache.Load(ctx, r.cache, "media:videos", func(ctx context.Context) ([]media.Video, error) {
		items, err := r.next.ListVideos(ctx)
		if err != nil {
			return nil, err
		}
		return append([]media.Video(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]media.Video(nil), items...), nil
}
