package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/media"
	"github.com/riskibarqy/matchcentre/internal/domain/stats"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

type MatchService struct {
	matchRepo     match.Repository
	headToHeadSvc *HeadToHeadService
	mediaSvc      *MediaService
	logger        *logging.Logger
}

func NewMatchService(
	matchRepo match.Repository,
	headToHeadSvc *HeadToHeadService,
	mediaSvc *MediaService,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:     matchRepo,
		headToHeadSvc: headToHeadSvc,
		mediaSvc:      mediaSvc,
		logger:        logger,
	}
}

// MatchDetail is a match with its side feeds. Score is the normalized view
// of the record: goals stay nil until the match is finished.
type MatchDetail struct {
	Match      match.Record     `json:"match"`
	Score      match.Normalized `json:"score"`
	HeadToHead stats.HeadToHead `json:"headToHead"`
	News       []media.Article  `json:"news"`
	Videos     []media.Video    `json:"videos"`
}

func (s *MatchService) GetMatchDetail(ctx context.Context, matchID int64) (MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatchDetail")
	defer span.End()

	if matchID <= 0 {
		return MatchDetail{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	record, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get match id=%d: %w", matchID, err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	out := MatchDetail{
		Match:      record,
		Score:      match.Normalize(record),
		HeadToHead: stats.EmptyHeadToHead(),
		News:       []media.Article{},
		Videos:     []media.Video{},
	}

	home, away := record.HomeRef(), record.AwayRef()
	p := pool.New().WithContext(ctx)
	if s.headToHeadSvc != nil && out.Score.HasTeams() && home.ID != away.ID {
		p.Go(func(ctx context.Context) error {
			out.HeadToHead = s.headToHeadSvc.compare(ctx, home.ID, away.ID)
			return nil
		})
	}
	if s.mediaSvc != nil {
		p.Go(func(ctx context.Context) error {
			items, err := s.mediaSvc.RelatedArticles(ctx, home.Name, away.Name)
			if err != nil {
				s.logger.WarnContext(ctx, "related news unavailable", "match_id", matchID, "error", err)
				return nil
			}
			out.News = items
			return nil
		})
		p.Go(func(ctx context.Context) error {
			items, err := s.mediaSvc.RelatedVideos(ctx, home.Name, away.Name)
			if err != nil {
				s.logger.WarnContext(ctx, "related videos unavailable", "match_id", matchID, "error", err)
				return nil
			}
			out.Videos = items
			return nil
		})
	}
	_ = p.Wait()

	return out, nil
}
