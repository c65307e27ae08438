package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/stats"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

const defaultHeadToHeadHistoryLimit = 50

type HeadToHeadService struct {
	matchRepo    match.Repository
	historyLimit int
	logger       *logging.Logger
	now          func() time.Time
}

func NewHeadToHeadService(matchRepo match.Repository, historyLimit int, logger *logging.Logger) *HeadToHeadService {
	if historyLimit <= 0 {
		historyLimit = defaultHeadToHeadHistoryLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HeadToHeadService{
		matchRepo:    matchRepo,
		historyLimit: historyLimit,
		logger:       logger,
		now:          time.Now,
	}
}

// Compare aggregates the meetings and recent form of two clubs. Upstream
// failures degrade to the zero-filled result instead of failing the call.
func (s *HeadToHeadService) Compare(ctx context.Context, homeTeamID, awayTeamID int64) (stats.HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeadToHeadService.Compare")
	defer span.End()

	if homeTeamID <= 0 || awayTeamID <= 0 {
		return stats.HeadToHead{}, fmt.Errorf("%w: home and away team ids must be > 0", ErrInvalidInput)
	}
	if homeTeamID == awayTeamID {
		return stats.HeadToHead{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}

	return s.compare(ctx, homeTeamID, awayTeamID), nil
}

func (s *HeadToHeadService) compare(ctx context.Context, homeTeamID, awayTeamID int64) stats.HeadToHead {
	filter := match.Filter{Status: match.StatusFinished, Limit: s.historyLimit}

	var (
		homeHistory, awayHistory []match.Record
		homeErr, awayErr         error
		wg                       conc.WaitGroup
	)
	wg.Go(func() {
		homeHistory, homeErr = s.matchRepo.ListByTeam(ctx, homeTeamID, filter)
	})
	wg.Go(func() {
		awayHistory, awayErr = s.matchRepo.ListByTeam(ctx, awayTeamID, filter)
	})
	if recovered := wg.WaitAndRecover(); recovered != nil {
		s.logger.ErrorContext(ctx, "head-to-head history fetch panicked",
			"home_team_id", homeTeamID,
			"away_team_id", awayTeamID,
			"panic", recovered.String(),
		)
		return stats.EmptyHeadToHead()
	}

	if homeErr != nil || awayErr != nil {
		s.logger.WarnContext(ctx, "head-to-head history unavailable, returning empty result",
			"home_team_id", homeTeamID,
			"away_team_id", awayTeamID,
			"home_error", errString(homeErr),
			"away_error", errString(awayErr),
		)
		return stats.EmptyHeadToHead()
	}

	return stats.HeadToHeadOf(stats.HeadToHeadInput{
		HomeTeamID:  homeTeamID,
		AwayTeamID:  awayTeamID,
		HomeHistory: homeHistory,
		AwayHistory: awayHistory,
		Now:         s.now(),
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
