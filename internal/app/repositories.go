package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/matchcentre/external/footballdata"
	mediaclient "github.com/riskibarqy/matchcentre/external/media"
	"github.com/riskibarqy/matchcentre/internal/config"
	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/media"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/snapshot"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/fallback"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchcentre/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/matchcentre/internal/platform/cache"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/platform/resilience"
)

const (
	snapshotSourceFootballData = "footballdata"
	snapshotSourceMedia        = "media"
)

type repositories struct {
	competitions competition.Repository
	teams        team.Repository
	standings    standing.Repository
	scorers      scorer.Repository
	matches      match.Repository
	media        media.Repository
}

// buildRepositories stacks each upstream reader as
// client -> snapshot fallback -> TTL cache.
func buildRepositories(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (repositories, error) {
	client, err := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return repositories{}, fmt.Errorf("build football-data client: %w", err)
	}

	mediaCfg := mediaclient.ClientConfig{
		Timeout: cfg.NewsTimeout,
		Logger:  logger,
	}
	if cfg.NewsEnabled {
		mediaCfg.NewsSourceURL = cfg.NewsSourceURL
		mediaCfg.NewsSourceLabel = cfg.NewsSourceLabel
		mediaCfg.NewsItemSel = cfg.NewsItemSelector
		mediaCfg.NewsTitleSel = cfg.NewsTitleSelector
	}
	if cfg.VideosEnabled {
		mediaCfg.VideosFeedURL = cfg.VideosFeedURL
		mediaCfg.VideosToken = cfg.VideosToken
	}
	mediaClient, err := mediaclient.NewClient(mediaCfg)
	if err != nil {
		return repositories{}, fmt.Errorf("build media client: %w", err)
	}

	repos := repositories{
		competitions: memory.NewCompetitionRepository(cfg.Competitions),
		teams:        footballdata.NewTeamRepository(client),
		standings:    footballdata.NewStandingRepository(client),
		scorers:      footballdata.NewScorerRepository(client),
		matches:      footballdata.NewMatchRepository(client),
		media:        mediaClient,
	}

	if cfg.SnapshotEnabled {
		store := snapshotStore(db)
		upstream := fallback.NewSnapshots(store, snapshotSourceFootballData, logger)
		repos.teams = fallback.NewTeamRepository(repos.teams, upstream)
		repos.standings = fallback.NewStandingRepository(repos.standings, upstream)
		repos.scorers = fallback.NewScorerRepository(repos.scorers, upstream)
		repos.matches = fallback.NewMatchRepository(repos.matches, upstream)
		repos.media = fallback.NewMediaRepository(repos.media, fallback.NewSnapshots(store, snapshotSourceMedia, logger))
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.standings = cache.NewStandingRepository(repos.standings, store)
		repos.scorers = cache.NewScorerRepository(repos.scorers, store)
		repos.matches = cache.NewMatchRepository(repos.matches, store)
		repos.media = cache.NewMediaRepository(repos.media, store)
	}

	return repos, nil
}

func snapshotStore(db *sqlx.DB) snapshot.Repository {
	if db != nil {
		return postgres.NewSnapshotRepository(db)
	}
	return memory.NewSnapshotRepository()
}
