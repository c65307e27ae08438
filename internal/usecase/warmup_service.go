package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/match"
	"github.com/riskibarqy/matchcentre/internal/domain/scorer"
	"github.com/riskibarqy/matchcentre/internal/domain/standing"
	"github.com/riskibarqy/matchcentre/internal/domain/team"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"

	warmupKindTeams     = "teams"
	warmupKindStandings = "standings"
	warmupKindScorers   = "scorers"
	warmupKindMatches   = "matches"
)

var warmupKinds = []string{warmupKindTeams, warmupKindStandings, warmupKindScorers, warmupKindMatches}

type WarmupInput struct {
	// CompetitionCodes narrows the run; empty means the whole catalog.
	CompetitionCodes []string
	MaxWorkers       int
}

type WarmupResult struct {
	CompetitionCount int                `json:"competitionCount"`
	TaskCount        int                `json:"taskCount"`
	SuccessCount     int                `json:"successCount"`
	FailedCount      int                `json:"failedCount"`
	WorkerCount      int                `json:"workerCount"`
	Tasks            []WarmupTaskResult `json:"tasks"`
}

type WarmupTaskResult struct {
	Competition string `json:"competition"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	Records     int    `json:"records"`
	DurationMs  int64  `json:"durationMs"`
	Message     string `json:"message,omitempty"`
}

type warmupTask struct {
	code string
	kind string
}

// WarmupService prefetches every catalog competition through the decorated
// repositories so caches and snapshots are populated before clients ask.
type WarmupService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
	standingRepo    standing.Repository
	scorerRepo      scorer.Repository
	matchRepo       match.Repository
	maxWorkers      int
	logger          *logging.Logger
	newPool         func(size int) (taskPool, error)
}

type taskPool interface {
	Submit(task func()) error
	Release()
}

func newAntsPool(size int) (taskPool, error) {
	return ants.NewPool(size)
}

func NewWarmupService(
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	scorerRepo scorer.Repository,
	matchRepo match.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *WarmupService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmupService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		standingRepo:    standingRepo,
		scorerRepo:      scorerRepo,
		matchRepo:       matchRepo,
		maxWorkers:      maxWorkers,
		logger:          logger,
		newPool:         newAntsPool,
	}
}

func (s *WarmupService) Run(ctx context.Context, input WarmupInput) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.Run")
	defer span.End()

	codes, err := s.resolveCodes(ctx, input.CompetitionCodes)
	if err != nil {
		return WarmupResult{}, err
	}

	tasks := make([]warmupTask, 0, len(codes)*len(warmupKinds))
	for _, code := range codes {
		for _, kind := range warmupKinds {
			tasks = append(tasks, warmupTask{code: code, kind: kind})
		}
	}

	workerCount := normalizeWorkerCount(input.MaxWorkers, s.maxWorkers, len(tasks))
	result := WarmupResult{
		CompetitionCount: len(codes),
		TaskCount:        len(tasks),
		WorkerCount:      workerCount,
		Tasks:            make([]WarmupTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan WarmupTaskResult, len(tasks))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := s.newPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	var submitErr error
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			records, err := s.runTask(ctx, task)
			row := WarmupTaskResult{
				Competition: task.code,
				Kind:        task.kind,
				Status:      warmupStatusSuccess,
				Records:     records,
				DurationMs:  time.Since(start).Milliseconds(),
			}
			if err != nil {
				row.Status = warmupStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "warmup task failed",
					"competition", task.code,
					"kind", task.kind,
					"error", err,
				)
			} else {
				successCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit task to worker pool: %w", err)
			break
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Competition != result.Tasks[j].Competition {
			return result.Tasks[i].Competition < result.Tasks[j].Competition
		}
		return result.Tasks[i].Kind < result.Tasks[j].Kind
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	if submitErr != nil {
		return result, submitErr
	}
	s.logger.InfoContext(ctx, "warmup finished",
		"competitions", result.CompetitionCount,
		"tasks", result.TaskCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// Loop runs the warmup every interval until ctx is cancelled.
func (s *WarmupService) Loop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Run(ctx, WarmupInput{}); err != nil {
				s.logger.WarnContext(ctx, "scheduled warmup failed", "error", err)
			}
		}
	}
}

func (s *WarmupService) runTask(ctx context.Context, task warmupTask) (int, error) {
	switch task.kind {
	case warmupKindTeams:
		items, err := s.teamRepo.ListByCompetition(ctx, task.code)
		return len(items), err
	case warmupKindStandings:
		items, err := s.standingRepo.ListByCompetition(ctx, task.code)
		return len(items), err
	case warmupKindScorers:
		items, err := s.scorerRepo.ListByCompetition(ctx, task.code, maxLeaderboardLimit)
		return len(items), err
	case warmupKindMatches:
		items, err := s.matchRepo.ListByCompetition(ctx, task.code, match.Filter{})
		return len(items), err
	default:
		return 0, fmt.Errorf("unknown warmup kind %q", task.kind)
	}
}

func (s *WarmupService) resolveCodes(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) == 0 {
		items, err := s.competitionRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list competitions: %w", err)
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, item.Code)
		}
		return out, nil
	}

	out := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, raw := range requested {
		item, err := resolveCompetition(ctx, s.competitionRepo, raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[item.Code]; ok {
			continue
		}
		seen[item.Code] = struct{}{}
		out = append(out, item.Code)
	}
	return out, nil
}

func normalizeWorkerCount(requested, fallback, taskCount int) int {
	count := requested
	if count <= 0 || count > fallback {
		count = fallback
	}
	if count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
