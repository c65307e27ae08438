package fallback

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/matchcentre/internal/domain/snapshot"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/usecase"
)

// Snapshots records every successful upstream read and replays the last one
// when the upstream is unavailable.
type Snapshots struct {
	repo   snapshot.Repository
	source string
	logger *logging.Logger
	now    func() time.Time
}

func NewSnapshots(repo snapshot.Repository, source string, logger *logging.Logger) *Snapshots {
	if logger == nil {
		logger = logging.Default()
	}
	return &Snapshots{
		repo:   repo,
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// load runs fetch and keeps its result as the snapshot for key. Upstream
// failures other than not-found and cancellation are answered from the
// stored snapshot when one exists.
func load[T any](ctx context.Context, s *Snapshots, key string, fetch func(context.Context) (T, error)) (T, error) {
	value, err := fetch(ctx)
	if err == nil {
		s.store(ctx, key, value)
		return value, nil
	}
	if !replayable(ctx, err) {
		return value, err
	}

	item, found, getErr := s.repo.Get(ctx, s.source, key)
	if getErr != nil {
		s.logger.WarnContext(ctx, "snapshot lookup failed", "source", s.source, "key", key, "error", getErr)
		return value, err
	}
	if !found {
		return value, err
	}

	var replay T
	if decodeErr := sonic.Unmarshal(item.PayloadJSON, &replay); decodeErr != nil {
		s.logger.WarnContext(ctx, "snapshot decode failed", "source", s.source, "key", key, "error", decodeErr)
		return value, err
	}

	s.logger.WarnContext(ctx, "upstream unavailable, serving snapshot",
		"source", s.source,
		"key", key,
		"fetched_at", item.FetchedAt,
		"error", err,
	)
	return replay, nil
}

func (s *Snapshots) store(ctx context.Context, key string, value any) {
	payload, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot encode failed", "source", s.source, "key", key, "error", err)
		return
	}

	sum := sha256.Sum256(payload)
	item := snapshot.Snapshot{
		Source:      s.source,
		Key:         key,
		PayloadJSON: payload,
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "snapshot upsert failed", "source", s.source, "key", key, "error", err)
	}
}

func replayable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, usecase.ErrNotFound) && !errors.Is(err, usecase.ErrInvalidInput)
}

func keyOf(parts ...any) string {
	return fmt.Sprint(parts...)
}
