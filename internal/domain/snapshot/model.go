package snapshot

import (
	"context"
	"time"
)

// Snapshot is the last upstream payload that was read successfully.
type Snapshot struct {
	Source      string
	Key         string
	PayloadJSON []byte
	PayloadHash string
	FetchedAt   time.Time
}

// Repository keeps one snapshot per source and key.
type Repository interface {
	Get(ctx context.Context, source, key string) (Snapshot, bool, error)
	Upsert(ctx context.Context, item Snapshot) error
}
