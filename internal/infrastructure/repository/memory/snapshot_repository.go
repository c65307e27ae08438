package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchcentre/internal/domain/snapshot"
)

type SnapshotRepository struct {
	mu    sync.RWMutex
	items map[string]snapshot.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{items: make(map[string]snapshot.Snapshot)}
}

func (r *SnapshotRepository) Get(_ context.Context, source, key string) (snapshot.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[snapshotKey(source, key)]
	if !ok {
		return snapshot.Snapshot{}, false, nil
	}
	item.PayloadJSON = append([]byte(nil), item.PayloadJSON...)

	return item, true, nil
}

func (r *SnapshotRepository) Upsert(_ context.Context, item snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := snapshotKey(item.Source, item.Key)
	if current, ok := r.items[k]; ok && current.PayloadHash == item.PayloadHash {
		current.FetchedAt = item.FetchedAt
		r.items[k] = current
		return nil
	}

	item.PayloadJSON = append([]byte(nil), item.PayloadJSON...)
	r.items[k] = item
	return nil
}

func snapshotKey(source, key string) string {
	return source + "\x00" + key
}
