package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/matchcentre/internal/domain/competition"
	"github.com/riskibarqy/matchcentre/internal/domain/session"
	"github.com/riskibarqy/matchcentre/internal/domain/snapshot"
)

func TestCompetitionRepository_ListKeepsOrderAndNormalizesCodes(t *testing.T) {
	t.Parallel()

	repo := NewCompetitionRepository([]competition.Competition{
		{Code: " pl ", Name: "Premier League"},
		{Code: "PD", Name: "Primera Division"},
		{Code: "", Name: "Ignored"},
	})

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 2 || items[0].Code != "PL" || items[1].Code != "PD" {
		t.Fatalf("unexpected catalog: %+v", items)
	}

	item, ok, err := repo.GetByCode(context.Background(), "pl")
	if err != nil || !ok {
		t.Fatalf("GetByCode pl: ok=%v err=%v", ok, err)
	}
	if item.Name != "Premier League" {
		t.Fatalf("unexpected competition: %+v", item)
	}

	if _, ok, _ := repo.GetByCode(context.Background(), "XX"); ok {
		t.Fatalf("expected unknown code to be missing")
	}
}

func TestSnapshotRepository_UpsertReplacesPayload(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository()
	ctx := context.Background()
	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.Upsert(ctx, snapshot.Snapshot{Source: "footballdata", Key: "k", PayloadJSON: []byte(`[1]`), PayloadHash: "a", FetchedAt: first}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if err := repo.Upsert(ctx, snapshot.Snapshot{Source: "footballdata", Key: "k", PayloadJSON: []byte(`[1]`), PayloadHash: "a", FetchedAt: first.Add(time.Hour)}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	item, ok, err := repo.Get(ctx, "footballdata", "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !item.FetchedAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("expected fetched_at to be refreshed, got %s", item.FetchedAt)
	}

	if err := repo.Upsert(ctx, snapshot.Snapshot{Source: "footballdata", Key: "k", PayloadJSON: []byte(`[2]`), PayloadHash: "b", FetchedAt: first}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	item, _, _ = repo.Get(ctx, "footballdata", "k")
	if string(item.PayloadJSON) != `[2]` {
		t.Fatalf("expected payload to be replaced, got %s", item.PayloadJSON)
	}

	if _, ok, _ := repo.Get(ctx, "media", "k"); ok {
		t.Fatalf("snapshots must be scoped by source")
	}
}

func TestSessionRepository_SaveCopiesState(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository()
	ctx := context.Background()
	state := session.State{SessionID: "s1", FollowedTeamIDs: []int64{57}}

	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	state.FollowedTeamIDs[0] = 99

	loaded, ok, err := repo.Load(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if loaded.FollowedTeamIDs[0] != 57 {
		t.Fatalf("stored state shares memory with caller: %+v", loaded)
	}

	if _, ok, _ := repo.Load(ctx, "missing"); ok {
		t.Fatalf("expected missing session")
	}
}
