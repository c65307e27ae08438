package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/matchcentre/internal/domain/snapshot"
	qb "github.com/riskibarqy/matchcentre/internal/platform/querybuilder"
)

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Get(ctx context.Context, source, key string) (snapshot.Snapshot, bool, error) {
	query, args, err := qb.Select(qb.Columns(snapshotTableModel{})...).
		From(snapshotTable).
		Where(
			qb.Eq("source", source),
			qb.Eq("snapshot_key", key),
		).
		ToSQL()
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("build get snapshot query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isPreparedStatementFailure(err) {
			return r.getSingleParam(ctx, source, key)
		}
		if isNotFound(err) {
			return snapshot.Snapshot{}, false, nil
		}
		return snapshot.Snapshot{}, false, fmt.Errorf("get snapshot source=%s key=%s: %w", source, key, err)
	}

	return snapshotFromRow(row), true, nil
}

// getSingleParam retries the lookup with both values packed in one array
// parameter, which survives statement reuse behind a transaction pooler.
func (r *SnapshotRepository) getSingleParam(ctx context.Context, source, key string) (snapshot.Snapshot, bool, error) {
	query, _, err := qb.Select(qb.Columns(snapshotTableModel{})...).
		From(snapshotTable).
		Where(
			qb.Expr("source = ($1::text[])[1]"),
			qb.Expr("snapshot_key = ($1::text[])[2]"),
		).
		ToSQL()
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("build get snapshot single param query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, pq.Array([]string{source, key})); err != nil {
		if isNotFound(err) {
			return snapshot.Snapshot{}, false, nil
		}
		return snapshot.Snapshot{}, false, fmt.Errorf("get snapshot fallback source=%s key=%s: %w", source, key, err)
	}

	return snapshotFromRow(row), true, nil
}

func (r *SnapshotRepository) Upsert(ctx context.Context, item snapshot.Snapshot) error {
	insertModel := snapshotTableModel{
		Source:      item.Source,
		Key:         item.Key,
		Payload:     string(item.PayloadJSON),
		PayloadHash: item.PayloadHash,
		FetchedAt:   item.FetchedAt,
	}

	query, args, err := qb.InsertModel(snapshotTable, insertModel, "source", "snapshot_key")
	if err != nil {
		return fmt.Errorf("build upsert snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert snapshot source=%s key=%s: %w", item.Source, item.Key, err)
	}

	return nil
}

func snapshotFromRow(row snapshotTableModel) snapshot.Snapshot {
	return snapshot.Snapshot{
		Source:      row.Source,
		Key:         row.Key,
		PayloadJSON: []byte(row.Payload),
		PayloadHash: row.PayloadHash,
		FetchedAt:   row.FetchedAt,
	}
}
