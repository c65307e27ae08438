package postgres

import "time"

const snapshotTable = "upstream_snapshots"

type snapshotTableModel struct {
	Source      string    `db:"source"`
	Key         string    `db:"snapshot_key"`
	Payload     string    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
