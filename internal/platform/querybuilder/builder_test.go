package querybuilder

import (
	"reflect"
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("source", "cache_key", "payload").
		From("upstream_snapshots").
		Where(Eq("source", "footballdata"), Eq("cache_key", "/competitions/PL/teams"), IsNull("deleted_at")).
		OrderBy("fetched_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT source, cache_key, payload FROM upstream_snapshots WHERE source = $1 AND cache_key = $2 AND deleted_at IS NULL ORDER BY fetched_at DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"footballdata", "/competitions/PL/teams"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type sessionRow struct {
	SessionID string    `db:"session_id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
	internal  string
	Ignored   string `db:"-"`
}

func TestInsertModelUpsert(t *testing.T) {
	now := time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("app_sessions", sessionRow{SessionID: "s1", Payload: []byte("{}"), UpdatedAt: now}, "session_id")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO app_sessions (session_id, payload, updated_at) VALUES ($1, $2, $3) " +
		"ON CONFLICT (session_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(&sessionRow{}); !reflect.DeepEqual(cols, []string{"session_id", "payload", "updated_at"}) {
		t.Fatalf("unexpected columns: %v", cols)
	}
}

func TestDeleteBuilder(t *testing.T) {
	cutoff := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := DeleteFrom("app_sessions").
		Where(Expr("updated_at < ?", cutoff), IsNotNull("payload")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM app_sessions WHERE updated_at < $1 AND payload IS NOT NULL" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != cutoff {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("app_sessions").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to fail")
	}
}
