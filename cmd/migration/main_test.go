package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

type fakeMigrator struct {
	upErr   error
	steps   []int
	target  uint
	forced  int
	version uint
	dirty   bool
	verErr  error
}

func (f *fakeMigrator) Up() error                  { return f.upErr }
func (f *fakeMigrator) Steps(n int) error          { f.steps = append(f.steps, n); return nil }
func (f *fakeMigrator) Migrate(version uint) error { f.target = version; return nil }
func (f *fakeMigrator) Force(version int) error    { f.forced = version; return nil }
func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.verErr
}

func TestExecute(t *testing.T) {
	logger := logging.NewNop()

	t.Run("up treats no change as success", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange}
		if err := execute(m, "up", nil, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("up: %v", err)
		}
	})

	t.Run("up surfaces failures", func(t *testing.T) {
		m := &fakeMigrator{upErr: errors.New("dirty database")}
		if err := execute(m, "up", nil, &bytes.Buffer{}, logger); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := execute(m, "down", nil, &bytes.Buffer{}, logger); err != nil {
			t.Fatalf("down: %v", err)
		}
		if len(m.steps) != 1 || m.steps[0] != -1 {
			t.Fatalf("expected one step back, got %v", m.steps)
		}
	})

	t.Run("down rejects zero", func(t *testing.T) {
		if err := execute(&fakeMigrator{}, "down", []string{"0"}, &bytes.Buffer{}, logger); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("goto and force", func(t *testing.T) {
		m := &fakeMigrator{}
		if err := execute(m, "goto", []string{"2"}, &bytes.Buffer{}, logger); err != nil || m.target != 2 {
			t.Fatalf("goto: err=%v target=%d", err, m.target)
		}
		if err := execute(m, "force", []string{"1"}, &bytes.Buffer{}, logger); err != nil || m.forced != 1 {
			t.Fatalf("force: err=%v forced=%d", err, m.forced)
		}
		if err := execute(m, "goto", nil, &bytes.Buffer{}, logger); !errors.Is(err, errUsage) {
			t.Fatalf("expected usage error, got %v", err)
		}
	})

	t.Run("version prints state", func(t *testing.T) {
		var out bytes.Buffer
		if err := execute(&fakeMigrator{version: 2, dirty: true}, "version", nil, &out, logger); err != nil {
			t.Fatalf("version: %v", err)
		}
		if out.String() != "version: 2\ndirty: true\n" {
			t.Fatalf("unexpected output %q", out.String())
		}

		out.Reset()
		if err := execute(&fakeMigrator{verErr: migrate.ErrNilVersion}, "version", nil, &out, logger); err != nil {
			t.Fatalf("version: %v", err)
		}
		if !strings.HasPrefix(out.String(), "version: none") {
			t.Fatalf("unexpected output %q", out.String())
		}
	})
}

func TestRun_UsageErrors(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"sideways"}, &bytes.Buffer{}, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}

	if _, err := resolveMigrationsDir(filepath.Join(dir, "missing")); err == nil {
		if _, statErr := os.Stat("./db/migrations"); statErr != nil {
			t.Fatalf("expected error for missing directory")
		}
	}
}
