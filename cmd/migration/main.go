package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")))
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	command := strings.ToLower(strings.TrimSpace(args[0]))
	if !knownCommand(command) {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	dir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}

	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	logger = logger.With("command", command, "source", sourceURL)
	return execute(m, command, args[1:], out, logger)
}

func knownCommand(command string) bool {
	switch command {
	case "up", "down", "version", "force", "goto":
		return true
	default:
		return false
	}
}

func execute(m migrator, command string, args []string, out io.Writer, logger *logging.Logger) error {
	switch command {
	case "up":
		return applied(m.Up(), logger, "migrations applied")
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return applied(m.Steps(-steps), logger, "migrations rolled back", "steps", steps)
	case "goto":
		if len(args) == 0 {
			return fmt.Errorf("%w: goto requires a target version", errUsage)
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[0], err)
		}
		return applied(m.Migrate(uint(target)), logger, "migrated", "version", target)
	case "force":
		if len(args) == 0 {
			return fmt.Errorf("%w: force requires a version", errUsage)
		}
		version, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid force version %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("version forced", "version", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// applied treats migrate.ErrNoChange as success.
func applied(err error, logger *logging.Logger, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

// resolveMigrationsDir returns the first existing directory among the
// override and the conventional local and container paths.
func resolveMigrationsDir(override string) (string, error) {
	for _, candidate := range []string{strings.TrimSpace(override), "./db/migrations", "/app/db/migrations"} {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down [n]|goto <version>|force <version>|version>\n", name)
	fmt.Fprintln(w, "env: DB_URL (required), MIGRATIONS_DIR")
}
