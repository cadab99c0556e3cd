package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/fantasy-tour/internal/app"
	"github.com/riskibarqy/fantasy-tour/internal/config"
	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelInfo).With("component", "migration")

// migrationCommand runs against an open migrator. args excludes the command
// name itself.
type migrationCommand struct {
	usage string
	run   func(m *migrate.Migrate, args []string) error
}

var migrationCommands = map[string]migrationCommand{
	"up": {"up", func(m *migrate.Migrate, _ []string) error {
		return m.Up()
	}},
	"down": {"down [steps]", func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return m.Steps(-steps)
	}},
	"goto": {"goto <version>", func(m *migrate.Migrate, args []string) error {
		target, err := versionArg(args)
		if err != nil {
			return err
		}
		return m.Migrate(uint(target))
	}},
	"force": {"force <version>", func(m *migrate.Migrate, args []string) error {
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		return m.Force(version)
	}},
	"version": {"version", func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Println("version: none\ndirty: false")
			return nil
		case err != nil:
			return err
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		return nil
	}},
}

func main() {
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		usage()
	}
	name, args := strings.ToLower(strings.TrimSpace(os.Args[1])), os.Args[2:]
	if name == "migrate" {
		name = "goto"
	}

	cfg := config.Config{
		DBURL:     strings.TrimSpace(os.Getenv("DB_URL")),
		DBSSLMode: strings.TrimSpace(os.Getenv("DB_SSLMODE")),
	}
	if cfg.DBURL == "" {
		fatal("DB_URL is required")
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}

	if name == "seed" {
		if err := seed(cfg); err != nil {
			fatal("seed database", "error", err)
		}
		logger.Info("seed applied")
		return
	}

	cmd, ok := migrationCommands[name]
	if !ok {
		usage()
	}

	dir, err := migrationsDir()
	if err != nil {
		fatal("resolve migrations dir", "error", err)
	}
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, app.NormalizeDBURL(cfg.DBURL, cfg.DBSSLMode))
	if err != nil {
		fatal("create migrator", "error", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	switch err := cmd.run(m, args); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes", "command", name)
	case err != nil:
		fatal("migration failed", "command", name, "error", err)
	default:
		logger.Info("migration done", "command", name, "source", source)
	}
}

func versionArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return int(v), nil
}

// seed loads the demo catalog and tour calendar into an empty database.
func seed(cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := app.OpenDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return postgres.BootstrapSeed(ctx, db, time.Now().UTC())
}

// migrationsDir picks the first existing directory from MIGRATIONS_DIR,
// MIGRATIONS_PATH and the repo and container defaults.
func migrationsDir() (string, error) {
	for _, candidate := range []string{
		os.Getenv("MIGRATIONS_DIR"),
		os.Getenv("MIGRATIONS_PATH"),
		"./db/migrations",
		"/app/db/migrations",
	} {
		candidate = strings.TrimSpace(candidate)
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
	return "", errors.New("no migration directory found")
}

func fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	_ = logger.Sync()
	os.Exit(1)
}

func usage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", bin)
	for _, name := range []string{"up", "down", "goto", "force", "version"} {
		fmt.Fprintf(os.Stderr, "  %s\n", migrationCommands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "  seed")
	os.Exit(2)
}
