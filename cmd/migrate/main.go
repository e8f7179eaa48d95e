package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	identityapp "github.com/grocery/backend/internal/application/identity"
	"github.com/grocery/backend/internal/domain/identity"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/infrastructure/config"
	"github.com/grocery/backend/internal/infrastructure/logger"
	"github.com/grocery/backend/internal/infrastructure/migration"
	"github.com/grocery/backend/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "migrations", "Path to the migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(args, migrationsPath, log); err != nil {
		log.Fatal("migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(args []string, migrationsPath string, log *zap.Logger) error {
	command := args[0]

	// Commands that only touch the filesystem
	switch command {
	case "create":
		if len(args) < 2 {
			return errors.New("usage: migrate create <name>")
		}
		f, err := migration.Create(migrationsPath, args[1])
		if err != nil {
			return err
		}
		log.Info("migration created",
			zap.Uint("version", f.Version),
			zap.String("up", f.UpPath),
			zap.String("down", f.DownPath))
		return nil
	case "list":
		files, err := migration.List(migrationsPath)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("  %06d  %s\n", f.Version, f.Name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if command == "seed-admin" {
		return seedAdmin(args[1:], cfg, log)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative, got %d", v)
		}
		return m.GoTo(uint(v))
	case "force":
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(v)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, what string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[1])
	}
	return n, nil
}

// seedAdmin creates the first administrator and makes sure role permissions exist
func seedAdmin(args []string, cfg *config.Config, log *zap.Logger) error {
	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	email := fs.String("email", "", "Administrator email")
	password := fs.String("password", os.Getenv("GROCERY_ADMIN_PASSWORD"), "Administrator password (or GROCERY_ADMIN_PASSWORD)")
	name := fs.String("name", "Administrator", "Administrator display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("seed-admin requires -email and -password")
	}

	database, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := persistence.NewGormPermissionRepository(database.DB).Seed(ctx); err != nil {
		return fmt.Errorf("seed role permissions: %w", err)
	}

	users := identityapp.NewUserService(persistence.NewGormUserRepository(database.DB), nil, 0, log)
	admin, err := users.Create(ctx, uuid.Nil, identityapp.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     identity.RoleAdmin.String(),
	})
	if errors.Is(err, shared.ErrAlreadyExists) {
		log.Info("administrator already exists", zap.String("email", *email))
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("administrator created", zap.String("user_id", admin.ID.String()))
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Grocery database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                     Apply all pending migrations
  down                   Roll back all migrations
  step <n>               Apply n migrations (negative rolls back)
  goto <version>         Migrate up or down to a version
  version                Show the applied version
  force <version>        Mark a version as applied without running it
  create <name>          Create the next numbered migration pair
  list                   List migrations on disk
  seed-admin -email E -password P [-name N]
                         Create the first administrator

Flags:
  -path string           Migrations directory (default "migrations")
  -log-level string      debug, info, warn, error (default "info")

Database settings are read from config.toml and GROCERY_DATABASE_* variables.
`)
}
