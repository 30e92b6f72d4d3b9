package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/db"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/migrate"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := pflag.StringP("cmd", "c", "up", "migration command: up|down|status|version|create|validate")
	dir := pflag.StringP("dir", "d", "", "goose migrations directory (defaults to the directory for the configured driver)")

	// Command-specific flags
	name := pflag.StringP("name", "n", "", "migration name (for create)")
	version := pflag.String("version", "", "target version (YYYYMMDDHHMMSS) for --cmd=version")

	pflag.Parse()

	// create and validate work on files only and must not need a full config
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing --name for create")
			os.Exit(1)
		}
		path, err := migrate.CreateSQLMigration(dirOrDefault(*dir, config.DBDriverPostgres), *name, time.Now().UTC())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if err := validateTree(*dir); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	requireResource(ctx, logg, "database config", cfg.RequireDatabase())

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	driver := dbClient.Driver()
	migrationsDir := dirOrDefault(*dir, driver)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"dir":    migrationsDir,
		"driver": driver,
	})
	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, driver, migrationsDir, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing --version for version command")
			os.Exit(1)
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, driver, migrationsDir, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown --cmd value:", *cmd)
		os.Exit(1)
	}
}

func dirOrDefault(dir, driver string) string {
	if dir != "" {
		return dir
	}
	return migrate.DirFor(driver)
}

// validateTree checks a single directory, or every dialect directory when
// no explicit --dir was given.
func validateTree(dir string) error {
	if dir != "" {
		return migrate.ValidateDir(dir)
	}
	for _, driver := range []string{config.DBDriverPostgres, config.DBDriverSQLite} {
		if err := migrate.ValidateDir(migrate.DirFor(driver)); err != nil {
			return fmt.Errorf("%s: %w", driver, err)
		}
	}
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
