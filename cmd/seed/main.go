package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/db"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/migrate"
)

// seed loads the storefront catalog file into the products table, upserting
// by product id so it can be re-run after catalog edits.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := pflag.StringP("file", "f", "", "catalog JSON file (defaults to the embedded catalog)")
	dryRun := pflag.Bool("dry-run", false, "validate the catalog without writing")
	runMigrations := pflag.Bool("migrate", false, "apply pending migrations before seeding")
	pflag.Parse()

	products, err := catalog.NewSeedLoader(*file).Load(ctx)
	requireResource(ctx, logg, "catalog file", err)

	// reject duplicate ids and slugs before touching the database
	_, err = catalog.NewStore(products)
	requireResource(ctx, logg, "catalog contents", err)

	if *dryRun {
		fmt.Printf("catalog valid: %d products\n", len(products))
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	requireResource(ctx, logg, "database config", cfg.RequireDatabase())

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"driver":   dbClient.Driver(),
		"products": len(products),
	})

	if *runMigrations {
		sqlDB, err := dbClient.DB().DB()
		requireResource(ctx, logg, "sql database", err)
		requireResource(ctx, logg, "migrations", migrate.Run(ctx, sqlDB, dbClient.Driver(), migrate.DirFor(dbClient.Driver()), "up"))
	}

	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return catalog.NewRepository(tx).Upsert(ctx, products)
	})
	requireResource(ctx, logg, "upsert products", err)

	logg.Info(ctx, "catalog seeded")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
