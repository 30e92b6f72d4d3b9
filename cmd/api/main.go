package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/shahzada-shah/flow-studios/api/controllers"
	"github.com/shahzada-shah/flow-studios/api/routes"
	"github.com/shahzada-shah/flow-studios/internal/cart"
	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/internal/checkout"
	"github.com/shahzada-shah/flow-studios/internal/wishlist"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/db"
	"github.com/shahzada-shah/flow-studios/pkg/env"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/metrics"
	"github.com/shahzada-shah/flow-studios/pkg/migrate"
	"github.com/shahzada-shah/flow-studios/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]controllers.Pinger{}
	var closers []func() error

	var conn *gorm.DB
	if cfg.NeedsDatabase() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		health["database"] = dbClient

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
		conn = dbClient.DB()
	}

	var state routes.StateBackend
	if cfg.FeatureFlags.UseMemoryState {
		logg.Warn(ctx, "using embedded redis for session state; carts and wishlists are lost on restart")
		embedded, err := redis.NewEmbedded(ctx, logg)
		if err != nil {
			logg.Error(ctx, "failed to start embedded redis", err)
			os.Exit(1)
		}
		closers = append(closers, embedded.Close)
		state = embedded
	} else {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		health["redis"] = redisClient
		state = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	loader, err := catalog.LoaderFor(cfg.Catalog, conn)
	if err != nil {
		logg.Error(ctx, "invalid catalog source", err)
		os.Exit(1)
	}
	store, err := catalog.Open(ctx, loader)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{"source": cfg.Catalog.Source, "products": store.Len()}), "catalog loaded")

	catalogService, err := catalog.NewService(store, cfg.Catalog, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(state, store, cfg.Session.StateTTL, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		State:    state,
		Resolver: store,
		TTL:      cfg.Session.StateTTL,
		Logger:   logg,
		Metrics:  storefrontMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create wishlist service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, cfg.Checkout)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	// platforms such as Heroku inject PORT
	addr := ":" + env.Get("PORT", cfg.App.Port)
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			State:    state,
			Gatherer: registry,
			Health:   health,
			Catalog:  catalogService,
			Cart:     cartService,
			Wishlist: wishlistService,
			Checkout: checkoutService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := server.Shutdown(shutdownCtx)
	for _, closeFn := range closers {
		errs = multierr.Append(errs, closeFn())
	}
	if errs != nil {
		logg.Error(serverCtx, "error during shutdown", errs)
		exitCode = 1
	}
	logg.Info(serverCtx, "api server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
