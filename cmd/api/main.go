package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oakzazasd/Clothes-Inventory/api/routes"
	"github.com/oakzazasd/Clothes-Inventory/internal/auditlog"
	cartsvc "github.com/oakzazasd/Clothes-Inventory/internal/cart"
	checkoutsvc "github.com/oakzazasd/Clothes-Inventory/internal/checkout"
	"github.com/oakzazasd/Clothes-Inventory/internal/items"
	"github.com/oakzazasd/Clothes-Inventory/internal/photos"
	"github.com/oakzazasd/Clothes-Inventory/internal/staffauth"
	"github.com/oakzazasd/Clothes-Inventory/pkg/auth/session"
	"github.com/oakzazasd/Clothes-Inventory/pkg/config"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
	"github.com/oakzazasd/Clothes-Inventory/pkg/metrics"
	"github.com/oakzazasd/Clothes-Inventory/pkg/migrate"
	"github.com/oakzazasd/Clothes-Inventory/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	photoStore, err := photos.NewStore(cfg.Photos, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create photo store", err)
		os.Exit(1)
	}

	staffRepo := staffauth.NewRepository(dbClient.DB())
	if err := staffauth.BootstrapAdmin(context.Background(), staffRepo, cfg.Bootstrap, cfg.Password, logg); err != nil {
		logg.Error(context.Background(), "failed to bootstrap admin user", err)
		os.Exit(1)
	}

	authService, err := staffauth.NewService(staffauth.ServiceParams{
		StaffRepo:      staffRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	itemsRepo := items.NewRepository(dbClient.DB())
	logsRepo := auditlog.NewRepository(dbClient.DB())

	itemsService, err := items.NewService(itemsRepo, dbClient, logsRepo, photoStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}

	logsService, err := auditlog.NewService(logsRepo, cfg.Listing.LogListLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit log service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, redisClient, sessionManager.TTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, itemsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	checkoutService, err := checkoutsvc.NewService(itemsRepo, dbClient, cartStore, logsRepo, checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			AuthService: authService,
			Items:       itemsService,
			Cart:        cartService,
			Checkout:    checkoutService,
			Logs:        logsService,
			Photos:      photoStore,
			Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
