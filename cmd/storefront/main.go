package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hfchoice/storefront/internal/app"
	"github.com/hfchoice/storefront/internal/cart"
	"github.com/hfchoice/storefront/internal/catalog"
	"github.com/hfchoice/storefront/internal/checkout"
	"github.com/hfchoice/storefront/internal/identity"
	"github.com/hfchoice/storefront/internal/mailer"
	"github.com/hfchoice/storefront/internal/observability"
	"github.com/hfchoice/storefront/internal/orders"
	"github.com/hfchoice/storefront/internal/platform/cache"
	"github.com/hfchoice/storefront/internal/platform/db"
	"github.com/hfchoice/storefront/internal/users"
	"github.com/hfchoice/storefront/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Redis only backs the catalog cache and the job queue; the
		// storefront itself stays up without it.
		logger.Warn("redis unavailable", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Warn("job client", slog.Any("error", err))
	} else {
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	guard := users.Middleware{Service: usersService, Logger: logger}
	usersHandler := users.NewHandler(logger, usersService, guard)

	catalogRepo := catalog.NewRepository(dbpool)
	catalogCache := catalog.NewCache(redisClient, cfg.CatalogCacheTTL)
	catalogService := catalog.NewService(catalogRepo, catalogCache)
	catalogHandler := catalog.NewHandler(logger, catalogService, guard)

	cartRepo := cart.NewRepository(dbpool)
	cartService := cart.NewService(cartRepo, catalogService)
	cartHandler := cart.NewHandler(logger, cartService, guard, jobClient)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo)
	ordersHandler := orders.NewHandler(logger, ordersService, usersService)

	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	checkoutService := checkout.NewService(ordersRepo, mail, cfg.StaffEmail)
	checkoutHandler := checkout.NewHandler(logger, checkoutService, metrics)

	auth := identity.Middleware{
		Verifier: identity.NewJWTVerifier(cfg.AuthJWTSecret),
		Logger:   logger,
	}

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Auth:            auth,
		UsersHandler:    usersHandler,
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
		OrdersHandler:   ordersHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
