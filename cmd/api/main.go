package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/medimart/marketplace-service/internal/api/http"
	"github.com/medimart/marketplace-service/internal/api/http/handlers"
	"github.com/medimart/marketplace-service/internal/auth"
	"github.com/medimart/marketplace-service/internal/cache"
	"github.com/medimart/marketplace-service/internal/config"
	"github.com/medimart/marketplace-service/internal/observability"
	"github.com/medimart/marketplace-service/internal/persistence"
	"github.com/medimart/marketplace-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var documents store.Store
	if pool := pg.PoolHandle(); pool != nil {
		documents = store.NewPostgresStore(pool)
	} else {
		logger.Warn("running with in-memory store; data will not survive restarts")
		documents = store.NewMemoryStore()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authMiddleware := auth.NewMiddleware(tokens)
	listCache := cache.New(redis.Client)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(documents.Collection("users"), tokens),
		Catalog:        handlers.NewCatalogHandler(documents.Collection("categories"), documents.Collection("products"), listCache, logger),
		Orders:         handlers.NewOrdersHandler(documents.Collection("orders"), documents.Collection("payments")),
		Banners:        handlers.NewBannersHandler(documents.Collection("banners")),
		Rentals:        handlers.NewRentalsHandler(documents.Collection("cars"), documents.Collection("bookings")),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
