package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"setlist-api/internal/common/config"
	"setlist-api/internal/common/logging"
	"setlist-api/internal/common/middleware"
	"setlist-api/internal/setlist/bootstrap"
	"setlist-api/internal/setlist/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

// ============================================================
// Setlist Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("load config", "err", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := bootstrap.OpenStore(ctx, cfg, logging.Component(logger, "store"))
	defer store.Close()

	svc, err := bootstrap.NewService(cfg, store, logging.Component(logger, "service"))
	if err != nil {
		logger.Fatal("create service", "err", err)
	}

	bootstrap.Seed(ctx, svc, logging.Component(logger, "seed"))

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		AppName:      "Setlist API",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.NewHealthHandler(store, cfg.RequestTimeout()).Register(app)
	handlers.RegisterDocs(app)

	setlistHandler := handlers.NewSetlistHandler(svc, store, handlers.StoreInfo{
		URLSet:  cfg.Store.URL != "",
		NameSet: cfg.Store.Name != "",
	}, cfg.RequestTimeout(), logging.Component(logger, "http"))
	setlistHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting setlist service", "addr", cfg.Addr(), "env", cfg.Server.Environment, "store", store.Driver())
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("server stopped", "err", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}
}
