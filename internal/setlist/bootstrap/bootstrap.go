// Package bootstrap turns loaded configuration into a ready store and
// service. The server and the admin CLI share it.
package bootstrap

import (
	"context"
	"time"

	"setlist-api/internal/common/config"
	"setlist-api/internal/setlist/repository"
	"setlist-api/internal/setlist/service"

	"github.com/charmbracelet/log"
)

// PingTimeout bounds the startup connectivity check.
const PingTimeout = 3 * time.Second

// StoreOptions maps the store section of cfg onto repository options.
// DATABASE_NAME doubles as the key namespace.
func StoreOptions(cfg *config.Config) repository.Options {
	return repository.Options{
		Driver:        cfg.Store.Driver,
		RedisURL:      cfg.Store.URL,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		Namespace:     cfg.Store.Name,
		SQLitePath:    cfg.Store.SQLitePath,
	}
}

// OpenStore opens the configured store. It never fails: a backend that
// cannot be opened is replaced by an UnavailableStore, and a failed ping is
// only logged, so the HTTP surface comes up either way.
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger) repository.Store {
	store, err := repository.Open(ctx, StoreOptions(cfg))
	if err != nil {
		logger.Error("store unavailable, serving errors until restart", "driver", cfg.Store.Driver, "err", err)
		return repository.NewUnavailable(cfg.Store.Driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("store not reachable yet", "driver", store.Driver(), "err", err)
	} else {
		logger.Info("store connected", "driver", store.Driver())
	}
	return store
}

// NewService builds the setlist service over store with the toggle and
// frontend settings from cfg.
func NewService(cfg *config.Config, store repository.Store, logger *log.Logger) (service.Service, error) {
	return service.New(&service.Config{
		Songs:            store,
		Sessions:         store,
		FrontendURL:      cfg.Server.FrontendURL,
		OptimisticToggle: cfg.Toggle.Optimistic,
		MaxToggleRetries: cfg.Toggle.MaxRetries,
		Logger:           logger,
	})
}

// Seed inserts the default catalog when the store is empty. Failures are
// logged and swallowed.
func Seed(ctx context.Context, svc service.Service, logger *log.Logger) {
	out, err := svc.EnsureSeeded(ctx, service.DefaultCatalog())
	if err != nil {
		logger.Warn("seeding skipped", "err", err)
		return
	}
	if out.Inserted > 0 {
		logger.Info("seeded default setlist", "songs", out.Inserted)
	}
}
