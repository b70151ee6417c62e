// Package app wires configuration, storage, the fetcher and the journal
// service together for the CLI and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/TelmenBay/leetlog/internal/cache"
	"github.com/TelmenBay/leetlog/internal/config"
	"github.com/TelmenBay/leetlog/internal/httpapi"
	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/leetcode"
	"github.com/TelmenBay/leetlog/internal/logger"
	"github.com/TelmenBay/leetlog/internal/scheduler"
	"github.com/TelmenBay/leetlog/internal/store"
)

// App holds the long-lived dependencies.
type App struct {
	Config  config.Config
	Log     *logger.Logger
	Store   *store.Store
	Journal *journal.Service

	cache cache.Cache
}

// New opens the store, connects the optional cache and builds the journal
// service. Close releases everything New acquired.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(ctx, cfg, log)
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{Config: cfg, Log: log, Store: st}

	if cfg.RedisAddr != "" {
		rc := cache.DefaultRedisConfig()
		rc.Addr = cfg.RedisAddr
		c, err := cache.NewRedisCache(ctx, rc)
		if err != nil {
			// The cache is an optimisation; run without it.
			log.Warn("metadata cache unavailable", "addr", cfg.RedisAddr, "error", err)
		} else {
			a.cache = c
		}
	}

	fetcher := leetcode.NewFetcher(cfg.Fetcher(), a.cache, log)
	a.Journal = journal.NewService(st, fetcher, log)
	return a, nil
}

func resolveDSN(cfg config.Config) (string, error) {
	if cfg.DBDriver != store.DriverSQLite {
		return cfg.DB, nil
	}
	if cfg.DB == "" {
		return store.DefaultDBPath()
	}
	return cfg.DB, store.EnsureDir(cfg.DB)
}

// Serve runs the HTTP API and the expiry sweep until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if a.Config.SweepInterval > 0 {
		sched := scheduler.New(a.Journal, a.Config.SweepInterval, a.Log)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	router := httpapi.NewRouter(httpapi.NewHandler(a.Journal), a.Log)
	return httpapi.NewServer(a.Config.HTTPAddr, router, a.Log).Run(ctx)
}

// Close releases the store and cache and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.Store.Close())
	a.Log.Sync()
	return errors.Join(errs...)
}
