package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/dailydle/internal/api"
	"github.com/vytor/dailydle/internal/catalog"
	"github.com/vytor/dailydle/internal/config"
	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/progress"
	"github.com/vytor/dailydle/internal/services"
	"github.com/vytor/dailydle/internal/stats"
	"github.com/vytor/dailydle/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Dailydle Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_driver=%s", cfg.StoreDriver)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("lookback_depth=%d", cfg.LookbackDepth)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("warm_interval=%v", cfg.WarmInterval)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)

	// Open store. closeStore runs before every exit past this point, since
	// os.Exit skips deferred calls.
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}

	// Load catalog
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		closeStore()
		os.Exit(1)
	}
	log.Info("catalog loaded: %d monsters", cat.Len())

	days, err := daykey.LoadResolver(cfg.Timezone)
	if err != nil {
		log.Error("failed to load timezone: %v", err)
		closeStore()
		os.Exit(1)
	}

	// Initialize services
	statsStore := stats.NewStore(store, days)
	gameService := services.NewGameService(
		cat,
		days,
		progress.NewStore(store, days),
		statsStore,
		services.NewTargetCache(store),
		services.GameConfig{Lookback: cfg.LookbackDepth},
	)

	srv := &api.Server{
		GameService:  gameService,
		StatsService: services.NewStatsService(statsStore),
		Store:        store,
		CookieSecure: cfg.CookieSecure,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		worker.Schedule(gctx, pool, cfg.WarmInterval, func() worker.Job {
			return &worker.TargetWarmJob{Targets: gameService, Days: days}
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Debug("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error: %v", err)
		}

		log.Debug("stopping worker pool")
		pool.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error: %v", err)
		pool.Stop()
		closeStore()
		os.Exit(1)
	}
	closeStore()

	log.Info("===========================================")
	log.Info("Dailydle Server Stopped")
	log.Info("===========================================")
}
