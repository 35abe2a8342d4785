package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/fleetwise/internal/aggregation"
	corecfg "github.com/aevon-lab/fleetwise/internal/core/config"
	"github.com/aevon-lab/fleetwise/internal/core/storage"
	"github.com/aevon-lab/fleetwise/internal/core/storage/memory"
	"github.com/aevon-lab/fleetwise/internal/core/storage/postgres"
	"github.com/aevon-lab/fleetwise/internal/fleet"
	"github.com/aevon-lab/fleetwise/internal/metrics"
	"github.com/aevon-lab/fleetwise/internal/migrations"
	"github.com/aevon-lab/fleetwise/internal/seed"
	"github.com/aevon-lab/fleetwise/internal/server"
)

func main() {
	configPath := flag.String("config", "fleetwise.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"mode", cfg.Server.Mode,
		"definitions", len(cfg.Definitions))

	metricOpts, err := cfg.Metrics.Options()
	if err != nil {
		slog.Error("Invalid metrics config", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage
	store, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize record store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3. Initialize Aggregates
	aggs := aggregation.NewSet(cfg.Definitions)
	backfiller := aggregation.NewBackfiller(aggs, store, aggregation.BackfillOptions{
		ChunkSize: cfg.Aggregation.BackfillChunkSize,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Aggregation.BackfillOnStart {
		res, err := backfiller.Run(ctx)
		if err != nil {
			slog.Error("Initial backfill failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Aggregates ready", "tables", len(res.Tables), "elapsed", res.FinishedAt.Sub(res.StartedAt))
	} else {
		slog.Warn("Backfill on start disabled; aggregates start empty")
	}

	// 4. Initialize Services
	fleetSvc := fleet.NewService(store, aggs)
	metricsSvc := metrics.NewService(aggs, store, metricOpts)
	aggHandler := aggregation.NewHandler(aggs, backfiller)

	// 5. Initialize Server
	srv := server.New(
		fmtAddr(cfg.Server.Host, cfg.Server.Port),
		store,
		cfg.Server.Mode,
		int64(cfg.Server.MaxBodySizeMB)<<20,
	)
	fleetSvc.RegisterRoutes(srv.Engine)
	metricsSvc.RegisterRoutes(srv.Engine)
	aggHandler.RegisterRoutes(srv.Engine)
	if cfg.Server.Mode == "debug" {
		seed.NewSeeder(store, backfiller).RegisterRoutes(srv.Engine)
		slog.Info("Seed endpoint enabled", "path", "/v1/admin/seed")
	}

	// 6. Start Background Drift Checks
	if interval := cfg.Aggregation.DriftInterval(); interval > 0 {
		checker := aggregation.NewDriftChecker(interval, backfiller)
		go func() {
			if err := checker.Start(ctx); err != nil {
				slog.Error("Drift checker stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Drift checker disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func openStore(cfg corecfg.DatabaseConfig) (storage.RecordStore, error) {
	if cfg.Type == "memory" {
		slog.Warn("Using in-memory record store; data is lost on exit")
		return memory.NewStore(), nil
	}

	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	adapter, err := postgres.NewAdapterWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return adapter, nil
}

func newLogger(cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
