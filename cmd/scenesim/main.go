package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/udisondev/gatekeep/internal/config"
	"github.com/udisondev/gatekeep/internal/db"
	"github.com/udisondev/gatekeep/internal/journal"
	"github.com/udisondev/gatekeep/internal/plot"
	"github.com/udisondev/gatekeep/internal/scene"
)

const SceneConfigPath = "config/scene.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := SceneConfigPath
	if p := os.Getenv("GATEKEEP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadScene(cfgPath)
	if err != nil {
		return fmt.Errorf("loading scene config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Per-tick logs only at debug
	scene.EnableDebugLogging(logLevel == slog.LevelDebug)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", cfgPath, err)
	}

	slog.Info("scenesim starting",
		"config", cfgPath,
		"seed", cfg.Seed,
		"tick", cfg.Tick,
		"duration", cfg.Duration,
		"realtime", cfg.Realtime)

	var (
		opts  []journal.Option
		repo  *db.JournalRepository
		runID int64
	)
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = db.NewJournalRepository(database.Pool())
		runID, err = repo.CreateRun(ctx, cfg.Seed, cfgPath)
		if err != nil {
			return err
		}
		opts = append(opts, journal.WithSink(db.RunSink{Repo: repo, RunID: runID}, journal.DefaultBatchSize))
		slog.Info("journal run created", "runID", runID)
	}

	rec := journal.NewRecorder(opts...)
	sc, err := buildScene(cfg, rec)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := rec.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("journal sink: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer rec.Close()
		return runTicks(gctx, sc.mgr, cfg)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("scene error: %w", err)
	}

	digest := rec.Digest()
	if n := rec.Dropped(); n > 0 {
		slog.Warn("journal events not persisted", "dropped", n)
	}
	if repo != nil {
		if err := repo.FinishRun(ctx, runID, digest); err != nil {
			return err
		}
	}

	if cfg.PlotDir != "" {
		paths, err := plot.SaveAll(cfg.PlotDir, rec.Traces())
		if err != nil {
			return fmt.Errorf("saving plots: %w", err)
		}
		slog.Info("plots saved", "dir", cfg.PlotDir, "files", len(paths))
	}

	printSummary(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), sc.summary(rec))
	return nil
}

// runTicks drives the scene for cfg.Duration of scene time, either as fast
// as possible or paced by the wall clock. Interruption is not an error.
func runTicks(ctx context.Context, mgr *scene.TickManager, cfg config.Scene) error {
	var err error
	if cfg.Realtime {
		tctx, cancel := context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
		err = mgr.Start(tctx)
	} else {
		err = mgr.RunFor(ctx, cfg.Duration)
	}

	switch {
	case err == nil, errors.Is(err, context.DeadlineExceeded):
		slog.Info("scene finished", "elapsed", mgr.Elapsed(), "ticks", mgr.Ticks())
		return nil
	case errors.Is(err, context.Canceled):
		slog.Warn("scene interrupted", "elapsed", mgr.Elapsed())
		return nil
	default:
		return fmt.Errorf("tick loop: %w", err)
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
