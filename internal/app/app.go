// Package app assembles the storage, persistence and engine layers into a
// running counter service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/swipecount/internal/config"
	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/engine"
	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/rpggio/swipecount/internal/gesture"
	"github.com/rpggio/swipecount/internal/mcp"
	"github.com/rpggio/swipecount/internal/persist"
	"github.com/rpggio/swipecount/internal/sqlite"
)

// Options customizes Open.
type Options struct {
	// OnFeedbackExpire is called from a timer goroutine when feedback clears.
	OnFeedbackExpire func(feedback.Token)
	// HitTest marks the region where pointer gestures must not start.
	HitTest gesture.HitTest
	// IDGenerator replaces uuid-based counter ids.
	IDGenerator func() string
}

// App owns the process-wide services.
type App struct {
	DB       *sqlite.DB
	Engine   *engine.Engine
	Activity *activity.Service
	Handler  *mcp.Handler
	Writer   *persist.Writer

	cancel context.CancelFunc
	logger *slog.Logger
}

// Open restores the counter collection from cfg.DB.Path and starts the
// background snapshot writer. A missing or unreadable snapshot starts from
// the default collection.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	snapshots := sqlite.NewSnapshotRepository(db, sqlite.CountersKey)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	writer := persist.NewWriter(snapshots, activitySvc, logger)

	restored := counter.Restore(ctx, snapshots, logger)
	storeOpts := []counter.Option{counter.WithPersister(writer), counter.WithLogger(logger)}
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, counter.WithIDGenerator(opts.IDGenerator))
	}
	store := counter.NewStore(restored, storeOpts...)
	logger.Info("counters loaded", "count", store.Len(), "restored", restored != nil)

	var signalOpts []feedback.Option
	if opts.OnFeedbackExpire != nil {
		signalOpts = append(signalOpts, feedback.WithExpireHook(opts.OnFeedbackExpire))
	}
	signal := feedback.NewSignal(cfg.Feedback.Duration, signalOpts...)

	eng := engine.New(store, signal,
		engine.WithConfig(cfg.ClassifierConfig()),
		engine.WithHitTest(opts.HitTest),
		engine.WithLogger(logger),
	)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	go writer.Run(runCtx)

	return &App{
		DB:       db,
		Engine:   eng,
		Activity: activitySvc,
		Handler:  mcp.NewHandler(eng, activitySvc),
		Writer:   writer,
		cancel:   cancel,
		logger:   logger,
	}, nil
}

// Close stops the writer after a final flush and closes the database.
func (a *App) Close() error {
	a.cancel()
	<-a.Writer.Done()
	return a.DB.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
