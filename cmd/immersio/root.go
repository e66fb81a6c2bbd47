package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/immersio/immersio/internal/agent"
	"github.com/immersio/immersio/internal/api"
	"github.com/immersio/immersio/internal/config"
	"github.com/immersio/immersio/internal/history"
	"github.com/immersio/immersio/internal/language"
	"github.com/immersio/immersio/internal/watch"
	"github.com/immersio/immersio/internal/worker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "immersio",
	Short: "Immersio - language immersion tutoring service",
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Initialize logger
	slog.SetDefault(newLogger(cfg.Log))
	slog.Info("configuration loaded", "level", cfg.Log.Level)

	// 4. Initialize language manager
	manager, err := language.NewManager(cfg.Data.Root)
	if err != nil {
		return err
	}
	slog.Info("language manager initialized", "root", manager.Root())

	// 5. Initialize agent service
	runner := agent.NewRunner(cfg.Agent.Binary, cfg.Agent.ExtraArgs,
		time.Duration(cfg.Agent.ResponderTimeout),
		time.Duration(cfg.Agent.TrackerTimeout))
	chat := agent.NewService(runner)
	slog.Info("agent service initialized", "binary", cfg.Agent.Binary)

	// 6. Initialize transcript reader
	reader, err := history.NewReader()
	if err != nil {
		return err
	}

	// 7. Initialize state watcher
	hub := watch.NewHub()
	watcher, err := watch.New(manager.Root(), hub)
	if err != nil {
		return err
	}

	// 8. Initialize HTTP router
	handler := api.NewHandler(manager, chat, reader, hub,
		cfg.Auth.APIKey, Version, cfg.Agent.MaxMessageLength)
	router := api.NewRouter(handler)

	// 9. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 10. Worker lifecycle infrastructure
	var wg sync.WaitGroup
	startWorker(ctx, &wg, "state-watcher", watcher.Run)
	if interval := time.Duration(cfg.Worker.DigestInterval); interval > 0 {
		digest := worker.NewDigestCoordinator(manager, interval)
		startWorker(ctx, &wg, "digest-coordinator", digest.Run)
	}

	// 11. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called
		// gracefully. Anything else is a real failure.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// 12. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 13. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	wg.Wait()

	slog.Info("shutdown complete")
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context
// cancellation. Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
