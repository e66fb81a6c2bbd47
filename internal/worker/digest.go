package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/immersio/immersio/internal/language"
)

// LanguageEnumerator provides access to all managed languages for digest
// generation. This abstraction allows testing with a fixture manager while
// production uses language.Manager.
type LanguageEnumerator interface {
	List(ctx context.Context) ([]language.Info, error)
	Get(ctx context.Context, name string) (*language.Language, error)
}

// DigestCoordinator periodically rebuilds every language's review digest
// so the tutor agent sees an up-to-date picture of what is due. One
// language failing never stops the sweep.
type DigestCoordinator struct {
	manager  LanguageEnumerator
	interval time.Duration
}

// NewDigestCoordinator creates a coordinator sweeping at the given
// interval.
func NewDigestCoordinator(manager LanguageEnumerator, interval time.Duration) *DigestCoordinator {
	return &DigestCoordinator{
		manager:  manager,
		interval: interval,
	}
}

// Run schedules the digest sweep and blocks until ctx is cancelled. The
// first sweep runs immediately so a freshly started server has digests
// before the first scheduled tick.
func (c *DigestCoordinator) Run(ctx context.Context) {
	slog.Info("digest coordinator started",
		"component", "worker",
		"worker", "digest-coordinator",
		"interval", c.interval.String(),
	)

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(c.interval).Do(func() { c.DigestAll(ctx) }); err != nil {
		slog.Error("failed to schedule digest sweep",
			"component", "worker",
			"worker", "digest-coordinator",
			"error", err,
		)
		return
	}
	scheduler.StartAsync()

	c.DigestAll(ctx)

	<-ctx.Done()
	scheduler.Stop()
	slog.Info("digest coordinator stopped",
		"component", "worker",
		"worker", "digest-coordinator",
		"reason", "context_cancelled",
	)
}

// DigestAll rebuilds the digest of every language once.
func (c *DigestCoordinator) DigestAll(ctx context.Context) {
	infos, err := c.manager.List(ctx)
	if err != nil {
		slog.Error("digest sweep failed to list languages",
			"component", "worker",
			"worker", "digest-coordinator",
			"error", err,
		)
		return
	}

	today := time.Now().Format("2006-01-02")
	for _, info := range infos {
		lang, err := c.manager.Get(ctx, info.Name)
		if err != nil {
			slog.Warn("digest sweep skipping language",
				"component", "worker",
				"language", info.Name,
				"error", err,
			)
			continue
		}

		digest, err := lang.State.BuildDigest(today)
		if err != nil {
			slog.Warn("digest build failed",
				"component", "worker",
				"language", info.Name,
				"error", err,
			)
			continue
		}
		if err := lang.State.WriteDigest(digest); err != nil {
			slog.Warn("digest write failed",
				"component", "worker",
				"language", info.Name,
				"error", err,
			)
			continue
		}

		slog.Debug("digest written",
			"component", "worker",
			"language", info.Name,
			"due_count", digest.DueCount,
		)
	}
}
