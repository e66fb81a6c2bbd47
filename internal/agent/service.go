package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/immersio/immersio/internal/language"
)

// ErrUnknownMode indicates a conversation mode outside the fixed set.
var ErrUnknownMode = errors.New("unknown conversation mode")

// Service orchestrates the two agent runs behind one learner message: the
// awaited responder and the detached tracker. No ordering is guaranteed
// between them and the tracker is allowed to fail silently.
type Service struct {
	runner *Runner

	// now is overridable in tests.
	now func() time.Time
}

// NewService creates a Service around the given runner.
func NewService(runner *Runner) *Service {
	return &Service{runner: runner, now: time.Now}
}

// SendMessage delivers one learner message in the given mode and returns
// the tutor's reply. The tracker run is fired and forgotten before the
// responder starts; its lifetime is bounded by its own timeout rather than
// the request context, since it must survive the HTTP request ending.
func (s *Service) SendMessage(ctx context.Context, lang *language.Language, mode, text string) (string, error) {
	if !ValidMode(mode) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	go func(trackerDir, message string) {
		if err := s.runner.Track(context.Background(), trackerDir, message); err != nil {
			slog.Warn("tracker run failed",
				"component", "agent",
				"language", lang.Name,
				"error", err,
			)
			return
		}
		slog.Debug("tracker run finished",
			"component", "agent",
			"language", lang.Name,
		)
	}(lang.TrackerDir(), text)

	sessions, err := LoadSessions(lang.Dir)
	if err != nil {
		return "", err
	}

	prompt := text
	sessionID := sessions[mode].SessionID
	if sessionID == "" {
		prompt = FirstMessagePrompt(mode, text)
	}

	started := s.now()
	reply, err := s.runner.Respond(ctx, lang.Dir, sessionID, prompt)
	if err != nil {
		slog.Error("responder run failed",
			"component", "agent",
			"language", lang.Name,
			"mode", mode,
			"error", err,
		)
		return "", err
	}
	slog.Info("responder run finished",
		"component", "agent",
		"language", lang.Name,
		"mode", mode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if reply.SessionID != "" && reply.SessionID != sessionID {
		if err := SaveSession(lang.Dir, mode, reply.SessionID, s.now()); err != nil {
			// The reply is good; a stale session map only costs
			// conversation continuity on the next message.
			slog.Warn("failed to persist session binding",
				"component", "agent",
				"language", lang.Name,
				"mode", mode,
				"error", err,
			)
		}
	}
	return reply.Text, nil
}
