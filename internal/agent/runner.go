package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	// ErrAgentFailed indicates the external CLI exited non-zero or could
	// not be started.
	ErrAgentFailed = errors.New("agent process failed")
	// ErrAgentTimeout indicates the external CLI exceeded its deadline.
	ErrAgentTimeout = errors.New("agent process timed out")
)

// Runner spawns the external tutoring CLI. Two kinds of runs exist per
// learner message: an awaited responder and a fire-and-forget tracker,
// each under its own fixed timeout. There is no retry; a failed run is a
// failed run.
type Runner struct {
	binary           string
	extraArgs        []string
	responderTimeout time.Duration
	trackerTimeout   time.Duration
}

// Reply is the parsed outcome of a responder run.
type Reply struct {
	// Text is the tutor's reply.
	Text string
	// SessionID is the conversation identifier reported by the CLI, used
	// to resume the conversation on the next message.
	SessionID string
}

// NewRunner creates a Runner for the given CLI binary.
func NewRunner(binary string, extraArgs []string, responderTimeout, trackerTimeout time.Duration) *Runner {
	return &Runner{
		binary:           binary,
		extraArgs:        extraArgs,
		responderTimeout: responderTimeout,
		trackerTimeout:   trackerTimeout,
	}
}

// run executes one CLI invocation in dir and returns its stdout.
func (r *Runner) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	full := make([]string, 0, len(r.extraArgs)+len(args)+2)
	full = append(full, "--dangerously-skip-permissions", "--output-format", "json")
	full = append(full, r.extraArgs...)
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, r.binary, full...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s", ErrAgentTimeout, deadlineOf(ctx))
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrAgentFailed, detail)
	}
	return stdout.Bytes(), nil
}

func deadlineOf(ctx context.Context) string {
	if _, ok := ctx.Deadline(); ok {
		return "deadline"
	}
	return "cancellation"
}

// Respond runs the responder agent in the language directory and waits for
// the reply. A non-empty sessionID resumes that conversation; otherwise a
// new conversation starts and the returned Reply carries its identifier.
func (r *Runner) Respond(ctx context.Context, dir, sessionID, prompt string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, r.responderTimeout)
	defer cancel()

	args := []string{}
	if sessionID != "" {
		args = append(args, "--resume", sessionID)
	}
	args = append(args, "-p", prompt)

	out, err := r.run(ctx, dir, args)
	if err != nil {
		return Reply{}, err
	}

	// The CLI reports {"result": ..., "session_id": ..., "is_error": ...}.
	// Anything unparseable falls back to raw stdout so a misconfigured CLI
	// still produces a visible reply.
	parsed := gjson.ParseBytes(out)
	if !parsed.Get("result").Exists() {
		return Reply{Text: strings.TrimSpace(string(out)), SessionID: sessionID}, nil
	}
	if parsed.Get("is_error").Bool() {
		return Reply{}, fmt.Errorf("%w: %s", ErrAgentFailed, parsed.Get("result").String())
	}

	id := parsed.Get("session_id").String()
	if id == "" {
		id = sessionID
	}
	return Reply{
		Text:      strings.TrimSpace(parsed.Get("result").String()),
		SessionID: id,
	}, nil
}

// Track runs the tracker agent over one learner message. The caller fires
// this from a goroutine; the run is bounded by the tracker timeout and its
// outcome is only ever logged.
func (r *Runner) Track(ctx context.Context, trackerDir, message string) error {
	ctx, cancel := context.WithTimeout(ctx, r.trackerTimeout)
	defer cancel()

	prompt := fmt.Sprintf(trackerPrompt, message)
	_, err := r.run(ctx, trackerDir, []string{"-p", prompt})
	return err
}
