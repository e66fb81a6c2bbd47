package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// stubCLI writes an executable shell script standing in for the external
// CLI and returns its path. The script appends its arguments to args.log in
// its working directory, then runs the given body.
func stubCLI(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-agent")
	script := "#!/bin/sh\necho \"$@\" >> args.log\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write stub CLI: %v", err)
	}
	return path
}

func loggedArgs(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "args.log"))
	if err != nil {
		t.Fatalf("read args.log: %v", err)
	}
	return string(data)
}

func TestRespond_ParsesResultAndSession(t *testing.T) {
	bin := stubCLI(t, `echo '{"type":"result","result":"안녕하세요! 반가워요.","session_id":"sess-123","is_error":false}'`)
	workDir := t.TempDir()
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	reply, err := r.Respond(context.Background(), workDir, "", "안녕")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply.Text != "안녕하세요! 반가워요." {
		t.Errorf("reply text = %q", reply.Text)
	}
	if reply.SessionID != "sess-123" {
		t.Errorf("session id = %q, want sess-123", reply.SessionID)
	}

	args := loggedArgs(t, workDir)
	for _, want := range []string{"--dangerously-skip-permissions", "--output-format json", "-p 안녕"} {
		if !strings.Contains(args, want) {
			t.Errorf("CLI args %q missing %q", args, want)
		}
	}
	if strings.Contains(args, "--resume") {
		t.Errorf("CLI args %q carry --resume on a fresh conversation", args)
	}
}

func TestRespond_ResumesSession(t *testing.T) {
	bin := stubCLI(t, `echo '{"result":"reply","session_id":"sess-123"}'`)
	workDir := t.TempDir()
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	if _, err := r.Respond(context.Background(), workDir, "sess-123", "hola"); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if args := loggedArgs(t, workDir); !strings.Contains(args, "--resume sess-123") {
		t.Errorf("CLI args %q missing --resume", args)
	}
}

func TestRespond_NonJSONFallsBackToRawOutput(t *testing.T) {
	bin := stubCLI(t, `echo 'plain text reply'`)
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	reply, err := r.Respond(context.Background(), t.TempDir(), "", "hi")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if reply.Text != "plain text reply" {
		t.Errorf("reply text = %q, want raw stdout", reply.Text)
	}
}

func TestRespond_ErrorResult(t *testing.T) {
	bin := stubCLI(t, `echo '{"result":"usage limit reached","is_error":true}'`)
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	_, err := r.Respond(context.Background(), t.TempDir(), "", "hi")
	if !errors.Is(err, ErrAgentFailed) {
		t.Errorf("Respond() error = %v, want ErrAgentFailed", err)
	}
}

func TestRespond_NonZeroExit(t *testing.T) {
	bin := stubCLI(t, "echo 'boom' >&2\nexit 3")
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	_, err := r.Respond(context.Background(), t.TempDir(), "", "hi")
	if !errors.Is(err, ErrAgentFailed) {
		t.Fatalf("Respond() error = %v, want ErrAgentFailed", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q missing stderr detail", err)
	}
}

func TestRespond_Timeout(t *testing.T) {
	bin := stubCLI(t, "sleep 5")
	r := NewRunner(bin, nil, 100*time.Millisecond, 5*time.Second)

	_, err := r.Respond(context.Background(), t.TempDir(), "", "hi")
	if !errors.Is(err, ErrAgentTimeout) {
		t.Errorf("Respond() error = %v, want ErrAgentTimeout", err)
	}
}

func TestRespond_MissingBinary(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "no-such-binary"), nil, time.Second, time.Second)
	_, err := r.Respond(context.Background(), t.TempDir(), "", "hi")
	if !errors.Is(err, ErrAgentFailed) {
		t.Errorf("Respond() error = %v, want ErrAgentFailed", err)
	}
}

func TestTrack_SubstitutesMessage(t *testing.T) {
	bin := stubCLI(t, "")
	workDir := t.TempDir()
	r := NewRunner(bin, nil, 5*time.Second, 5*time.Second)

	if err := r.Track(context.Background(), workDir, "나는 물을 마셔요"); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	args := loggedArgs(t, workDir)
	if !strings.Contains(args, "TRACKER TASK") {
		t.Errorf("tracker args %q missing tracker prompt", args)
	}
	if !strings.Contains(args, "나는 물을 마셔요") {
		t.Errorf("tracker args %q missing learner message", args)
	}
}

func TestTrack_Timeout(t *testing.T) {
	bin := stubCLI(t, "sleep 5")
	r := NewRunner(bin, nil, 5*time.Second, 100*time.Millisecond)

	err := r.Track(context.Background(), t.TempDir(), "hi")
	if !errors.Is(err, ErrAgentTimeout) {
		t.Errorf("Track() error = %v, want ErrAgentTimeout", err)
	}
}
