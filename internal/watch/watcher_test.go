package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(Event{Language: "korean", File: "vocabulary.json"})

	select {
	case e := <-ch:
		if e.Language != "korean" || e.File != "vocabulary.json" {
			t.Errorf("event = %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	h := NewHub()
	_, cancel := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers())
	}
	cancel()
	cancel() // idempotent
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers())
	}
	// Publishing with no subscribers must not panic.
	h.Publish(Event{Language: "korean", File: "grammar.json"})
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish(Event{Language: "korean", File: "vocabulary.json"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	if len(ch) == 0 {
		t.Error("no events buffered at all")
	}
}

func waitForEvent(t *testing.T, ch <-chan Event, wantLang, wantFile string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-ch:
			if e.Language == wantLang && e.File == wantFile {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s/%s", wantLang, wantFile)
		}
	}
}

func TestWatcher_PublishesStateWrites(t *testing.T) {
	root := t.TempDir()
	langDir := filepath.Join(root, "korean")
	if err := os.MkdirAll(langDir, 0755); err != nil {
		t.Fatal(err)
	}

	hub := NewHub()
	w, err := New(root, hub)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	// Give the watch loop a moment to start before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(langDir, "vocabulary.json"), []byte(`{"words":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	waitForEvent(t, ch, "korean", "vocabulary.json")
}

func TestWatcher_IgnoresNonStateFiles(t *testing.T) {
	root := t.TempDir()
	langDir := filepath.Join(root, "korean")
	if err := os.MkdirAll(langDir, 0755); err != nil {
		t.Fatal(err)
	}

	hub := NewHub()
	w, err := New(root, hub)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(langDir, "sessions.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-ch:
		t.Errorf("unexpected event %+v for a non-state file", e)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_PicksUpNewLanguageDirs(t *testing.T) {
	root := t.TempDir()
	hub := NewHub()
	w, err := New(root, hub)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	ch, unsub := hub.Subscribe()
	defer unsub()

	time.Sleep(50 * time.Millisecond)
	langDir := filepath.Join(root, "spanish")
	if err := os.MkdirAll(langDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Let the create event register the new watch before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(langDir, "grammar.json"), []byte(`{"rules":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	waitForEvent(t, ch, "spanish", "grammar.json")
}
