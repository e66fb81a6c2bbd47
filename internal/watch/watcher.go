package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// stateFiles are the documents whose changes are worth announcing to the
// UI. Everything else in a language directory (transcripts, temp files,
// sessions) changes far too often to stream.
var stateFiles = map[string]bool{
	"vocabulary.json":     true,
	"grammar.json":        true,
	"user-overrides.json": true,
}

// debounceWindow collapses the temp-write-then-rename burst every document
// update produces into one event.
const debounceWindow = 200 * time.Millisecond

// Watcher observes the data root and each language directory for
// learner-state writes, publishing one Event per settled change. The
// tracker agent is the usual writer, so this is how the UI learns that
// vocabulary changed under it mid-conversation.
type Watcher struct {
	root string
	hub  *Hub
	fs   *fsnotify.Watcher

	lastSeen map[string]time.Time
}

// New creates a watcher over the data root and any language directories
// already present.
func New(root string, hub *Hub) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(root); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch data root: %w", err)
	}

	w := &Watcher{
		root:     root,
		hub:      hub,
		fs:       fs,
		lastSeen: make(map[string]time.Time),
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("read data root: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			w.watchLanguage(filepath.Join(root, entry.Name()))
		}
	}
	return w, nil
}

func (w *Watcher) watchLanguage(dir string) {
	if err := w.fs.Add(dir); err != nil {
		slog.Warn("failed to watch language directory",
			"component", "watch",
			"dir", dir,
			"error", err,
		)
	}
}

// Run processes filesystem events until ctx is cancelled. Watcher errors
// are logged and survived; losing events degrades the UI to manual
// refresh, which beats taking the server down.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	slog.Info("state watcher started",
		"component", "watch",
		"root", w.root,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("state watcher stopped",
				"component", "watch",
				"reason", "context_cancelled",
			)
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error",
				"component", "watch",
				"error", err,
			)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// A directory created directly under the root is a freshly
	// bootstrapped language; start watching it.
	if event.Op.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.root {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchLanguage(event.Name)
			return
		}
	}

	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	file := filepath.Base(event.Name)
	if !stateFiles[file] {
		return
	}
	lang := filepath.Base(filepath.Dir(event.Name))

	key := lang + "/" + file
	now := time.Now()
	if last, ok := w.lastSeen[key]; ok && now.Sub(last) < debounceWindow {
		return
	}
	w.lastSeen[key] = now

	slog.Debug("state file changed",
		"component", "watch",
		"language", lang,
		"file", file,
	)
	w.hub.Publish(Event{Language: lang, File: file})
}
