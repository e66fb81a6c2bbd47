package language

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/immersio/immersio/internal/learner"
)

// Language is a loaded handle on one language directory.
type Language struct {
	Name   string
	Dir    string
	Config Config
	State  *learner.Store
}

// TrackerDir returns the working directory for the tracker agent.
func (l *Language) TrackerDir() string {
	return filepath.Join(l.Dir, ".tracker")
}

// Info builds the listing view of this language. Word and rule counts are
// best effort; a corrupt state document reports as zero rather than an
// error.
func (l *Language) Info() Info {
	info := Info{
		Name:         l.Name,
		DisplayName:  Display(l.Name),
		NativeScript: l.Config.NativeScript,
		Romanization: l.Config.Romanization,
		Started:      l.Config.Started,
	}
	if words, err := l.State.Words(); err == nil {
		info.Words = len(words)
	}
	if rules, err := l.State.Rules(); err == nil {
		info.Rules = len(rules)
	}
	return info
}

// Info describes a language for listings.
type Info struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	NativeScript string `json:"native_script"`
	Romanization string `json:"romanization"`
	Started      string `json:"started"`
	Words        int    `json:"words"`
	Rules        int    `json:"rules"`
}

// Manager manages the per-language directories under one data root with
// lazy loading.
type Manager struct {
	rootPath string

	mu        sync.RWMutex
	languages map[string]*Language

	// now is overridable in tests.
	now func() time.Time
}

// NewManager creates a manager with the given data root.
// Creates the root directory if it doesn't exist.
func NewManager(rootPath string) (*Manager, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(rootPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		rootPath = filepath.Join(home, rootPath[2:])
	}

	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("create data root directory: %w", err)
	}

	return &Manager{
		rootPath:  rootPath,
		languages: make(map[string]*Language),
		now:       time.Now,
	}, nil
}

// Root returns the data root path.
func (m *Manager) Root() string {
	return m.rootPath
}

func (m *Manager) dir(name string) string {
	return filepath.Join(m.rootPath, name)
}

// Get returns the handle for the given language, loading it if necessary.
// Returns ErrLanguageNotFound if the language was never bootstrapped.
func (m *Manager) Get(ctx context.Context, name string) (*Language, error) {
	name = Canonical(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	// Fast path: already loaded.
	m.mu.RLock()
	if lang, ok := m.languages[name]; ok {
		m.mu.RUnlock()
		return lang, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock.
	if lang, ok := m.languages[name]; ok {
		return lang, nil
	}

	dir := m.dir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, name)
	}

	lang, err := m.load(name, dir)
	if err != nil {
		return nil, err
	}
	m.languages[name] = lang

	slog.Info("language loaded",
		"component", "language",
		"action", "language_loaded",
		"language", name,
	)
	return lang, nil
}

func (m *Manager) load(name, dir string) (*Language, error) {
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("load language %q: %w", name, err)
	}
	return &Language{
		Name:   name,
		Dir:    dir,
		Config: cfg,
		State:  learner.NewStore(dir),
	}, nil
}

// Bootstrap creates a new language directory with its instruction and
// state templates. Returns ErrLanguageExists if already bootstrapped.
func (m *Manager) Bootstrap(ctx context.Context, name string) (*Language, error) {
	name = Canonical(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dir := m.dir(name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrLanguageExists, name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create language directory: %w", err)
	}
	if err := bootstrapDir(dir, name, m.now()); err != nil {
		// Leave no half-bootstrapped directory behind.
		os.RemoveAll(dir)
		return nil, err
	}

	lang, err := m.load(name, dir)
	if err != nil {
		return nil, err
	}
	m.languages[name] = lang

	slog.Info("language bootstrapped",
		"component", "language",
		"action", "language_bootstrapped",
		"language", name,
	)
	return lang, nil
}

// Delete removes a language directory and all learner state in it.
// Returns ErrLanguageNotFound if the language doesn't exist.
func (m *Manager) Delete(ctx context.Context, name string) error {
	name = Canonical(name)
	if err := ValidateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dir := m.dir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", ErrLanguageNotFound, name)
	}

	delete(m.languages, name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove language directory: %w", err)
	}

	slog.Info("language deleted",
		"component", "language",
		"action", "language_deleted",
		"language", name,
	)
	return nil
}

// List returns info for every bootstrapped language, sorted by directory
// enumeration order. Directories that fail to load are skipped with a
// warning so one corrupt language cannot hide the rest.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(m.rootPath)
	if err != nil {
		return nil, fmt.Errorf("read data root: %w", err)
	}

	var result []Info
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		lang, err := m.Get(ctx, name)
		if err != nil {
			slog.Warn("skipping unreadable language",
				"component", "language",
				"language", name,
				"error", err,
			)
			continue
		}

		result = append(result, lang.Info())
	}
	return result, nil
}
