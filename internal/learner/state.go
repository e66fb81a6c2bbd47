package learner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
)

// State file names inside a language directory. The external tutor agent
// reads and edits these documents directly, so mutations must go through
// raw-document read-modify-write rather than a typed re-marshal that would
// drop fields the agent has added.
const (
	VocabularyFile = "vocabulary.json"
	GrammarFile    = "grammar.json"
	OverridesFile  = "user-overrides.json"
	DigestFile     = "review-digest.json"
)

// Store performs single-record updates against the JSON state documents of
// one language directory. It is safe for a single writer per file; writes
// use temp-file-then-rename, matching what the documents' other editor (the
// agent) does.
type Store struct {
	dir string

	// now is overridable in tests.
	now func() time.Time
}

// NewStore returns a Store rooted at the given language directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the language directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// readDocument loads a whole state document.
// A missing file maps to ErrStateFileMissing.
func (s *Store) readDocument(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStateFileMissing, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// writeDocument replaces a state document atomically for a single writer:
// write to a temp file in the same directory, then rename over the target.
func (s *Store) writeDocument(name string, data []byte) error {
	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// findRecord locates an entry in the document's array by its unique key
// field. Returns the array index and the matched record, or index -1.
func findRecord(doc []byte, arrayPath, keyField, key string) (int, gjson.Result) {
	entries := gjson.GetBytes(doc, arrayPath).Array()
	for i, entry := range entries {
		if entry.Get(keyField).String() == key {
			return i, entry
		}
	}
	return -1, gjson.Result{}
}

// ReadVocabulary returns the raw vocabulary document.
func (s *Store) ReadVocabulary() ([]byte, error) {
	return s.readDocument(VocabularyFile)
}

// ReadGrammar returns the raw grammar document.
func (s *Store) ReadGrammar() ([]byte, error) {
	return s.readDocument(GrammarFile)
}

// ReadOverrides returns the raw user-overrides document.
func (s *Store) ReadOverrides() ([]byte, error) {
	return s.readDocument(OverridesFile)
}
