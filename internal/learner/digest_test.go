package learner

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestBuildDigest(t *testing.T) {
	vocab := `{"language": "korean", "words": [
		{"word": "물", "meaning": "water", "ease": 2.5, "interval": 1, "repetitions": 0, "next_review": "2026-03-09", "notes": ""},
		{"word": "불", "meaning": "fire", "ease": 2.5, "interval": 1, "repetitions": 0, "next_review": "2026-03-10", "notes": ""},
		{"word": "밥", "meaning": "rice", "ease": 2.5, "interval": 10, "repetitions": 3, "next_review": "2026-04-01", "notes": ""}
	]}`
	grammar := `{"language": "korean", "rules": [
		{"rule": "weak one", "description": "", "level": "A1", "stars": 1, "last_used": "2026-03-01", "correct_streak": 0, "permanent": false, "notes": ""},
		{"rule": "solid one", "description": "", "level": "A2", "stars": 4, "last_used": "2026-03-01", "correct_streak": 2, "permanent": false, "notes": ""},
		{"rule": "locked weak", "description": "", "level": "A1", "stars": 2, "last_used": "2026-03-01", "correct_streak": 0, "permanent": true, "notes": ""}
	]}`
	s := newTestStore(t, map[string]string{VocabularyFile: vocab, GrammarFile: grammar})

	d, err := s.BuildDigest("2026-03-10")
	if err != nil {
		t.Fatalf("BuildDigest() error = %v", err)
	}

	if d.DueCount != 2 {
		t.Errorf("due count = %d, want 2", d.DueCount)
	}
	if len(d.DueWords) != 2 || d.DueWords[0] != "물" || d.DueWords[1] != "불" {
		t.Errorf("due words = %v", d.DueWords)
	}
	if len(d.WeakRules) != 1 || d.WeakRules[0] != "weak one" {
		t.Errorf("weak rules = %v, want only non-permanent low-star rules", d.WeakRules)
	}
}

func TestWriteDigest(t *testing.T) {
	s := newTestStore(t, map[string]string{
		VocabularyFile: emptyVocab,
		GrammarFile:    emptyGrammar,
	})

	d, err := s.BuildDigest("2026-03-10")
	if err != nil {
		t.Fatalf("BuildDigest() error = %v", err)
	}
	if err := s.WriteDigest(d); err != nil {
		t.Fatalf("WriteDigest() error = %v", err)
	}

	raw := readRaw(t, s, DigestFile)
	if got := gjson.Get(raw, "generated").String(); got != "2026-03-10" {
		t.Errorf("generated = %q", got)
	}
	if got := gjson.Get(raw, "due_count").Int(); got != 0 {
		t.Errorf("due_count = %d, want 0", got)
	}
	// Empty lists serialize as [], not null, for the agent's sake.
	if raw2 := gjson.Get(raw, "due_words"); !raw2.IsArray() {
		t.Errorf("due_words = %s, want an array", raw2.Raw)
	}
}
