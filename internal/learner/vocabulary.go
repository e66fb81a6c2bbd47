package learner

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// VocabularyEntry is one tracked word. The typed form is used for reads
// (API blobs stay raw); mutations edit the raw document so fields the agent
// added survive.
type VocabularyEntry struct {
	Word        string  `json:"word"`
	Meaning     string  `json:"meaning"`
	Ease        float64 `json:"ease"`
	Interval    int     `json:"interval"`
	Repetitions int     `json:"repetitions"`
	NextReview  string  `json:"next_review"`
	Added       string  `json:"added"`
	Notes       string  `json:"notes"`
}

// New-word defaults. A fresh word is due immediately.
const (
	DefaultEase     = 2.5
	DefaultInterval = 1
)

// Words decodes the vocabulary document.
func (s *Store) Words() ([]VocabularyEntry, error) {
	doc, err := s.readDocument(VocabularyFile)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Words []VocabularyEntry `json:"words"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", VocabularyFile, err)
	}
	return parsed.Words, nil
}

// DueWords returns entries with next_review on or before the given date.
// Dates compare lexically in YYYY-MM-DD form.
func (s *Store) DueWords(date string) ([]VocabularyEntry, error) {
	words, err := s.Words()
	if err != nil {
		return nil, err
	}
	var due []VocabularyEntry
	for _, w := range words {
		if w.NextReview <= date {
			due = append(due, w)
		}
	}
	return due, nil
}

// AddWord appends a new vocabulary entry with scheduling defaults.
// Returns ErrWordExists if the word is already tracked.
func (s *Store) AddWord(word, meaning, notes string) (VocabularyEntry, error) {
	doc, err := s.readDocument(VocabularyFile)
	if err != nil {
		return VocabularyEntry{}, err
	}

	if i, _ := findRecord(doc, "words", "word", word); i >= 0 {
		return VocabularyEntry{}, fmt.Errorf("%w: %q", ErrWordExists, word)
	}

	entry := VocabularyEntry{
		Word:        word,
		Meaning:     meaning,
		Ease:        DefaultEase,
		Interval:    DefaultInterval,
		Repetitions: 0,
		NextReview:  s.today(),
		Added:       s.today(),
		Notes:       notes,
	}

	doc, err = sjson.SetBytes(doc, "words.-1", entry)
	if err != nil {
		return VocabularyEntry{}, fmt.Errorf("append word: %w", err)
	}
	if err := s.writeDocument(VocabularyFile, doc); err != nil {
		return VocabularyEntry{}, err
	}
	return entry, nil
}

// MarkRecalled applies one SM-2 review to a word and returns the updated
// scheduling state. Quality is the learner's self-reported recall, 0..5.
// Returns ErrWordNotFound if the word is not tracked.
func (s *Store) MarkRecalled(word string, quality int) (VocabularyEntry, error) {
	doc, err := s.readDocument(VocabularyFile)
	if err != nil {
		return VocabularyEntry{}, err
	}

	i, record := findRecord(doc, "words", "word", word)
	if i < 0 {
		return VocabularyEntry{}, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}

	ease := record.Get("ease").Float()
	if ease == 0 {
		ease = DefaultEase
	}
	interval := int(record.Get("interval").Int())
	repetitions := int(record.Get("repetitions").Int())

	ease, interval, repetitions = Schedule(ease, interval, repetitions, quality)
	nextReview := s.now().AddDate(0, 0, interval).Format("2006-01-02")

	for path, value := range map[string]any{
		fmt.Sprintf("words.%d.ease", i):        ease,
		fmt.Sprintf("words.%d.interval", i):    interval,
		fmt.Sprintf("words.%d.repetitions", i): repetitions,
		fmt.Sprintf("words.%d.next_review", i): nextReview,
	} {
		if doc, err = sjson.SetBytes(doc, path, value); err != nil {
			return VocabularyEntry{}, fmt.Errorf("update word: %w", err)
		}
	}
	if err := s.writeDocument(VocabularyFile, doc); err != nil {
		return VocabularyEntry{}, err
	}

	return VocabularyEntry{
		Word:        word,
		Meaning:     record.Get("meaning").String(),
		Ease:        ease,
		Interval:    interval,
		Repetitions: repetitions,
		NextReview:  nextReview,
		Added:       record.Get("added").String(),
		Notes:       record.Get("notes").String(),
	}, nil
}

// UpdateWordNote appends a dated note line to a word's notes field. Notes
// are append-only; earlier lines are never rewritten.
func (s *Store) UpdateWordNote(word, note string) error {
	doc, err := s.readDocument(VocabularyFile)
	if err != nil {
		return err
	}

	i, record := findRecord(doc, "words", "word", word)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}

	line := fmt.Sprintf("[%s] %s", s.today(), note)
	notes := record.Get("notes").String()
	if notes != "" {
		notes += "\n"
	}
	notes += line

	doc, err = sjson.SetBytes(doc, fmt.Sprintf("words.%d.notes", i), notes)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return s.writeDocument(VocabularyFile, doc)
}
