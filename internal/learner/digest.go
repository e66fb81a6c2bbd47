package learner

import (
	"encoding/json"
	"fmt"
)

// maxDigestWords bounds the word list in a digest; the count still
// reflects everything due.
const maxDigestWords = 20

// Digest summarizes what is due for a language so the tutor agent can
// steer conversation toward it without scanning the full documents.
type Digest struct {
	Generated string   `json:"generated"`
	DueCount  int      `json:"due_count"`
	DueWords  []string `json:"due_words"`
	WeakRules []string `json:"weak_rules"`
}

// BuildDigest computes the digest for the given date.
func (s *Store) BuildDigest(date string) (Digest, error) {
	due, err := s.DueWords(date)
	if err != nil {
		return Digest{}, err
	}
	rules, err := s.Rules()
	if err != nil {
		return Digest{}, err
	}

	d := Digest{
		Generated: date,
		DueCount:  len(due),
		DueWords:  []string{},
		WeakRules: []string{},
	}
	for i, w := range due {
		if i == maxDigestWords {
			break
		}
		d.DueWords = append(d.DueWords, w.Word)
	}
	for _, r := range rules {
		if r.Stars <= 2 && !r.Permanent {
			d.WeakRules = append(d.WeakRules, r.Rule)
		}
	}
	return d, nil
}

// WriteDigest replaces the language's review digest document.
func (s *Store) WriteDigest(d Digest) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}
	return s.writeDocument(DigestFile, append(data, '\n'))
}
