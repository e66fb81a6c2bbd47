package learner

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// GrammarRule is one tracked grammar construct with its star proficiency.
type GrammarRule struct {
	Rule          string `json:"rule"`
	Description   string `json:"description"`
	Level         string `json:"level"`
	Stars         int    `json:"stars"`
	LastUsed      string `json:"last_used"`
	CorrectStreak int    `json:"correct_streak"`
	Permanent     bool   `json:"permanent"`
	Notes         string `json:"notes"`
}

// Levels is the CEFR proficiency scale used for grammar rules.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

const (
	MinStars = 1
	MaxStars = 5

	// promoteEvery is the consecutive-correct count that earns a star.
	promoteEvery = 3
	// permanentStreak is the streak required, at five stars, for a rule to
	// become permanent. Permanence is one-way; permanent rules never demote.
	permanentStreak = 5
)

// Rules decodes the grammar document.
func (s *Store) Rules() ([]GrammarRule, error) {
	doc, err := s.readDocument(GrammarFile)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Rules []GrammarRule `json:"rules"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", GrammarFile, err)
	}
	return parsed.Rules, nil
}

// AddRule appends a new grammar rule at one star.
// Returns ErrRuleExists if the rule is already tracked.
func (s *Store) AddRule(rule, description, level, notes string) (GrammarRule, error) {
	doc, err := s.readDocument(GrammarFile)
	if err != nil {
		return GrammarRule{}, err
	}

	if i, _ := findRecord(doc, "rules", "rule", rule); i >= 0 {
		return GrammarRule{}, fmt.Errorf("%w: %q", ErrRuleExists, rule)
	}

	entry := GrammarRule{
		Rule:          rule,
		Description:   description,
		Level:         level,
		Stars:         MinStars,
		LastUsed:      s.today(),
		CorrectStreak: 0,
		Permanent:     false,
		Notes:         notes,
	}

	doc, err = sjson.SetBytes(doc, "rules.-1", entry)
	if err != nil {
		return GrammarRule{}, fmt.Errorf("append rule: %w", err)
	}
	if err := s.writeDocument(GrammarFile, doc); err != nil {
		return GrammarRule{}, err
	}
	return entry, nil
}

// MarkRuleUsed records one usage outcome for a grammar rule.
//
// A correct use extends the streak and earns a star every promoteEvery
// consecutive correct uses. An incorrect use resets the streak and costs a
// star unless the rule is permanent. A rule at five stars with a streak of
// permanentStreak or more becomes permanent.
func (s *Store) MarkRuleUsed(rule string, correct bool) (GrammarRule, error) {
	doc, err := s.readDocument(GrammarFile)
	if err != nil {
		return GrammarRule{}, err
	}

	i, record := findRecord(doc, "rules", "rule", rule)
	if i < 0 {
		return GrammarRule{}, fmt.Errorf("%w: %q", ErrRuleNotFound, rule)
	}

	stars := int(record.Get("stars").Int())
	if stars < MinStars {
		stars = MinStars
	}
	streak := int(record.Get("correct_streak").Int())
	permanent := record.Get("permanent").Bool()

	if correct {
		streak++
		if streak%promoteEvery == 0 && stars < MaxStars {
			stars++
		}
	} else {
		if !permanent && stars > MinStars {
			stars--
		}
		streak = 0
	}

	if stars == MaxStars && streak >= permanentStreak {
		permanent = true
	}

	lastUsed := s.today()
	for path, value := range map[string]any{
		fmt.Sprintf("rules.%d.stars", i):          stars,
		fmt.Sprintf("rules.%d.correct_streak", i): streak,
		fmt.Sprintf("rules.%d.permanent", i):      permanent,
		fmt.Sprintf("rules.%d.last_used", i):      lastUsed,
	} {
		if doc, err = sjson.SetBytes(doc, path, value); err != nil {
			return GrammarRule{}, fmt.Errorf("update rule: %w", err)
		}
	}
	if err := s.writeDocument(GrammarFile, doc); err != nil {
		return GrammarRule{}, err
	}

	return GrammarRule{
		Rule:          rule,
		Description:   record.Get("description").String(),
		Level:         record.Get("level").String(),
		Stars:         stars,
		LastUsed:      lastUsed,
		CorrectStreak: streak,
		Permanent:     permanent,
		Notes:         record.Get("notes").String(),
	}, nil
}
