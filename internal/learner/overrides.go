package learner

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/tidwall/sjson"
)

// Adjustment is one entry in the append-only difficulty adjustment log.
type Adjustment struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Direction string `json:"direction"`
	Reason    string `json:"reason"`
}

// DifficultyLevels are the accepted values for difficulty.level: automatic
// pacing, a relative nudge, or a pinned CEFR level.
var DifficultyLevels = []string{"auto", "easier", "harder", "A1", "A2", "B1", "B2", "C1", "C2"}

// AdjustDifficulty sets difficulty.level in the overrides document and
// appends the adjustment record. The log is append-only; existing entries
// are never rewritten.
func (s *Store) AdjustDifficulty(direction, reason string) (Adjustment, error) {
	doc, err := s.readDocument(OverridesFile)
	if err != nil {
		return Adjustment{}, err
	}

	adj := Adjustment{
		ID:        ulid.Make().String(),
		Date:      s.today(),
		Direction: direction,
		Reason:    reason,
	}

	doc, err = sjson.SetBytes(doc, "difficulty.level", direction)
	if err != nil {
		return Adjustment{}, fmt.Errorf("set difficulty: %w", err)
	}
	doc, err = sjson.SetBytes(doc, "adjustments.-1", adj)
	if err != nil {
		return Adjustment{}, fmt.Errorf("append adjustment: %w", err)
	}
	if err := s.writeDocument(OverridesFile, doc); err != nil {
		return Adjustment{}, err
	}
	return adj, nil
}
