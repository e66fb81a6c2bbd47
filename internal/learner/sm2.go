package learner

import "math"

// SM-2 scheduling bounds.
const (
	MinEase         = 1.3
	MaxIntervalDays = 365

	// PassQuality is the lowest self-reported recall quality counted as a
	// successful recall. Qualities run 0 (blackout) to 5 (perfect).
	PassQuality = 3
)

// Schedule applies one SM-2 review to a word's scheduling state and returns
// the updated ease factor, interval in days, and repetition count.
//
// The ease factor moves on every review, pass or fail, and never drops
// below MinEase. A failed recall resets the repetition streak and schedules
// the word for tomorrow; a passed recall advances the fixed early intervals
// (1 day, then 6) before switching to interval*ease growth, capped at
// MaxIntervalDays.
func Schedule(ease float64, interval, repetitions, quality int) (float64, int, int) {
	q := float64(quality)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if ease < MinEase {
		ease = MinEase
	}

	if quality < PassQuality {
		return ease, 1, 0
	}

	repetitions++
	switch repetitions {
	case 1:
		interval = 1
	case 2:
		interval = 6
	default:
		interval = int(math.Round(float64(interval) * ease))
	}
	if interval < 1 {
		interval = 1
	}
	if interval > MaxIntervalDays {
		interval = MaxIntervalDays
	}

	return ease, interval, repetitions
}
