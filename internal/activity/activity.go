// Package activity synthesizes plausible venue busyness readings when no
// usable external signal exists. Time and randomness are passed in so callers
// stay deterministic under test.
package activity

import (
	"math/rand"
	"time"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

type Reading struct {
	Level models.BusyLevel
	Score float64
}

// ForHour is the deterministic time-of-day estimate: a fixed score and level
// per daypart, local hour h in [0,23].
func ForHour(h int) Reading {
	switch {
	case h >= 11 && h <= 13: // lunch rush
		return Reading{Level: models.BusyLevelBitBusier, Score: 70}
	case h >= 17 && h <= 20: // dinner rush
		return Reading{Level: models.BusyLevelBusier, Score: 85}
	case h > 20 && h <= 22: // evening
		return Reading{Level: models.BusyLevelBitBusier, Score: 60}
	default:
		return Reading{Level: models.BusyLevelLessBusy, Score: 30}
	}
}

// Generate produces a randomized reading around the daypart base for t:
// uniform noise in [-20,+20] clamped to [0,100], with the level derived from
// the resulting score so the two always agree.
func Generate(t time.Time, rng *rand.Rand) Reading {
	base := baseForHour(t.Hour())

	score := float64(base + rng.Intn(41) - 20)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return Reading{Level: LevelForScore(score), Score: score}
}

func baseForHour(h int) int {
	switch {
	case h >= 11 && h <= 13:
		return 75
	case h >= 17 && h <= 20:
		return 85
	case h > 20 && h <= 22:
		return 60
	default:
		return 30
	}
}

// LevelForScore maps a score in [0,100] onto the busy-level enumeration.
func LevelForScore(score float64) models.BusyLevel {
	switch {
	case score >= 80:
		return models.BusyLevelBusier
	case score >= 60:
		return models.BusyLevelBitBusier
	case score >= 40:
		return models.BusyLevelLessBusy
	default:
		return models.BusyLevelNotBusy
	}
}
