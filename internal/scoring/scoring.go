// Package scoring rates news headlines for geopolitical significance and
// assigns an event category. Both functions are pure keyword scans: no I/O,
// no failure modes.
package scoring

import (
	"strings"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

var highImpactKeywords = []string{"war", "attack", "strike", "military", "pentagon", "nuclear"}

var mediumImpactKeywords = []string{"conflict", "tension", "sanctions", "diplomatic"}

var eventTypeKeywords = []struct {
	eventType models.EventType
	keywords  []string
}{
	{models.EventTypeMilitary, []string{"war", "attack", "strike", "military"}},
	{models.EventTypeDiplomatic, []string{"diplomatic", "negotiations", "talks"}},
	{models.EventTypeConflict, []string{"conflict", "tension", "crisis"}},
}

const baseScore = 50

// Score returns a significance score in [50,100] for a headline. Each
// high-impact keyword match adds 20, each medium-impact match adds 10,
// clamped to 100. An empty title scores the base 50.
func Score(title string) int {
	lower := strings.ToLower(title)
	score := baseScore

	for _, kw := range highImpactKeywords {
		if strings.Contains(lower, kw) {
			score += 20
		}
	}
	for _, kw := range mediumImpactKeywords {
		if strings.Contains(lower, kw) {
			score += 10
		}
	}

	return min(100, score)
}

// Classify maps a headline to an event type. Keyword groups are checked in
// priority order (military, then diplomatic, then conflict); the first group
// with any match wins. No match means general.
func Classify(title string) models.EventType {
	lower := strings.ToLower(title)

	for _, group := range eventTypeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.eventType
			}
		}
	}

	return models.EventTypeGeneral
}
