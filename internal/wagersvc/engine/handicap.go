package engine

import (
	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// Handicap strokes are allocated off the low handicap of the game's own
// participants, so the same golfer can stroke differently in two games
// played over the same round.

// GroupMinHandicap returns the lowest course handicap among players.
// A nil handicap counts as 0.
func GroupMinHandicap(players []models.Player) int {
	min := 0
	for i, p := range players {
		h := 0
		if p.CourseHandicap != nil {
			h = *p.CourseHandicap
		}
		if i == 0 || h < min {
			min = h
		}
	}
	return min
}

// StrokesGiven returns the strokes (0 or 1) the player receives on hole.
// A player strokes on the holes whose difficulty rank is within their
// handicap differential: rank 1 is the hardest hole and is the first to
// give a stroke.
func StrokesGiven(p models.Player, hole models.Hole, minHandicap int) int {
	h := 0
	if p.CourseHandicap != nil {
		h = *p.CourseHandicap
	}
	diff := h - minHandicap
	if diff > 0 && hole.HandicapRank <= diff {
		return 1
	}
	return 0
}

// netScore returns the player's net score on hole, or ok=false when the
// hole has no recorded strokes yet. Holes without a score are skipped by
// every calculator, never defaulted.
func netScore(p models.Player, hole models.Hole, minHandicap int) (int, bool) {
	s, ok := p.ScoreForHole(hole.HoleNumber)
	if !ok || s.Strokes == nil {
		return 0, false
	}
	return *s.Strokes - StrokesGiven(p, hole, minHandicap), true
}
