package models

import "time"

// Player is a golfer participating in a round. CourseHandicap is nil when
// the golfer plays without a handicap; calculators treat nil as 0.
type Player struct {
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	CourseHandicap *int      `json:"course_handicap"`
	Scores         []Score   `json:"scores"` // at most one per hole number
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ScoreForHole returns the player's score entry for a hole number.
func (p *Player) ScoreForHole(holeNumber int) (Score, bool) {
	for _, s := range p.Scores {
		if s.HoleNumber == holeNumber {
			return s, true
		}
	}
	return Score{}, false
}
