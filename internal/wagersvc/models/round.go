package models

import "time"

type RoundStatus string

const (
	RoundSetup     RoundStatus = "SETUP"
	RoundActive    RoundStatus = "ACTIVE"
	RoundCompleted RoundStatus = "COMPLETED" // terminal, set by finalization
)

// Round is one outing: the course holes, the golfers and the side games
// wagered on it. Status moves one way to COMPLETED.
type Round struct {
	ID        int64       `json:"id"`
	CourseID  int64       `json:"course_id"`
	Status    RoundStatus `json:"status"`
	Holes     []Hole      `json:"holes"`
	Players   []Player    `json:"players"`
	Games     []Game      `json:"games"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PlayersByID returns the subset of round players whose user ids appear in
// ids, in the order of ids. Unknown ids are skipped.
func (r *Round) PlayersByID(ids []int64) []Player {
	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		for i := range r.Players {
			if r.Players[i].UserID == id {
				players = append(players, r.Players[i])
				break
			}
		}
	}
	return players
}
