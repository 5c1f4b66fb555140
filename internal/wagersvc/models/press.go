package models

import "time"

// PressSegment names the stretch of holes a press is played over.
type PressSegment string

const (
	PressFront   PressSegment = "FRONT"   // holes 1-9
	PressBack    PressSegment = "BACK"    // holes 10-18
	PressOverall PressSegment = "OVERALL" // holes 1-18 (Nassau overall)
	PressMatch   PressSegment = "MATCH"   // holes 1-18 (match play)
)

// HoleRange returns the first and last hole of the segment.
func (s PressSegment) HoleRange() (int, int) {
	switch s {
	case PressFront:
		return 1, 9
	case PressBack:
		return 10, 18
	default:
		return 1, 18
	}
}

type PressStatus string

const (
	PressActive   PressStatus = "ACTIVE"
	PressWon      PressStatus = "WON"
	PressLost     PressStatus = "LOST"
	PressPushed   PressStatus = "PUSHED"
	PressCanceled PressStatus = "CANCELED"
)

// Press is a side bet on a Nassau or match-play segment, starting at
// StartHole and running to the segment's last hole. A press can itself be
// pressed: ParentPressID points at the press it was made on, forming a tree
// rooted at the segment. StartHole must fall inside the segment's range and
// a child press can only exist while its parent is ACTIVE.
type Press struct {
	ID            int64        `json:"id"`
	GameID        int64        `json:"game_id"`
	Segment       PressSegment `json:"segment"`
	StartHole     int          `json:"start_hole"`
	InitiatedByID int64        `json:"initiated_by_id"`
	BetMultiplier int          `json:"bet_multiplier"`
	ParentPressID *int64       `json:"parent_press_id"`
	Status        PressStatus  `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
