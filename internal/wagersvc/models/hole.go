package models

// Hole describes one hole of the course being played.
// HandicapRank is the hole's difficulty ranking, 1 = hardest; it decides
// which holes a stroking player receives strokes on.
type Hole struct {
	HoleNumber   int `json:"hole_number"`   // 1-18, unique per round
	Par          int `json:"par"`           // 3, 4 or 5
	HandicapRank int `json:"handicap_rank"` // 1-18, unique per round
}
