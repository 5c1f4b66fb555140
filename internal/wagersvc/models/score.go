package models

import "time"

// Score is one player's result on one hole. Strokes stays nil until the
// score is entered; Putts is optional and only drives the Snake game.
type Score struct {
	ID         int64     `json:"id"`
	HoleNumber int       `json:"hole_number"`
	Strokes    *int      `json:"strokes"`
	Putts      *int      `json:"putts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
