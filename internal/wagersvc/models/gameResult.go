package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameResult is the career-stat record written once at finalization: one row
// per (game, player) with the player's net money for that game. Immutable
// after creation.
type GameResult struct {
	ID        int64           `json:"id"`
	GameID    int64           `json:"game_id"`
	UserID    int64           `json:"user_id"`
	GameType  GameType        `json:"game_type"`
	NetAmount decimal.Decimal `json:"net_amount"`
	CreatedAt time.Time       `json:"created_at"`
}
