package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameType is the closed set of side games a round can carry. Calculators
// switch exhaustively over these values; adding a game type means adding a
// constant here and a calculator for it.
type GameType string

const (
	GameNassau          GameType = "NASSAU"
	GameSkins           GameType = "SKINS"
	GameWolf            GameType = "WOLF"
	GameNines           GameType = "NINES"
	GameMatchPlay       GameType = "MATCH_PLAY"
	GameStableford      GameType = "STABLEFORD"
	GameSnake           GameType = "SNAKE"
	GameVegas           GameType = "VEGAS"
	GameBanker          GameType = "BANKER"
	GameBingoBangoBongo GameType = "BINGO_BANGO_BONGO"
)

// Game is one side game attached to a round: a game type, the subset of
// round players in it, the per-unit bet and any game-specific decisions.
type Game struct {
	ID        int64           `json:"id"`
	RoundID   int64           `json:"round_id"`
	GameType  GameType        `json:"game_type"`
	BetAmount decimal.Decimal `json:"bet_amount"`
	PlayerIDs []int64         `json:"player_ids"`

	WolfDecisions   []WolfDecision         `json:"wolf_decisions,omitempty"`
	VegasTeams      []VegasTeam            `json:"vegas_teams,omitempty"`
	BankerDecisions []BankerDecision       `json:"banker_decisions,omitempty"`
	BingoPoints     []BingoBangoBongoPoint `json:"bingo_points,omitempty"`
	Presses         []Press                `json:"presses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
