// Package engine turns raw hole-by-hole strokes into money owed between
// players. It holds the per-game-type calculators, the shared handicap
// stroke allocation, the press resolver and the settlement consolidator.
// Everything in here is pure: no I/O, no clocks, no shared state, so the
// same inputs always produce the same money.
package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// Result statuses shared by every calculator. A game whose player count
// does not fit its type is not an error: the calculator reports
// StatusNotApplicable so a caller can run many games over overlapping
// player subsets without pre-filtering.
const (
	StatusOK            = "OK"
	StatusNotApplicable = "NOT_APPLICABLE"
)

// Standing is one player's line in a game result: accumulated points where
// the game has them, and the player's net money for the game. Money values
// across a game's standings sum to zero.
type Standing struct {
	UserID int64           `json:"user_id"`
	Name   string          `json:"name"`
	Points float64         `json:"points"`
	Money  decimal.Decimal `json:"money"`
}

// SettlementFlow is a directed money transfer between two players, produced
// by calculators and presses and merged by Consolidate before persistence.
type SettlementFlow struct {
	FromUserID int64           `json:"from_user_id"`
	ToUserID   int64           `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// Outcome is what every calculator returns: whether the game applied, and
// the per-player net money used for GameResult rows and the generic
// standings-to-flows reduction.
type Outcome interface {
	Applicable() bool
	MoneyByPlayer() map[int64]decimal.Decimal
}

// Calculate dispatches to the calculator for the game's type. The switch is
// exhaustive over models.GameType; an unknown type is a caller bug.
func Calculate(game models.Game, players []models.Player, holes []models.Hole) (Outcome, error) {
	if game.BetAmount.IsNegative() {
		return nil, newError(CodeInvalidBet, "bet amount %s is negative", game.BetAmount)
	}
	seen := make(map[int]bool, len(holes))
	for _, h := range holes {
		if seen[h.HoleNumber] {
			return nil, newError(CodeDuplicateHole, "hole %d appears more than once", h.HoleNumber)
		}
		seen[h.HoleNumber] = true
	}
	switch game.GameType {
	case models.GameNassau:
		return CalculateNassau(players, holes, game.BetAmount), nil
	case models.GameSkins:
		return CalculateSkins(players, holes, game.BetAmount), nil
	case models.GameWolf:
		return CalculateWolf(players, holes, game.WolfDecisions, game.BetAmount), nil
	case models.GameNines:
		return CalculateNines(players, holes, game.BetAmount), nil
	case models.GameMatchPlay:
		return CalculateMatchPlay(players, holes, game.BetAmount), nil
	case models.GameStableford:
		return CalculateStableford(players, holes, game.BetAmount), nil
	case models.GameSnake:
		return CalculateSnake(players, holes, game.BetAmount), nil
	case models.GameVegas:
		return CalculateVegas(players, holes, game.VegasTeams, game.BetAmount), nil
	case models.GameBanker:
		return CalculateBanker(players, holes, game.BankerDecisions, game.BetAmount), nil
	case models.GameBingoBangoBongo:
		return CalculateBingoBangoBongo(players, holes, game.BingoPoints, game.BetAmount), nil
	default:
		return nil, newError(CodeUnknownGameType, "unknown game type %q", game.GameType)
	}
}

// MinPlayers returns the smallest participant count a game type works with.
// The coordinator skips games below this instead of running them into a
// not-applicable result.
func MinPlayers(t models.GameType) int {
	switch t {
	case models.GameNassau, models.GameMatchPlay:
		return 2
	case models.GameVegas:
		return 4
	case models.GameBanker, models.GameBingoBangoBongo:
		return 3
	case models.GameStableford:
		return 1
	default:
		return 2
	}
}

// sortedHoles returns holes ordered by hole number without touching the
// caller's slice.
func sortedHoles(holes []models.Hole) []models.Hole {
	out := make([]models.Hole, len(holes))
	copy(out, holes)
	sort.Slice(out, func(i, j int) bool { return out[i].HoleNumber < out[j].HoleNumber })
	return out
}

// moneyZero builds a per-player money map initialised to zero so standings
// always carry every participant, including those who never won or lost.
func moneyZero(players []models.Player) map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(players))
	for _, p := range players {
		m[p.UserID] = decimal.Zero
	}
	return m
}

// standingsFromMoney turns a per-player money map into standings ordered by
// user id, with points carried in when the game tracks them.
func standingsFromMoney(players []models.Player, money map[int64]decimal.Decimal, points map[int64]float64) []Standing {
	out := make([]Standing, 0, len(players))
	for _, p := range players {
		s := Standing{UserID: p.UserID, Name: p.Name, Money: money[p.UserID]}
		if points != nil {
			s.Points = points[p.UserID]
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
