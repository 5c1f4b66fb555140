package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// SnakeEvent records one three-putt: whoever three-putts takes the snake
// from its previous holder.
type SnakeEvent struct {
	HoleNumber int   `json:"hole_number"`
	UserID     int64 `json:"user_id"`
	Putts      int   `json:"putts"`
}

type SnakeResult struct {
	Status        string          `json:"status"`
	SnakeHolderID *int64          `json:"snake_holder_id"`
	ThreePutts    []SnakeEvent    `json:"three_putts"`
	Standings     []Standing      `json:"standings"`
	Bet           decimal.Decimal `json:"bet"`
}

func (r SnakeResult) Applicable() bool { return r.Status == StatusOK }

func (r SnakeResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateSnake finds who holds the snake at the end of the round: the
// last player to three-putt, not the first or the most frequent. Handicaps
// play no part. The holder pays every other player the bet; no three-putts
// means no snake and no money.
func CalculateSnake(players []models.Player, holes []models.Hole, bet decimal.Decimal) SnakeResult {
	n := len(players)
	if n < 2 || n > 16 {
		return SnakeResult{Status: StatusNotApplicable}
	}

	res := SnakeResult{Status: StatusOK, Bet: bet}

	for _, h := range sortedHoles(holes) {
		for _, p := range players {
			s, ok := p.ScoreForHole(h.HoleNumber)
			if !ok || s.Putts == nil || *s.Putts < 3 {
				continue
			}
			res.ThreePutts = append(res.ThreePutts, SnakeEvent{
				HoleNumber: h.HoleNumber,
				UserID:     p.UserID,
				Putts:      *s.Putts,
			})
			holder := p.UserID
			res.SnakeHolderID = &holder
		}
	}

	money := moneyZero(players)
	if res.SnakeHolderID != nil {
		holder := *res.SnakeHolderID
		money[holder] = bet.Mul(decimal.NewFromInt(int64(n - 1))).Neg()
		for _, p := range players {
			if p.UserID != holder {
				money[p.UserID] = bet
			}
		}
	}
	res.Standings = standingsFromMoney(players, money, nil)
	return res
}
