package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// BankerHole is one hole of a Banker game: the banker against the single
// best net among everyone else.
type BankerHole struct {
	HoleNumber      int    `json:"hole_number"`
	BankerUserID    int64  `json:"banker_user_id"`
	BankerNet       *int   `json:"banker_net"`
	BestOpponentNet *int   `json:"best_opponent_net"`
	Outcome         string `json:"outcome"` // "BANKER", "PLAYERS" or "" on a tie/skip
}

type BankerResult struct {
	Status    string          `json:"status"`
	Holes     []BankerHole    `json:"holes"`
	Standings []Standing      `json:"standings"`
	Bet       decimal.Decimal `json:"bet"`
}

func (r BankerResult) Applicable() bool { return r.Status == StatusOK }

func (r BankerResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateBanker rotates the banker like Wolf unless a decision overrides
// the hole. The banker beats the field by beating its best net: a win
// collects the bet from every other player, a loss pays every other player,
// a tie moves nothing.
func CalculateBanker(players []models.Player, holes []models.Hole, decisions []models.BankerDecision, bet decimal.Decimal) BankerResult {
	n := len(players)
	if n < 3 || n > 16 {
		return BankerResult{Status: StatusNotApplicable}
	}
	minHcp := GroupMinHandicap(players)

	byHole := make(map[int]models.BankerDecision, len(decisions))
	for _, d := range decisions {
		byHole[d.HoleNumber] = d
	}

	money := moneyZero(players)
	res := BankerResult{Status: StatusOK, Bet: bet}

	for _, h := range sortedHoles(holes) {
		banker := players[(h.HoleNumber-1)%n]
		if d, ok := byHole[h.HoleNumber]; ok {
			for _, p := range players {
				if p.UserID == d.BankerUserID {
					banker = p
					break
				}
			}
		}
		bh := BankerHole{HoleNumber: h.HoleNumber, BankerUserID: banker.UserID}

		bankerNet, okB := netScore(banker, h, minHcp)
		var opponents []models.Player
		for _, p := range players {
			if p.UserID != banker.UserID {
				opponents = append(opponents, p)
			}
		}
		best, okO := bestNet(opponents, h, minHcp)
		if !okB || !okO {
			res.Holes = append(res.Holes, bh)
			continue
		}
		bh.BankerNet = &bankerNet
		bh.BestOpponentNet = &best

		switch {
		case bankerNet < best:
			bh.Outcome = "BANKER"
			for _, o := range opponents {
				money[banker.UserID] = money[banker.UserID].Add(bet)
				money[o.UserID] = money[o.UserID].Sub(bet)
			}
		case best < bankerNet:
			bh.Outcome = "PLAYERS"
			for _, o := range opponents {
				money[banker.UserID] = money[banker.UserID].Sub(bet)
				money[o.UserID] = money[o.UserID].Add(bet)
			}
		}
		res.Holes = append(res.Holes, bh)
	}

	res.Standings = standingsFromMoney(players, money, nil)
	return res
}
