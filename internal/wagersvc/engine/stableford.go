package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// stablefordPoints maps net score relative to par to points. Anything
// worse than a bogey scores nothing; an albatross or better caps at 5.
func stablefordPoints(netToPar int) int {
	switch {
	case netToPar <= -3:
		return 5
	case netToPar == -2:
		return 4
	case netToPar == -1:
		return 3
	case netToPar == 0:
		return 2
	case netToPar == 1:
		return 1
	default:
		return 0
	}
}

type StablefordHole struct {
	HoleNumber int               `json:"hole_number"`
	Points     map[int64]int     `json:"points"`
}

type StablefordResult struct {
	Status    string           `json:"status"`
	Holes     []StablefordHole `json:"holes"`
	Standings []Standing       `json:"standings"`
	Bet       decimal.Decimal  `json:"bet"`
}

func (r StablefordResult) Applicable() bool { return r.Status == StatusOK }

func (r StablefordResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateStableford scores 1-16 players on points against par. Money is
// each player's points over the group average times the bet, which makes
// the game zero-sum by construction.
func CalculateStableford(players []models.Player, holes []models.Hole, bet decimal.Decimal) StablefordResult {
	n := len(players)
	if n < 1 || n > 16 {
		return StablefordResult{Status: StatusNotApplicable}
	}
	minHcp := GroupMinHandicap(players)

	res := StablefordResult{Status: StatusOK, Bet: bet}
	totals := make(map[int64]float64, n)

	for _, h := range sortedHoles(holes) {
		sh := StablefordHole{HoleNumber: h.HoleNumber, Points: make(map[int64]int, n)}
		for _, p := range players {
			net, ok := netScore(p, h, minHcp)
			if !ok {
				continue
			}
			pts := stablefordPoints(net - h.Par)
			sh.Points[p.UserID] = pts
			totals[p.UserID] += float64(pts)
		}
		if len(sh.Points) > 0 {
			res.Holes = append(res.Holes, sh)
		}
	}

	groupTotal := 0.0
	for _, p := range players {
		groupTotal += totals[p.UserID]
	}
	avg := groupTotal / float64(n)

	money := make(map[int64]decimal.Decimal, n)
	for _, p := range players {
		money[p.UserID] = decimal.NewFromFloat(totals[p.UserID] - avg).Mul(bet)
	}
	res.Standings = standingsFromMoney(players, money, totals)
	return res
}
