package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// WolfHole is one hole of a Wolf game: who the wolf was, the teams that
// fell out of the decision, both team best-ball nets and who took the hole.
type WolfHole struct {
	HoleNumber    int     `json:"hole_number"`
	WolfUserID    int64   `json:"wolf_user_id"`
	PartnerUserID *int64  `json:"partner_user_id"`
	IsLoneWolf    bool    `json:"is_lone_wolf"`
	IsBlind       bool    `json:"is_blind"`
	WolfNet       *int    `json:"wolf_net"`
	OpponentNet   *int    `json:"opponent_net"`
	Winner        string  `json:"winner"` // "WOLF", "OPPONENTS" or "" on a tie/skip
	Counted       bool    `json:"counted"`
}

type WolfResult struct {
	Status    string          `json:"status"`
	Holes     []WolfHole      `json:"holes"`
	Standings []Standing      `json:"standings"`
	Bet       decimal.Decimal `json:"bet"`
}

func (r WolfResult) Applicable() bool { return r.Status == StatusOK }

func (r WolfResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// bestNet returns the lowest net among members that have a score.
func bestNet(members []models.Player, h models.Hole, minHcp int) (int, bool) {
	best := 0
	found := false
	for _, p := range members {
		n, ok := netScore(p, h, minHcp)
		if !ok {
			continue
		}
		if !found || n < best {
			best = n
			found = true
		}
	}
	return best, found
}

// CalculateWolf runs a Wolf game. The wolf rotates round-robin by hole
// number unless a per-hole decision overrides it. Team score is the best
// net among team members; the lone wolf's team is just themselves.
func CalculateWolf(players []models.Player, holes []models.Hole, decisions []models.WolfDecision, bet decimal.Decimal) WolfResult {
	n := len(players)
	if n < 2 || n > 16 {
		return WolfResult{Status: StatusNotApplicable}
	}
	minHcp := GroupMinHandicap(players)

	byHole := make(map[int]models.WolfDecision, len(decisions))
	for _, d := range decisions {
		byHole[d.HoleNumber] = d
	}

	money := moneyZero(players)
	res := WolfResult{Status: StatusOK, Bet: bet}

	for _, h := range sortedHoles(holes) {
		wolf := players[(h.HoleNumber-1)%n]
		wh := WolfHole{HoleNumber: h.HoleNumber, WolfUserID: wolf.UserID}

		if d, ok := byHole[h.HoleNumber]; ok {
			for _, p := range players {
				if p.UserID == d.WolfUserID {
					wolf = p
					break
				}
			}
			wh.WolfUserID = wolf.UserID
			wh.PartnerUserID = d.PartnerUserID
			wh.IsLoneWolf = d.IsLoneWolf
			wh.IsBlind = d.IsBlind
		}

		wolfTeam := []models.Player{wolf}
		if !wh.IsLoneWolf && wh.PartnerUserID != nil {
			for _, p := range players {
				if p.UserID == *wh.PartnerUserID {
					wolfTeam = append(wolfTeam, p)
					break
				}
			}
		}
		var opponents []models.Player
		for _, p := range players {
			onWolfTeam := false
			for _, w := range wolfTeam {
				if w.UserID == p.UserID {
					onWolfTeam = true
					break
				}
			}
			if !onWolfTeam {
				opponents = append(opponents, p)
			}
		}

		// A wolf that partnered the only other player has nobody to play
		// against; record the hole with no winner instead of failing.
		if len(opponents) == 0 {
			res.Holes = append(res.Holes, wh)
			continue
		}

		wolfScore, okW := bestNet(wolfTeam, h, minHcp)
		oppScore, okO := bestNet(opponents, h, minHcp)
		if !okW || !okO {
			res.Holes = append(res.Holes, wh)
			continue
		}
		wh.WolfNet = &wolfScore
		wh.OpponentNet = &oppScore
		wh.Counted = true

		switch {
		case wolfScore < oppScore:
			wh.Winner = "WOLF"
		case oppScore < wolfScore:
			wh.Winner = "OPPONENTS"
		}

		if wh.Winner != "" {
			applyWolfPayout(money, wolfTeam, opponents, wh, bet)
		}
		res.Holes = append(res.Holes, wh)
	}

	res.Standings = standingsFromMoney(players, money, nil)
	return res
}

// applyWolfPayout moves money for a decided Wolf hole. A normal hole swaps
// the bet between every opposing pair. A lone wolf plays the bet times
// (players-1), or a flat 4x when blind, spread evenly over the opponents so
// the hole stays zero-sum.
func applyWolfPayout(money map[int64]decimal.Decimal, wolfTeam, opponents []models.Player, wh WolfHole, bet decimal.Decimal) {
	wolfWon := wh.Winner == "WOLF"

	if wh.IsLoneWolf {
		playerCount := int64(len(wolfTeam) + len(opponents))
		total := bet.Mul(decimal.NewFromInt(playerCount - 1))
		if wh.IsBlind {
			total = bet.Mul(decimal.NewFromInt(4))
		}
		perOpponent := total.Div(decimal.NewFromInt(int64(len(opponents))))
		wolfID := wolfTeam[0].UserID
		for _, o := range opponents {
			if wolfWon {
				money[wolfID] = money[wolfID].Add(perOpponent)
				money[o.UserID] = money[o.UserID].Sub(perOpponent)
			} else {
				money[wolfID] = money[wolfID].Sub(perOpponent)
				money[o.UserID] = money[o.UserID].Add(perOpponent)
			}
		}
		return
	}

	for _, w := range wolfTeam {
		for _, o := range opponents {
			if wolfWon {
				money[w.UserID] = money[w.UserID].Add(bet)
				money[o.UserID] = money[o.UserID].Sub(bet)
			} else {
				money[w.UserID] = money[w.UserID].Sub(bet)
				money[o.UserID] = money[o.UserID].Add(bet)
			}
		}
	}
}
