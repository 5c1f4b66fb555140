package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// SkinHole is one hole of a skins game. A skin is only awarded on a strict
// single lowest net; any tie rolls the pot forward. A hole with a missing
// score awards nothing and, unlike a tie, adds nothing to the carryover.
type SkinHole struct {
	HoleNumber int             `json:"hole_number"`
	WinnerID   *int64          `json:"winner_id"`
	WinnerNet  *int            `json:"winner_net"`
	Value      decimal.Decimal `json:"value"`
	Tied       bool            `json:"tied"`
	ScoresIn   bool            `json:"scores_in"`
}

// PlayerSkins is one player's skins line: how many skins and their value.
type PlayerSkins struct {
	UserID   int64           `json:"user_id"`
	Name     string          `json:"name"`
	Count    int             `json:"count"`
	Winnings decimal.Decimal `json:"winnings"`
}

type SkinsResult struct {
	Status    string          `json:"status"`
	Holes     []SkinHole      `json:"holes"`
	Skins     []PlayerSkins   `json:"skins"`
	TotalPot  decimal.Decimal `json:"total_pot"`  // sum of all awarded skins
	Carryover decimal.Decimal `json:"carryover"`  // rolled forward, not yet won
	Players   int             `json:"players"`
	Bet       decimal.Decimal `json:"bet"`
}

func (r SkinsResult) Applicable() bool { return r.Status == StatusOK }

// MoneyByPlayer nets each player's skins against their share of everyone
// else's: a skin of value V costs each of the other N-1 players V/(N-1).
func (r SkinsResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Skins))
	for _, s := range r.Skins {
		m[s.UserID] = decimal.Zero
	}
	if r.Players < 2 {
		return m
	}
	share := decimal.NewFromInt(int64(r.Players - 1))
	for _, w := range r.Skins {
		if w.Winnings.IsZero() {
			continue
		}
		perLoser := w.Winnings.Div(share)
		for _, o := range r.Skins {
			if o.UserID == w.UserID {
				continue
			}
			m[o.UserID] = m[o.UserID].Sub(perLoser)
		}
		m[w.UserID] = m[w.UserID].Add(w.Winnings)
	}
	return m
}

// CalculateSkins runs a 2-16 player skins game with carryover.
func CalculateSkins(players []models.Player, holes []models.Hole, bet decimal.Decimal) SkinsResult {
	if len(players) < 2 || len(players) > 16 {
		return SkinsResult{Status: StatusNotApplicable}
	}
	minHcp := GroupMinHandicap(players)

	res := SkinsResult{
		Status:    StatusOK,
		Players:   len(players),
		Bet:       bet,
		TotalPot:  decimal.Zero,
		Carryover: decimal.Zero,
	}

	counts := make(map[int64]int)
	winnings := make(map[int64]decimal.Decimal)

	for _, h := range sortedHoles(holes) {
		sh := SkinHole{HoleNumber: h.HoleNumber, Value: decimal.Zero, ScoresIn: true}

		var bestNet int
		var winner *models.Player
		tied := false
		for i := range players {
			n, ok := netScore(players[i], h, minHcp)
			if !ok {
				sh.ScoresIn = false
				break
			}
			switch {
			case winner == nil || n < bestNet:
				bestNet = n
				winner = &players[i]
				tied = false
			case n == bestNet:
				tied = true
			}
		}

		if !sh.ScoresIn {
			// unplayed hole: no winner, no carryover growth
			res.Holes = append(res.Holes, sh)
			continue
		}

		if tied {
			sh.Tied = true
			res.Carryover = res.Carryover.Add(bet)
			res.Holes = append(res.Holes, sh)
			continue
		}

		value := bet.Add(res.Carryover)
		res.Carryover = decimal.Zero
		sh.WinnerID = &winner.UserID
		net := bestNet
		sh.WinnerNet = &net
		sh.Value = value
		res.Holes = append(res.Holes, sh)

		counts[winner.UserID]++
		winnings[winner.UserID] = winnings[winner.UserID].Add(value)
		res.TotalPot = res.TotalPot.Add(value)
	}

	for _, p := range players {
		res.Skins = append(res.Skins, PlayerSkins{
			UserID:   p.UserID,
			Name:     p.Name,
			Count:    counts[p.UserID],
			Winnings: winnings[p.UserID],
		})
	}
	sort.Slice(res.Skins, func(i, j int) bool { return res.Skins[i].UserID < res.Skins[j].UserID })
	return res
}

// SkinsFlows pays each skin from the other players in equal shares.
func SkinsFlows(r SkinsResult) []SettlementFlow {
	if !r.Applicable() || r.Players < 2 {
		return nil
	}
	share := decimal.NewFromInt(int64(r.Players - 1))
	var flows []SettlementFlow
	for _, w := range r.Skins {
		if w.Winnings.IsZero() {
			continue
		}
		perLoser := w.Winnings.Div(share)
		for _, o := range r.Skins {
			if o.UserID == w.UserID {
				continue
			}
			flows = append(flows, SettlementFlow{FromUserID: o.UserID, ToUserID: w.UserID, Amount: perLoser})
		}
	}
	return flows
}
