package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// MatchHole is one compared hole of a head-to-head match: both net scores
// and who took the hole. Holes missing either score never appear here.
type MatchHole struct {
	HoleNumber int    `json:"hole_number"`
	P1Net      int    `json:"p1_net"`
	P2Net      int    `json:"p2_net"`
	WinnerID   *int64 `json:"winner_id"`
}

// matchSegment plays p1 against p2 over holes [from,to]. It returns p1's
// up count (negative means p2 leads), the compared holes, and whether the
// match became mathematically decided. With stopWhenDecided false the whole
// range is counted even after the lead becomes unassailable, which is how
// Nassau segments and presses score; match play stops at the decision.
func matchSegment(p1, p2 models.Player, holes []models.Hole, from, to, minHandicap int, stopWhenDecided bool) (up int, detail []MatchHole, over bool) {
	for _, h := range sortedHoles(holes) {
		if h.HoleNumber < from || h.HoleNumber > to {
			continue
		}
		n1, ok1 := netScore(p1, h, minHandicap)
		n2, ok2 := netScore(p2, h, minHandicap)
		if !ok1 || !ok2 {
			continue
		}
		mh := MatchHole{HoleNumber: h.HoleNumber, P1Net: n1, P2Net: n2}
		switch {
		case n1 < n2:
			up++
			mh.WinnerID = &p1.UserID
		case n2 < n1:
			up--
			mh.WinnerID = &p2.UserID
		}
		detail = append(detail, mh)

		// The over check only runs on a compared hole: an unplayed hole can
		// still swing the match, so it never counts against the leader.
		remaining := to - h.HoleNumber
		if up > remaining || -up > remaining || h.HoleNumber == to {
			over = true
			if stopWhenDecided {
				return up, detail, true
			}
		}
	}
	return up, detail, over
}

// MatchPlayResult is the single 18-hole head-to-head match. Money only pays
// once the match is mathematically over; a live match settles nothing yet.
type MatchPlayResult struct {
	Status     string          `json:"status"`
	WinnerID   *int64          `json:"winner_id"`
	Margin     int             `json:"margin"`
	Over       bool            `json:"over"`
	StatusText string          `json:"status_text"`
	Holes      []MatchHole     `json:"holes"`
	Standings  []Standing      `json:"standings"`
	Bet        decimal.Decimal `json:"bet"`
}

func (r MatchPlayResult) Applicable() bool { return r.Status == StatusOK }

func (r MatchPlayResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateMatchPlay scores an 18-hole match between exactly two players.
func CalculateMatchPlay(players []models.Player, holes []models.Hole, bet decimal.Decimal) MatchPlayResult {
	if len(players) != 2 {
		return MatchPlayResult{Status: StatusNotApplicable, StatusText: "match play requires exactly 2 players"}
	}
	p1, p2 := players[0], players[1]
	minHcp := GroupMinHandicap(players)

	up, detail, over := matchSegment(p1, p2, holes, 1, 18, minHcp, true)

	res := MatchPlayResult{
		Status: StatusOK,
		Over:   over,
		Holes:  detail,
		Bet:    bet,
	}

	money := moneyZero(players)
	switch {
	case up > 0:
		res.WinnerID = &p1.UserID
		res.Margin = up
	case up < 0:
		res.WinnerID = &p2.UserID
		res.Margin = -up
	}

	switch {
	case over && res.WinnerID != nil:
		winner, loser := p1, p2
		if *res.WinnerID == p2.UserID {
			winner, loser = p2, p1
		}
		res.StatusText = fmt.Sprintf("Match over: %s wins", winner.Name)
		money[winner.UserID] = bet
		money[loser.UserID] = bet.Neg()
	case over:
		res.StatusText = "HALVED"
	case up > 0:
		res.StatusText = fmt.Sprintf("%d UP", up)
	case up < 0:
		res.StatusText = fmt.Sprintf("%d DOWN", -up)
	default:
		res.StatusText = "AS"
	}

	res.Standings = standingsFromMoney(players, money, nil)
	return res
}

// MatchPlayFlows converts a decided match into its single settlement flow.
// An undecided or halved match moves no money.
func MatchPlayFlows(r MatchPlayResult, players []models.Player) []SettlementFlow {
	if !r.Applicable() || !r.Over || r.WinnerID == nil || len(players) != 2 {
		return nil
	}
	loser := players[0].UserID
	if loser == *r.WinnerID {
		loser = players[1].UserID
	}
	return []SettlementFlow{{FromUserID: loser, ToUserID: *r.WinnerID, Amount: r.Bet}}
}
