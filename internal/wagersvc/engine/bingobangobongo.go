package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// BingoBangoBongoHole echoes the three judged points of one hole. The
// points come from recorded decisions, not from strokes: first on the
// green, closest once everyone is on, first to hole out.
type BingoBangoBongoHole struct {
	HoleNumber  int    `json:"hole_number"`
	BingoUserID *int64 `json:"bingo_user_id"`
	BangoUserID *int64 `json:"bango_user_id"`
	BongoUserID *int64 `json:"bongo_user_id"`
}

type BingoBangoBongoResult struct {
	Status    string                `json:"status"`
	Holes     []BingoBangoBongoHole `json:"holes"`
	Standings []Standing            `json:"standings"`
	Bet       decimal.Decimal       `json:"bet"`
}

func (r BingoBangoBongoResult) Applicable() bool { return r.Status == StatusOK }

func (r BingoBangoBongoResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateBingoBangoBongo totals the judged points for 3-16 players and
// settles against the full-round expectation of 54/playerCount points
// (3 points times 18 holes).
func CalculateBingoBangoBongo(players []models.Player, holes []models.Hole, points []models.BingoBangoBongoPoint, bet decimal.Decimal) BingoBangoBongoResult {
	n := len(players)
	if n < 3 || n > 16 {
		return BingoBangoBongoResult{Status: StatusNotApplicable}
	}

	participant := make(map[int64]bool, n)
	for _, p := range players {
		participant[p.UserID] = true
	}

	totals := make(map[int64]float64, n)
	res := BingoBangoBongoResult{Status: StatusOK, Bet: bet}

	byHole := make(map[int]models.BingoBangoBongoPoint, len(points))
	for _, pt := range points {
		byHole[pt.HoleNumber] = pt
	}

	for _, h := range sortedHoles(holes) {
		pt, ok := byHole[h.HoleNumber]
		if !ok {
			continue
		}
		res.Holes = append(res.Holes, BingoBangoBongoHole{
			HoleNumber:  h.HoleNumber,
			BingoUserID: pt.BingoUserID,
			BangoUserID: pt.BangoUserID,
			BongoUserID: pt.BongoUserID,
		})
		for _, id := range []*int64{pt.BingoUserID, pt.BangoUserID, pt.BongoUserID} {
			if id != nil && participant[*id] {
				totals[*id]++
			}
		}
	}

	expected := 54.0 / float64(n)
	money := make(map[int64]decimal.Decimal, n)
	for _, p := range players {
		money[p.UserID] = decimal.NewFromFloat(totals[p.UserID] - expected).Mul(bet)
	}
	res.Standings = standingsFromMoney(players, money, totals)
	return res
}
