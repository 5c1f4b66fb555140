package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// ninesDistribution is the points handed out per hole by net-score rank.
// The 9 points of the game's name only hold for 3 and 4 players; the
// 2-player game plays a 6/3 split, which the generic tie split turns into
// 4.5 each on a halved hole.
func ninesDistribution(playerCount int) []float64 {
	switch playerCount {
	case 2:
		return []float64{6, 3}
	case 3:
		return []float64{5, 3, 1}
	default:
		return []float64{5, 3, 1, 0}
	}
}

// NinesHole carries the points each player took on one hole.
type NinesHole struct {
	HoleNumber int               `json:"hole_number"`
	Points     map[int64]float64 `json:"points"`
}

// NinesStanding is one player's Nines line with per-segment points.
type NinesStanding struct {
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	FrontPoints float64         `json:"front_points"`
	BackPoints  float64         `json:"back_points"`
	TotalPoints float64         `json:"total_points"`
	Money       decimal.Decimal `json:"money"`
}

type NinesResult struct {
	Status    string          `json:"status"`
	Holes     []NinesHole     `json:"holes"`
	Standings []NinesStanding `json:"standings"`
	Bet       decimal.Decimal `json:"bet"`
}

func (r NinesResult) Applicable() bool { return r.Status == StatusOK }

func (r NinesResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// CalculateNines distributes 9 points per hole by net-score rank over 2-4
// players. Tied players split the sum of the tied ranks' points evenly.
// Money is settled per segment against the expected average points, so each
// segment is zero-sum on its own.
func CalculateNines(players []models.Player, holes []models.Hole, bet decimal.Decimal) NinesResult {
	n := len(players)
	if n < 2 || n > 4 {
		return NinesResult{Status: StatusNotApplicable}
	}
	minHcp := GroupMinHandicap(players)
	dist := ninesDistribution(n)

	front := make(map[int64]float64, n)
	back := make(map[int64]float64, n)
	res := NinesResult{Status: StatusOK, Bet: bet}
	frontHoles, backHoles := 0, 0

	for _, h := range sortedHoles(holes) {
		type entry struct {
			userID int64
			net    int
		}
		entries := make([]entry, 0, n)
		for _, p := range players {
			net, ok := netScore(p, h, minHcp)
			if !ok {
				break
			}
			entries = append(entries, entry{p.UserID, net})
		}
		if len(entries) != n {
			continue // hole not fully scored, no points awarded
		}

		sort.SliceStable(entries, func(i, j int) bool { return entries[i].net < entries[j].net })

		nh := NinesHole{HoleNumber: h.HoleNumber, Points: make(map[int64]float64, n)}
		for i := 0; i < n; {
			j := i
			sum := 0.0
			for j < n && entries[j].net == entries[i].net {
				sum += dist[j]
				j++
			}
			share := sum / float64(j-i)
			for k := i; k < j; k++ {
				nh.Points[entries[k].userID] = share
			}
			i = j
		}
		res.Holes = append(res.Holes, nh)

		if h.HoleNumber <= 9 {
			frontHoles++
			for id, pts := range nh.Points {
				front[id] += pts
			}
		} else {
			backHoles++
			for id, pts := range nh.Points {
				back[id] += pts
			}
		}
	}

	// Expected average per segment uses the holes actually counted, which
	// keeps each segment zero-sum when scores are missing.
	segMoney := func(points map[int64]float64, holesCounted int) map[int64]decimal.Decimal {
		avg := 9.0 * float64(holesCounted) / float64(n)
		out := make(map[int64]decimal.Decimal, n)
		for _, p := range players {
			out[p.UserID] = decimal.NewFromFloat(points[p.UserID] - avg).Mul(bet)
		}
		return out
	}

	total := make(map[int64]float64, n)
	for _, p := range players {
		total[p.UserID] = front[p.UserID] + back[p.UserID]
	}
	frontMoney := segMoney(front, frontHoles)
	backMoney := segMoney(back, backHoles)
	totalMoney := segMoney(total, frontHoles+backHoles)

	for _, p := range players {
		res.Standings = append(res.Standings, NinesStanding{
			UserID:      p.UserID,
			Name:        p.Name,
			FrontPoints: front[p.UserID],
			BackPoints:  back[p.UserID],
			TotalPoints: total[p.UserID],
			Money:       frontMoney[p.UserID].Add(backMoney[p.UserID]).Add(totalMoney[p.UserID]),
		})
	}
	sort.Slice(res.Standings, func(i, j int) bool { return res.Standings[i].UserID < res.Standings[j].UserID })
	return res
}
