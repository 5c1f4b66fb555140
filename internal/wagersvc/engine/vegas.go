package engine

import (
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// VegasHole is one hole of a Vegas game: both team numbers and the running
// differential contribution.
type VegasHole struct {
	HoleNumber  int  `json:"hole_number"`
	Team1Number int  `json:"team1_number"`
	Team2Number int  `json:"team2_number"`
	Diff        int  `json:"diff"` // team2 - team1; positive favours team 1
}

type VegasResult struct {
	Status    string          `json:"status"`
	Holes     []VegasHole     `json:"holes"`
	TotalDiff int             `json:"total_diff"`
	Standings []Standing      `json:"standings"`
	Bet       decimal.Decimal `json:"bet"`
}

func (r VegasResult) Applicable() bool { return r.Status == StatusOK }

func (r VegasResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(r.Standings))
	for _, s := range r.Standings {
		m[s.UserID] = s.Money
	}
	return m
}

// vegasNumber combines two net scores into the two-digit team number with
// the lower score as the tens digit: nets 4 and 7 make 47 no matter which
// named player shot the 4. That ordering is the game.
func vegasNumber(a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a*10 + b
}

// CalculateVegas runs a 4-player, two-team Vegas game. Anything but exactly
// four players split into two 2-player teams is not applicable rather than
// an error, matching the other fixed-count games.
func CalculateVegas(players []models.Player, holes []models.Hole, teams []models.VegasTeam, bet decimal.Decimal) VegasResult {
	if len(players) != 4 || len(teams) != 2 {
		return VegasResult{Status: StatusNotApplicable}
	}

	byID := make(map[int64]models.Player, 4)
	for _, p := range players {
		byID[p.UserID] = p
	}
	var team1, team2 models.VegasTeam
	for _, t := range teams {
		if t.TeamNumber == 1 {
			team1 = t
		} else {
			team2 = t
		}
	}
	members := []int64{team1.Player1ID, team1.Player2ID, team2.Player1ID, team2.Player2ID}
	seen := make(map[int64]bool, 4)
	for _, id := range members {
		if _, ok := byID[id]; !ok || seen[id] {
			return VegasResult{Status: StatusNotApplicable}
		}
		seen[id] = true
	}

	minHcp := GroupMinHandicap(players)
	res := VegasResult{Status: StatusOK, Bet: bet}

	for _, h := range sortedHoles(holes) {
		nets := make(map[int64]int, 4)
		ok := true
		for _, id := range members {
			n, scored := netScore(byID[id], h, minHcp)
			if !scored {
				ok = false
				break
			}
			nets[id] = n
		}
		if !ok {
			continue
		}
		vh := VegasHole{
			HoleNumber:  h.HoleNumber,
			Team1Number: vegasNumber(nets[team1.Player1ID], nets[team1.Player2ID]),
			Team2Number: vegasNumber(nets[team2.Player1ID], nets[team2.Player2ID]),
		}
		vh.Diff = vh.Team2Number - vh.Team1Number
		res.TotalDiff += vh.Diff
		res.Holes = append(res.Holes, vh)
	}

	// Each team-1 member wins totalDiff x bet and each team-2 member loses
	// it, mirror-opposite, so the four standings sum to zero.
	teamMoney := bet.Mul(decimal.NewFromInt(int64(res.TotalDiff)))
	money := map[int64]decimal.Decimal{
		team1.Player1ID: teamMoney,
		team1.Player2ID: teamMoney,
		team2.Player1ID: teamMoney.Neg(),
		team2.Player2ID: teamMoney.Neg(),
	}
	res.Standings = standingsFromMoney(players, money, nil)
	return res
}
