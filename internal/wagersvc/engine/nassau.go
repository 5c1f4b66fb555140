package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// NassauSegment is one of the three independent matches inside a Nassau:
// front nine, back nine and the whole eighteen. Segments share no state;
// winning the front says nothing about the back or the overall.
type NassauSegment struct {
	Segment  models.PressSegment `json:"segment"`
	WinnerID *int64              `json:"winner_id"`
	Margin   int                 `json:"margin"`
	Status   string              `json:"status"`
	Holes    []MatchHole         `json:"holes"`
}

type NassauResult struct {
	Status  string          `json:"status"`
	P1ID    int64           `json:"p1_id"`
	P2ID    int64           `json:"p2_id"`
	Front   NassauSegment   `json:"front"`
	Back    NassauSegment   `json:"back"`
	Overall NassauSegment   `json:"overall"`
	Bet     decimal.Decimal `json:"bet"`
}

func (r NassauResult) Applicable() bool { return r.Status == StatusOK }

// MoneyByPlayer nets the three segment bets. Each decided segment moves the
// bet amount from its loser to its winner.
func (r NassauResult) MoneyByPlayer() map[int64]decimal.Decimal {
	m := map[int64]decimal.Decimal{r.P1ID: decimal.Zero, r.P2ID: decimal.Zero}
	for _, seg := range []NassauSegment{r.Front, r.Back, r.Overall} {
		if seg.WinnerID == nil {
			continue
		}
		loser := r.P1ID
		if loser == *seg.WinnerID {
			loser = r.P2ID
		}
		m[*seg.WinnerID] = m[*seg.WinnerID].Add(r.Bet)
		m[loser] = m[loser].Sub(r.Bet)
	}
	return m
}

// CalculateNassau scores a two-player Nassau: three segment matches counted
// hole by hole on net score. Ties on a hole move nothing; a hole missing
// either score is skipped, not defaulted.
func CalculateNassau(players []models.Player, holes []models.Hole, bet decimal.Decimal) NassauResult {
	if len(players) != 2 {
		return NassauResult{Status: StatusNotApplicable}
	}
	p1, p2 := players[0], players[1]
	minHcp := GroupMinHandicap(players)

	segment := func(seg models.PressSegment) NassauSegment {
		from, to := seg.HoleRange()
		up, detail, over := matchSegment(p1, p2, holes, from, to, minHcp, false)
		out := NassauSegment{Segment: seg, Holes: detail}
		switch {
		case up > 0:
			out.WinnerID = &p1.UserID
			out.Margin = up
		case up < 0:
			out.WinnerID = &p2.UserID
			out.Margin = -up
		}
		switch {
		case out.WinnerID == nil && over:
			out.Status = "ALL SQUARE"
		case out.WinnerID == nil:
			out.Status = fmt.Sprintf("ALL SQUARE, %d holes compared", len(detail))
		case over:
			name := p1.Name
			if *out.WinnerID == p2.UserID {
				name = p2.Name
			}
			out.Status = fmt.Sprintf("%s wins %d up", name, out.Margin)
		default:
			name := p1.Name
			if *out.WinnerID == p2.UserID {
				name = p2.Name
			}
			out.Status = fmt.Sprintf("%s %d up with holes to play", name, out.Margin)
		}
		return out
	}

	return NassauResult{
		Status:  StatusOK,
		P1ID:    p1.UserID,
		P2ID:    p2.UserID,
		Front:   segment(models.PressFront),
		Back:    segment(models.PressBack),
		Overall: segment(models.PressOverall),
		Bet:     bet,
	}
}

// NassauFlows emits one flow per decided segment, loser to winner.
func NassauFlows(r NassauResult, players []models.Player) []SettlementFlow {
	if !r.Applicable() || len(players) != 2 {
		return nil
	}
	var flows []SettlementFlow
	for _, seg := range []NassauSegment{r.Front, r.Back, r.Overall} {
		if seg.WinnerID == nil {
			continue
		}
		loser := players[0].UserID
		if loser == *seg.WinnerID {
			loser = players[1].UserID
		}
		flows = append(flows, SettlementFlow{FromUserID: loser, ToUserID: *seg.WinnerID, Amount: r.Bet})
	}
	return flows
}
