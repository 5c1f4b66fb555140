package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// PressOutcome is the resolved state of one press: its final status from
// the initiator's point of view and the settlement it produced, if any.
type PressOutcome struct {
	PressID  int64              `json:"press_id"`
	Status   models.PressStatus `json:"status"`
	WinnerID *int64             `json:"winner_id"`
	Margin   int                `json:"margin"`
}

// ResolvePresses settles the press tree of a two-player Nassau or match
// play game. Presses form an arena keyed by parent id, so traversal is
// depth-first over record ids and cycle-free by construction: a press can
// only point at an already-created parent.
//
// Each press replays the hole-by-hole match over [startHole, segment end]
// with the same net scoring as the parent game. WON means the initiator's
// side took the pressed stretch, PUSHED a tie. A decided press emits one
// flow of bet times the press multiplier. Only ACTIVE presses resolve, and
// recursion only descends into ACTIVE children.
func ResolvePresses(players []models.Player, holes []models.Hole, presses []models.Press, bet decimal.Decimal) ([]PressOutcome, []SettlementFlow, error) {
	if len(presses) == 0 {
		return nil, nil, nil
	}
	if len(players) != 2 {
		return nil, nil, newError(CodeInvalidPress, "presses need a 2-player game, got %d players", len(players))
	}
	p1, p2 := players[0], players[1]
	minHcp := GroupMinHandicap(players)

	children := make(map[int64][]models.Press)
	var roots []models.Press
	for _, pr := range presses {
		if pr.ParentPressID == nil {
			roots = append(roots, pr)
		} else {
			children[*pr.ParentPressID] = append(children[*pr.ParentPressID], pr)
		}
	}
	sortPresses(roots)

	var outcomes []PressOutcome
	var flows []SettlementFlow

	var resolve func(pr models.Press) error
	resolve = func(pr models.Press) error {
		if pr.Status != models.PressActive {
			return nil
		}
		from, to := pr.Segment.HoleRange()
		if pr.StartHole < from || pr.StartHole > to {
			return newError(CodeInvalidPress, "press %d starts at hole %d outside segment %s", pr.ID, pr.StartHole, pr.Segment)
		}

		up, _, _ := matchSegment(p1, p2, holes, pr.StartHole, to, minHcp, false)

		out := PressOutcome{PressID: pr.ID}
		var winner, loser *models.Player
		switch {
		case up > 0:
			winner, loser = &p1, &p2
			out.Margin = up
		case up < 0:
			winner, loser = &p2, &p1
			out.Margin = -up
		}

		switch {
		case winner == nil:
			out.Status = models.PressPushed
		case winner.UserID == pr.InitiatedByID:
			out.Status = models.PressWon
		default:
			out.Status = models.PressLost
		}

		if winner != nil {
			out.WinnerID = &winner.UserID
			amount := bet.Mul(decimal.NewFromInt(int64(pr.BetMultiplier)))
			flows = append(flows, SettlementFlow{
				FromUserID: loser.UserID,
				ToUserID:   winner.UserID,
				Amount:     amount,
			})
		}
		outcomes = append(outcomes, out)

		kids := children[pr.ID]
		sortPresses(kids)
		for _, child := range kids {
			if err := resolve(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := resolve(root); err != nil {
			return nil, nil, err
		}
	}
	return outcomes, flows, nil
}

func sortPresses(ps []models.Press) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}
