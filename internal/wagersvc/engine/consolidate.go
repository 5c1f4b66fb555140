package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

type pairKey struct {
	from int64
	to   int64
}

// Consolidate reduces a pile of directed flows to the minimal equivalent
// set. Opposing flows between the same two players net incrementally: a
// flow whose reverse pair already has a balance subtracts from it instead
// of opening its own entry. Amounts round to cents on emit and pairs that
// net to zero are dropped, so no zero settlement is ever persisted. The
// output is independent of input order.
func Consolidate(flows []SettlementFlow) []SettlementFlow {
	net := make(map[pairKey]decimal.Decimal)
	for _, f := range flows {
		rev := pairKey{from: f.ToUserID, to: f.FromUserID}
		if _, ok := net[rev]; ok {
			net[rev] = net[rev].Sub(f.Amount)
			continue
		}
		key := pairKey{from: f.FromUserID, to: f.ToUserID}
		net[key] = net[key].Add(f.Amount)
	}

	out := make([]SettlementFlow, 0, len(net))
	for key, amount := range net {
		amount = amount.Round(2)
		switch {
		case amount.IsPositive():
			out = append(out, SettlementFlow{FromUserID: key.from, ToUserID: key.to, Amount: amount})
		case amount.IsNegative():
			out = append(out, SettlementFlow{FromUserID: key.to, ToUserID: key.from, Amount: amount.Abs()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromUserID != out[j].FromUserID {
			return out[i].FromUserID < out[j].FromUserID
		}
		return out[i].ToUserID < out[j].ToUserID
	})
	return out
}

// ProportionalFlows folds a game's zero-sum per-player money into pairwise
// flows: each loser's stake is split across the winners in proportion to
// each winner's share of the total winnings. This is the generic reduction
// for every game that has standings money rather than inherently pairwise
// results.
func ProportionalFlows(money map[int64]decimal.Decimal) []SettlementFlow {
	type stake struct {
		userID int64
		amount decimal.Decimal
	}
	var winners, losers []stake
	totalWin := decimal.Zero
	for id, amt := range money {
		switch {
		case amt.IsPositive():
			winners = append(winners, stake{id, amt})
			totalWin = totalWin.Add(amt)
		case amt.IsNegative():
			losers = append(losers, stake{id, amt.Abs()})
		}
	}
	if totalWin.IsZero() {
		return nil
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].userID < winners[j].userID })
	sort.Slice(losers, func(i, j int) bool { return losers[i].userID < losers[j].userID })

	var flows []SettlementFlow
	for _, l := range losers {
		for _, w := range winners {
			amount := l.amount.Mul(w.amount).Div(totalWin)
			if amount.IsZero() {
				continue
			}
			flows = append(flows, SettlementFlow{FromUserID: l.userID, ToUserID: w.userID, Amount: amount})
		}
	}
	return flows
}
