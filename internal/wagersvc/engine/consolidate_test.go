package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flow(from, to int64, amount string) SettlementFlow {
	return SettlementFlow{FromUserID: from, ToUserID: to, Amount: money(amount)}
}

func TestConsolidateMergesSameDirection(t *testing.T) {
	out := Consolidate([]SettlementFlow{flow(1, 2, "10"), flow(1, 2, "5")})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].FromUserID)
	assert.Equal(t, int64(2), out[0].ToUserID)
	assert.True(t, out[0].Amount.Equal(money("15")))
}

func TestConsolidateNetsOpposingFlows(t *testing.T) {
	out := Consolidate([]SettlementFlow{flow(1, 2, "20"), flow(2, 1, "8")})

	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].FromUserID)
	assert.Equal(t, int64(2), out[0].ToUserID)
	assert.True(t, out[0].Amount.Equal(money("12")))
}

func TestConsolidateDropsZeroNets(t *testing.T) {
	out := Consolidate([]SettlementFlow{flow(1, 2, "10"), flow(2, 1, "10")})
	assert.Empty(t, out)
}

func TestConsolidateReversesNegativeNets(t *testing.T) {
	out := Consolidate([]SettlementFlow{flow(1, 2, "5"), flow(2, 1, "9")})

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].FromUserID)
	assert.Equal(t, int64(1), out[0].ToUserID)
	assert.True(t, out[0].Amount.Equal(money("4")))
}

func TestConsolidateOrderIndependent(t *testing.T) {
	flows := []SettlementFlow{
		flow(1, 2, "20"), flow(2, 1, "8"), flow(3, 1, "4"),
		flow(1, 3, "4"), flow(2, 3, "7"),
	}
	reversed := make([]SettlementFlow, len(flows))
	for i, f := range flows {
		reversed[len(flows)-1-i] = f
	}

	a := Consolidate(flows)
	b := Consolidate(reversed)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].FromUserID, b[i].FromUserID)
		assert.Equal(t, a[i].ToUserID, b[i].ToUserID)
		assert.True(t, a[i].Amount.Equal(b[i].Amount))
	}
}

func TestConsolidateRoundsToCents(t *testing.T) {
	third := money("10").Div(decimal.NewFromInt(3))
	out := Consolidate([]SettlementFlow{{FromUserID: 1, ToUserID: 2, Amount: third}})

	require.Len(t, out, 1)
	assert.True(t, out[0].Amount.Equal(money("3.33")), "got %s", out[0].Amount)
}

func TestConsolidateSortsOutput(t *testing.T) {
	out := Consolidate([]SettlementFlow{flow(3, 1, "2"), flow(1, 2, "2"), flow(1, 3, "5")})

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].FromUserID)
	assert.Equal(t, int64(2), out[0].ToUserID)
	assert.Equal(t, int64(1), out[1].FromUserID)
	assert.Equal(t, int64(3), out[1].ToUserID)
	assert.True(t, out[1].Amount.Equal(money("3")))
}

func TestProportionalFlowsSplitByWinnerShare(t *testing.T) {
	m := map[int64]decimal.Decimal{
		1: money("30"),
		2: money("10"),
		3: money("-40"),
	}

	flows := ProportionalFlows(m)

	require.Len(t, flows, 2)
	assert.Equal(t, int64(3), flows[0].FromUserID)
	assert.Equal(t, int64(1), flows[0].ToUserID)
	assert.True(t, flows[0].Amount.Equal(money("30")), "got %s", flows[0].Amount)
	assert.Equal(t, int64(2), flows[1].ToUserID)
	assert.True(t, flows[1].Amount.Equal(money("10")), "got %s", flows[1].Amount)
}

func TestProportionalFlowsConserveMoney(t *testing.T) {
	m := map[int64]decimal.Decimal{
		1: money("7"),
		2: money("3"),
		3: money("-4"),
		4: money("-6"),
	}

	flows := ProportionalFlows(m)

	paid := map[int64]decimal.Decimal{}
	for _, f := range flows {
		paid[f.FromUserID] = paid[f.FromUserID].Sub(f.Amount)
		paid[f.ToUserID] = paid[f.ToUserID].Add(f.Amount)
	}
	for id, want := range m {
		assert.True(t, paid[id].Equal(want), "player %d: want %s got %s", id, want, paid[id])
	}
}

func TestProportionalFlowsAllZeroIsNil(t *testing.T) {
	m := map[int64]decimal.Decimal{1: decimal.Zero, 2: decimal.Zero}
	assert.Nil(t, ProportionalFlows(m))
}
