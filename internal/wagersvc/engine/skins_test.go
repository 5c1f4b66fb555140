package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

func TestSkinsCarryoverRollsIntoNextWin(t *testing.T) {
	// Holes 1 and 2 tie, hole 3 goes to Ann outright: her skin is worth
	// the bet plus both carried bets.
	ann := testPlayer(1, "Ann", 0, 4, 4, 3)
	ben := testPlayer(2, "Ben", 0, 4, 4, 4)
	cal := testPlayer(3, "Cal", 0, 5, 4, 5)
	players := []models.Player{ann, ben, cal}
	bet := money("2")

	res := CalculateSkins(players, testHoles(3), bet)

	require.True(t, res.Applicable())
	require.Len(t, res.Holes, 3)
	assert.True(t, res.Holes[0].Tied)
	assert.True(t, res.Holes[1].Tied)
	require.NotNil(t, res.Holes[2].WinnerID)
	assert.Equal(t, int64(1), *res.Holes[2].WinnerID)
	assert.True(t, res.Holes[2].Value.Equal(money("6")), "got %s", res.Holes[2].Value)
	assert.True(t, res.Carryover.IsZero())
	assert.True(t, res.TotalPot.Equal(money("6")))

	m := res.MoneyByPlayer()
	assert.True(t, m[1].Equal(money("6")))
	assert.True(t, m[2].Equal(money("-3")))
	assert.True(t, m[3].Equal(money("-3")))
	assertZeroSum(t, m)
}

func TestSkinsUnplayedHoleAddsNoCarryover(t *testing.T) {
	// Hole 1 is missing Cal's score: nobody wins it and, unlike a tie, it
	// adds nothing to the pot. Ann's hole 2 skin is worth one bet.
	ann := testPlayer(1, "Ann", 0, 3, 3)
	ben := testPlayer(2, "Ben", 0, 4, 4)
	cal := testPlayer(3, "Cal", 0, 0, 4)
	players := []models.Player{ann, ben, cal}
	bet := money("2")

	res := CalculateSkins(players, testHoles(2), bet)

	require.True(t, res.Applicable())
	assert.False(t, res.Holes[0].ScoresIn)
	assert.Nil(t, res.Holes[0].WinnerID)
	assert.True(t, res.Holes[1].Value.Equal(bet), "got %s", res.Holes[1].Value)
}

func TestSkinsAllTiedLeavesCarryover(t *testing.T) {
	ann := testPlayer(1, "Ann", 0, 4, 4)
	ben := testPlayer(2, "Ben", 0, 4, 4)
	players := []models.Player{ann, ben}

	res := CalculateSkins(players, testHoles(2), money("2"))

	require.True(t, res.Applicable())
	assert.True(t, res.Carryover.Equal(money("4")))
	assert.True(t, res.TotalPot.IsZero())
	for _, v := range res.MoneyByPlayer() {
		assert.True(t, v.IsZero())
	}
	assert.Nil(t, SkinsFlows(res))
}

func TestSkinsFlowsSplitAcrossLosers(t *testing.T) {
	// A skin of 6 in a 4-player game costs each other player 2.
	ann := testPlayer(1, "Ann", 0, 4, 4, 3)
	ben := testPlayer(2, "Ben", 0, 4, 4, 4)
	cal := testPlayer(3, "Cal", 0, 4, 4, 4)
	dee := testPlayer(4, "Dee", 0, 4, 4, 4)
	players := []models.Player{ann, ben, cal, dee}

	res := CalculateSkins(players, testHoles(3), money("2"))
	flows := SkinsFlows(res)

	require.Len(t, flows, 3)
	for _, f := range flows {
		assert.Equal(t, int64(1), f.ToUserID)
		assert.True(t, f.Amount.Equal(money("2")), "got %s", f.Amount)
	}
}

func TestSkinsHandicapDecidesTheSkin(t *testing.T) {
	// Gross tie on the hardest hole, but Ben strokes there and takes the
	// skin on net.
	ann := testPlayer(1, "Ann", 0, 4)
	ben := testPlayer(2, "Ben", 1, 4)
	players := []models.Player{ann, ben}

	res := CalculateSkins(players, testHoles(1), money("2"))

	require.True(t, res.Applicable())
	require.NotNil(t, res.Holes[0].WinnerID)
	assert.Equal(t, int64(2), *res.Holes[0].WinnerID)
	require.NotNil(t, res.Holes[0].WinnerNet)
	assert.Equal(t, 3, *res.Holes[0].WinnerNet)
}

func TestSkinsNotApplicableSolo(t *testing.T) {
	players := []models.Player{testPlayer(1, "Ann", 0, 4)}
	assert.False(t, CalculateSkins(players, testHoles(1), money("2")).Applicable())
}
