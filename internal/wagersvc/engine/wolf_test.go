package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

func TestWolfRotatesByHoleNumber(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, flatScores(4, 5)...),
		testPlayer(2, "Ben", 0, flatScores(4, 5)...),
		testPlayer(3, "Cal", 0, flatScores(4, 5)...),
		testPlayer(4, "Dee", 0, flatScores(4, 5)...),
	}

	res := CalculateWolf(players, testHoles(5), nil, money("1"))

	require.True(t, res.Applicable())
	require.Len(t, res.Holes, 5)
	assert.Equal(t, int64(1), res.Holes[0].WolfUserID)
	assert.Equal(t, int64(2), res.Holes[1].WolfUserID)
	assert.Equal(t, int64(3), res.Holes[2].WolfUserID)
	assert.Equal(t, int64(4), res.Holes[3].WolfUserID)
	assert.Equal(t, int64(1), res.Holes[4].WolfUserID) // wraps around
}

func TestWolfDecisionOverridesRotation(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, 3),
		testPlayer(2, "Ben", 0, 4),
		testPlayer(3, "Cal", 0, 4),
		testPlayer(4, "Dee", 0, 4),
	}
	decisions := []models.WolfDecision{
		{HoleNumber: 1, WolfUserID: 3, PartnerUserID: i64p(1)},
	}
	bet := money("1")

	res := CalculateWolf(players, testHoles(1), decisions, bet)

	require.True(t, res.Applicable())
	wh := res.Holes[0]
	assert.Equal(t, int64(3), wh.WolfUserID)
	require.NotNil(t, wh.PartnerUserID)
	assert.Equal(t, "WOLF", wh.Winner) // Ann's 3 is the wolf team's best ball

	// 2v2: each wolf-team member takes a bet off each opponent.
	m := res.MoneyByPlayer()
	assert.True(t, m[1].Equal(money("2")))
	assert.True(t, m[3].Equal(money("2")))
	assert.True(t, m[2].Equal(money("-2")))
	assert.True(t, m[4].Equal(money("-2")))
	assertZeroSum(t, m)
}

func TestWolfLoneWolfStakes(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, 3),
		testPlayer(2, "Ben", 0, 4),
		testPlayer(3, "Cal", 0, 4),
		testPlayer(4, "Dee", 0, 4),
	}
	decisions := []models.WolfDecision{
		{HoleNumber: 1, WolfUserID: 1, IsLoneWolf: true},
	}
	bet := money("1")

	res := CalculateWolf(players, testHoles(1), decisions, bet)

	require.True(t, res.Applicable())
	// Lone wolf plays for bet x 3, collected evenly from the three others.
	m := res.MoneyByPlayer()
	assert.True(t, m[1].Equal(money("3")), "got %s", m[1])
	for _, id := range []int64{2, 3, 4} {
		assert.True(t, m[id].Equal(money("-1")), "player %d got %s", id, m[id])
	}
	assertZeroSum(t, m)
}

func TestWolfBlindLoneWolfPlaysForFourBets(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, 5), // blind wolf loses the hole
		testPlayer(2, "Ben", 0, 4),
		testPlayer(3, "Cal", 0, 4),
		testPlayer(4, "Dee", 0, 4),
	}
	decisions := []models.WolfDecision{
		{HoleNumber: 1, WolfUserID: 1, IsLoneWolf: true, IsBlind: true},
	}
	bet := money("3")

	res := CalculateWolf(players, testHoles(1), decisions, bet)

	require.True(t, res.Applicable())
	m := res.MoneyByPlayer()
	assert.True(t, m[1].Equal(money("-12")), "got %s", m[1])
	for _, id := range []int64{2, 3, 4} {
		assert.True(t, m[id].Equal(money("4")), "player %d got %s", id, m[id])
	}
	assertZeroSum(t, m)
}

func TestWolfSkipsHolesMissingScores(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, 3, 0),
		testPlayer(2, "Ben", 0, 4, 0),
		testPlayer(3, "Cal", 0, 4, 4),
	}

	res := CalculateWolf(players, testHoles(2), nil, money("1"))

	require.True(t, res.Applicable())
	assert.True(t, res.Holes[0].Counted)
	assert.False(t, res.Holes[1].Counted)
	assertZeroSum(t, res.MoneyByPlayer())
}

func TestWolfTiedHoleMovesNothing(t *testing.T) {
	players := []models.Player{
		testPlayer(1, "Ann", 0, 4),
		testPlayer(2, "Ben", 0, 4),
		testPlayer(3, "Cal", 0, 5),
	}

	res := CalculateWolf(players, testHoles(1), nil, money("1"))

	require.True(t, res.Applicable())
	assert.Equal(t, "", res.Holes[0].Winner)
	for _, v := range res.MoneyByPlayer() {
		assert.True(t, v.IsZero())
	}
}
