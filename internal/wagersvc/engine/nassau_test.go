package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

func TestNassauIdenticalScoresAllSquare(t *testing.T) {
	ann := testPlayer(1, "Ann", 0, flatScores(4, 18)...)
	ben := testPlayer(2, "Ben", 0, flatScores(4, 18)...)
	players := []models.Player{ann, ben}

	res := CalculateNassau(players, testHoles(18), money("5"))

	require.True(t, res.Applicable())
	for _, seg := range []NassauSegment{res.Front, res.Back, res.Overall} {
		assert.Nil(t, seg.WinnerID, "segment %s", seg.Segment)
		assert.Equal(t, 0, seg.Margin, "segment %s", seg.Segment)
	}
	for _, v := range res.MoneyByPlayer() {
		assert.True(t, v.IsZero())
	}
	assert.Nil(t, NassauFlows(res, players))
}

func TestNassauSegmentsAreIndependent(t *testing.T) {
	// Ann takes holes 1-3, Ben takes holes 10-14, all else halved:
	// front to Ann by 3, back to Ben by 5, overall to Ben by 2.
	annScores := flatScores(4, 18)
	benScores := flatScores(4, 18)
	for i := 0; i < 3; i++ {
		annScores[i] = 3
	}
	for i := 9; i < 14; i++ {
		benScores[i] = 3
	}
	ann := testPlayer(1, "Ann", 0, annScores...)
	ben := testPlayer(2, "Ben", 0, benScores...)
	players := []models.Player{ann, ben}
	bet := money("5")

	res := CalculateNassau(players, testHoles(18), bet)

	require.True(t, res.Applicable())
	require.NotNil(t, res.Front.WinnerID)
	assert.Equal(t, int64(1), *res.Front.WinnerID)
	assert.Equal(t, 3, res.Front.Margin)
	require.NotNil(t, res.Back.WinnerID)
	assert.Equal(t, int64(2), *res.Back.WinnerID)
	assert.Equal(t, 5, res.Back.Margin)
	require.NotNil(t, res.Overall.WinnerID)
	assert.Equal(t, int64(2), *res.Overall.WinnerID)
	assert.Equal(t, 2, res.Overall.Margin)

	// Ann wins one segment bet and loses two.
	m := res.MoneyByPlayer()
	assert.True(t, m[1].Equal(bet.Neg()), "got %s", m[1])
	assert.True(t, m[2].Equal(bet), "got %s", m[2])
	assertZeroSum(t, m)

	flows := NassauFlows(res, players)
	require.Len(t, flows, 3)
	for _, f := range flows {
		assert.True(t, f.Amount.Equal(bet))
	}
}

func TestNassauCountsEveryScoredHole(t *testing.T) {
	// A runaway front still counts all nine holes: Nassau segments never
	// stop early the way match play does.
	annScores := flatScores(3, 9)
	ann := testPlayer(1, "Ann", 0, annScores...)
	ben := testPlayer(2, "Ben", 0, flatScores(4, 9)...)

	res := CalculateNassau([]models.Player{ann, ben}, testHoles(18), money("5"))

	require.True(t, res.Applicable())
	assert.Equal(t, 9, res.Front.Margin)
	assert.Len(t, res.Front.Holes, 9)
}

func TestNassauSkipsUnscoredHoles(t *testing.T) {
	// Only the front nine has been played: the back has no compared holes
	// and no winner, and moves no money.
	ann := testPlayer(1, "Ann", 0, flatScores(3, 9)...)
	ben := testPlayer(2, "Ben", 0, flatScores(4, 9)...)
	players := []models.Player{ann, ben}

	res := CalculateNassau(players, testHoles(18), money("5"))

	require.True(t, res.Applicable())
	assert.Nil(t, res.Back.WinnerID)
	assert.Empty(t, res.Back.Holes)
	require.NotNil(t, res.Front.WinnerID)
	require.NotNil(t, res.Overall.WinnerID)
	assertZeroSum(t, res.MoneyByPlayer())
}

func TestNassauHandicapStrokesLevelTheMatch(t *testing.T) {
	// Ben shoots one worse on every hole but strokes everywhere off an
	// 18 differential, so every hole nets halved.
	ann := testPlayer(1, "Ann", 0, flatScores(4, 18)...)
	ben := testPlayer(2, "Ben", 18, flatScores(5, 18)...)
	players := []models.Player{ann, ben}

	res := CalculateNassau(players, testHoles(18), money("5"))

	require.True(t, res.Applicable())
	for _, seg := range []NassauSegment{res.Front, res.Back, res.Overall} {
		assert.Nil(t, seg.WinnerID, "segment %s", seg.Segment)
	}
}

func TestNassauNotApplicableForOtherCounts(t *testing.T) {
	players := []models.Player{testPlayer(1, "Ann", 0, flatScores(4, 18)...)}
	assert.False(t, CalculateNassau(players, testHoles(18), money("5")).Applicable())
}
