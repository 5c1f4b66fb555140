package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// pressPlayers: Ann takes holes 1-6, Ben takes 7-9, back nine halved.
func pressPlayers() []models.Player {
	annScores := append(flatScores(3, 6), flatScores(5, 3)...)
	annScores = append(annScores, flatScores(4, 9)...)
	benScores := flatScores(4, 18)
	return []models.Player{
		testPlayer(1, "Ann", 0, annScores...),
		testPlayer(2, "Ben", 0, benScores...),
	}
}

func TestResolvePressesReplaysFromStartHole(t *testing.T) {
	// Ben presses the front at hole 7 and takes all three remaining
	// holes, even though Ann owns the segment overall.
	presses := []models.Press{
		{ID: 1, Segment: models.PressFront, StartHole: 7, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressActive},
	}

	outcomes, flows, err := ResolvePresses(pressPlayers(), testHoles(18), presses, money("5"))

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.PressWon, outcomes[0].Status)
	assert.Equal(t, 3, outcomes[0].Margin)
	require.Len(t, flows, 1)
	assert.Equal(t, int64(1), flows[0].FromUserID)
	assert.Equal(t, int64(2), flows[0].ToUserID)
	assert.True(t, flows[0].Amount.Equal(money("5")))
}

func TestResolvePressesTreeDepthFirst(t *testing.T) {
	// A press on a press: the child replays a shorter tail of the same
	// segment under its own multiplier.
	presses := []models.Press{
		{ID: 1, Segment: models.PressFront, StartHole: 7, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressActive},
		{ID: 2, Segment: models.PressFront, StartHole: 9, InitiatedByID: 1, BetMultiplier: 2, ParentPressID: i64p(1), Status: models.PressActive},
	}

	outcomes, flows, err := ResolvePresses(pressPlayers(), testHoles(18), presses, money("5"))

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, int64(1), outcomes[0].PressID)
	assert.Equal(t, models.PressWon, outcomes[0].Status)
	assert.Equal(t, int64(2), outcomes[1].PressID)
	// Ann initiated the re-press but Ben took hole 9 as well.
	assert.Equal(t, models.PressLost, outcomes[1].Status)

	require.Len(t, flows, 2)
	assert.True(t, flows[0].Amount.Equal(money("5")))
	assert.True(t, flows[1].Amount.Equal(money("10")), "multiplier applies, got %s", flows[1].Amount)
}

func TestResolvePressesPushed(t *testing.T) {
	// The back nine is all halved: a back press ties and moves nothing.
	presses := []models.Press{
		{ID: 1, Segment: models.PressBack, StartHole: 10, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressActive},
	}

	outcomes, flows, err := ResolvePresses(pressPlayers(), testHoles(18), presses, money("5"))

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.PressPushed, outcomes[0].Status)
	assert.Nil(t, outcomes[0].WinnerID)
	assert.Empty(t, flows)
}

func TestResolvePressesOnlyActive(t *testing.T) {
	// A canceled press resolves nothing, and its subtree goes with it.
	presses := []models.Press{
		{ID: 1, Segment: models.PressFront, StartHole: 5, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressCanceled},
		{ID: 2, Segment: models.PressFront, StartHole: 7, InitiatedByID: 2, BetMultiplier: 1, ParentPressID: i64p(1), Status: models.PressActive},
	}

	outcomes, flows, err := ResolvePresses(pressPlayers(), testHoles(18), presses, money("5"))

	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Empty(t, flows)
}

func TestResolvePressesStartHoleMustFitSegment(t *testing.T) {
	presses := []models.Press{
		{ID: 1, Segment: models.PressFront, StartHole: 12, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressActive},
	}

	_, _, err := ResolvePresses(pressPlayers(), testHoles(18), presses, money("5"))

	require.Error(t, err)
	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, CodeInvalidPress, engErr.Code)
}

func TestResolvePressesNeedsTwoPlayers(t *testing.T) {
	players := append(pressPlayers(), testPlayer(3, "Cal", 0, flatScores(4, 18)...))
	presses := []models.Press{
		{ID: 1, Segment: models.PressFront, StartHole: 5, InitiatedByID: 2, BetMultiplier: 1, Status: models.PressActive},
	}

	_, _, err := ResolvePresses(players, testHoles(18), presses, money("5"))
	require.Error(t, err)
}

func TestResolvePressesEmptyIsNoop(t *testing.T) {
	outcomes, flows, err := ResolvePresses(pressPlayers(), testHoles(18), nil, money("5"))
	require.NoError(t, err)
	assert.Nil(t, outcomes)
	assert.Nil(t, flows)
}
