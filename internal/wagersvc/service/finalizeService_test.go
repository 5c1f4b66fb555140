package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenside/wager-services/internal/wagersvc/models"
	"github.com/greenside/wager-services/internal/wagersvc/store"
)

func intp(v int) *int { return &v }

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeLoader struct {
	round *models.Round
	err   error
}

func (f *fakeLoader) LoadRoundGraph(ctx context.Context, roundID int64) (*models.Round, error) {
	return f.round, f.err
}

// fakeCommitter admits exactly one commit, the way the transactional
// re-check does: every later call sees the settlements already there.
type fakeCommitter struct {
	mu          sync.Mutex
	committed   bool
	commits     int
	settlements []models.Settlement
	results     []models.GameResult
	pressStatus map[int64]models.PressStatus
}

func (f *fakeCommitter) CommitFinalization(ctx context.Context, roundID int64,
	settlements []models.Settlement, results []models.GameResult,
	pressStatus map[int64]models.PressStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.committed {
		return store.ErrSettlementsExist
	}
	f.committed = true
	f.commits++
	f.settlements = settlements
	f.results = results
	f.pressStatus = pressStatus
	return nil
}

type fakeNotifier struct {
	mu             sync.Mutex
	finalizedCalls int
	resultsCalls   int
	settlements    []models.Settlement
}

func (f *fakeNotifier) RoundFinalized(roundID int64, settlements []models.Settlement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizedCalls++
	f.settlements = settlements
}

func (f *fakeNotifier) RoundResults(roundID int64, results []models.GameResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resultsCalls++
}

// testRound builds an active round with a 2-player Nassau where Ann takes
// every hole, plus an active press Ben loses.
func testRound() *models.Round {
	ann := models.Player{UserID: 1, Name: "Ann", CourseHandicap: intp(0)}
	ben := models.Player{UserID: 2, Name: "Ben", CourseHandicap: intp(0)}
	holes := make([]models.Hole, 0, 18)
	for i := 1; i <= 18; i++ {
		holes = append(holes, models.Hole{HoleNumber: i, Par: 4, HandicapRank: i})
		annStrokes, benStrokes := 3, 4
		ann.Scores = append(ann.Scores, models.Score{HoleNumber: i, Strokes: &annStrokes})
		ben.Scores = append(ben.Scores, models.Score{HoleNumber: i, Strokes: &benStrokes})
	}

	return &models.Round{
		ID:      77,
		Status:  models.RoundActive,
		Holes:   holes,
		Players: []models.Player{ann, ben},
		Games: []models.Game{
			{
				ID:        5,
				RoundID:   77,
				GameType:  models.GameNassau,
				BetAmount: dec("10"),
				PlayerIDs: []int64{1, 2},
				Presses: []models.Press{
					{ID: 9, GameID: 5, Segment: models.PressBack, StartHole: 14,
						InitiatedByID: 2, BetMultiplier: 2, Status: models.PressActive},
				},
			},
		},
	}
}

func newTestService(loader *fakeLoader, committer *fakeCommitter, notifier *fakeNotifier) *FinalizeService {
	return NewFinalizeService(loader, committer, notifier, dec("10000"), dec("100000"))
}

func TestFinalizeRoundSettlesGamesAndPresses(t *testing.T) {
	committer := &fakeCommitter{}
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeLoader{round: testRound()}, committer, notifier)

	summary, err := svc.FinalizeRound(context.Background(), 77)

	require.NoError(t, err)
	require.NotNil(t, summary)

	// Nassau: three segments at 10 each, plus the lost 20 press, all from
	// Ben to Ann and consolidated into a single settlement.
	require.Len(t, summary.Settlements, 1)
	s := summary.Settlements[0]
	assert.Equal(t, int64(2), s.FromUserID)
	assert.Equal(t, int64(1), s.ToUserID)
	assert.True(t, s.Amount.Equal(dec("50")), "got %s", s.Amount)
	assert.Equal(t, models.SettlementPending, s.Status)

	assert.Equal(t, models.PressLost, summary.PressStatus[9])

	// Game results carry press money in the same game's net.
	require.Len(t, summary.GameResults, 2)
	byUser := map[int64]models.GameResult{}
	for _, r := range summary.GameResults {
		byUser[r.UserID] = r
	}
	assert.True(t, byUser[1].NetAmount.Equal(dec("50")), "got %s", byUser[1].NetAmount)
	assert.True(t, byUser[2].NetAmount.Equal(dec("-50")), "got %s", byUser[2].NetAmount)

	assert.Equal(t, 1, committer.commits)
	assert.Equal(t, 1, notifier.finalizedCalls)
	assert.Equal(t, 1, notifier.resultsCalls)
}

func TestFinalizeRoundExactlyOnceUnderRace(t *testing.T) {
	committer := &fakeCommitter{}
	svc := newTestService(&fakeLoader{round: testRound()}, committer, &fakeNotifier{})

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.FinalizeRound(context.Background(), 77)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, benign := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case IsAlreadyFinalized(err):
			benign++
		default:
			t.Fatalf("unexpected finalize error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, benign)
	assert.Equal(t, 1, committer.commits)
}

func TestFinalizeRoundCompletedRoundIsBenign(t *testing.T) {
	round := testRound()
	round.Status = models.RoundCompleted
	svc := newTestService(&fakeLoader{round: round}, &fakeCommitter{}, &fakeNotifier{})

	_, err := svc.FinalizeRound(context.Background(), 77)

	require.Error(t, err)
	assert.True(t, IsAlreadyFinalized(err))
}

func TestFinalizeRoundNotFound(t *testing.T) {
	svc := newTestService(&fakeLoader{round: nil}, &fakeCommitter{}, &fakeNotifier{})

	_, err := svc.FinalizeRound(context.Background(), 404)

	require.ErrorIs(t, err, store.ErrRoundNotFound)
	assert.False(t, IsAlreadyFinalized(err))
}

func TestFinalizeRoundPerSettlementCap(t *testing.T) {
	committer := &fakeCommitter{}
	svc := NewFinalizeService(&fakeLoader{round: testRound()}, committer, &fakeNotifier{},
		dec("5"), dec("100000"))

	_, err := svc.FinalizeRound(context.Background(), 77)

	require.ErrorIs(t, err, ErrSettlementCapExceeded)
	assert.Equal(t, 0, committer.commits, "nothing may commit on a cap violation")
}

func TestFinalizeRoundAggregateCap(t *testing.T) {
	committer := &fakeCommitter{}
	svc := NewFinalizeService(&fakeLoader{round: testRound()}, committer, &fakeNotifier{},
		dec("10000"), dec("30"))

	_, err := svc.FinalizeRound(context.Background(), 77)

	require.ErrorIs(t, err, ErrAggregateCapExceeded)
	assert.Equal(t, 0, committer.commits)
}

func TestFinalizeRoundSkipsShortHandedGames(t *testing.T) {
	round := testRound()
	round.Games = append(round.Games, models.Game{
		ID: 6, RoundID: 77, GameType: models.GameVegas,
		BetAmount: dec("1"), PlayerIDs: []int64{1, 2},
	})
	committer := &fakeCommitter{}
	svc := newTestService(&fakeLoader{round: round}, committer, &fakeNotifier{})

	summary, err := svc.FinalizeRound(context.Background(), 77)

	require.NoError(t, err)
	// Only the Nassau contributed results; the 2-player Vegas was skipped.
	assert.Len(t, summary.GameResults, 2)
}
