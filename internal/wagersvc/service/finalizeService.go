package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/wagersvc/engine"
	"github.com/greenside/wager-services/internal/wagersvc/models"
	"github.com/greenside/wager-services/internal/wagersvc/store"
)

// Cap violations reject the whole finalize with nothing committed; the
// organizer has to shrink the bets and retry.
var (
	ErrSettlementCapExceeded = errors.New("settlement exceeds per-settlement cap")
	ErrAggregateCapExceeded  = errors.New("round settlements exceed aggregate cap")
)

// RoundGraphLoader is what the coordinator needs from the round side.
type RoundGraphLoader interface {
	LoadRoundGraph(ctx context.Context, roundID int64) (*models.Round, error)
}

// FinalizationCommitter is the atomic compare-and-commit the persistence
// layer provides: status and settlement existence re-checked inside the
// same transaction that writes.
type FinalizationCommitter interface {
	CommitFinalization(ctx context.Context, roundID int64,
		settlements []models.Settlement, results []models.GameResult,
		pressStatus map[int64]models.PressStatus) error
}

// Notifier is invoked after a successful commit, outside the transaction.
type Notifier interface {
	RoundFinalized(roundID int64, settlements []models.Settlement)
	RoundResults(roundID int64, results []models.GameResult)
}

// FinalizeSummary is what a successful finalize hands back to the caller.
type FinalizeSummary struct {
	RoundID     int64               `json:"round_id"`
	Settlements []models.Settlement `json:"settlements"`
	GameResults []models.GameResult `json:"game_results"`
	PressStatus map[int64]models.PressStatus `json:"press_status,omitempty"`
}

// FinalizeService turns a round's games into persisted settlements exactly
// once: run every calculator, resolve presses, pool the flows, validate
// caps, consolidate, commit.
type FinalizeService struct {
	rounds    RoundGraphLoader
	committer FinalizationCommitter
	notifier  Notifier

	maxPerSettlement decimal.Decimal
	maxAggregate     decimal.Decimal
}

func NewFinalizeService(rounds RoundGraphLoader, committer FinalizationCommitter,
	notifier Notifier, maxPerSettlement, maxAggregate decimal.Decimal) *FinalizeService {
	return &FinalizeService{
		rounds:           rounds,
		committer:        committer,
		notifier:         notifier,
		maxPerSettlement: maxPerSettlement,
		maxAggregate:     maxAggregate,
	}
}

// IsAlreadyFinalized reports whether err is a benign finalize-race outcome:
// the round was settled by another writer, which the caller should treat as
// success by someone else, not an error worth surfacing.
func IsAlreadyFinalized(err error) bool {
	return errors.Is(err, store.ErrRoundAlreadyCompleted) || errors.Is(err, store.ErrSettlementsExist)
}

// FinalizeRound settles every game of the round. See the package spec for
// the exactly-once guarantee: the commit re-checks round state inside its
// own transaction, so of two racing callers exactly one persists.
func (s *FinalizeService) FinalizeRound(ctx context.Context, roundID int64) (*FinalizeSummary, error) {
	round, err := s.rounds.LoadRoundGraph(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, store.ErrRoundNotFound
	}
	if round.Status == models.RoundCompleted {
		return nil, store.ErrRoundAlreadyCompleted
	}

	var allFlows []engine.SettlementFlow
	var results []models.GameResult
	pressStatus := make(map[int64]models.PressStatus)

	for _, game := range round.Games {
		participants := round.PlayersByID(game.PlayerIDs)
		if len(participants) < engine.MinPlayers(game.GameType) {
			log.Infof("skipping game %d (%s): %d participants below minimum",
				game.ID, game.GameType, len(participants))
			continue
		}

		outcome, err := engine.Calculate(game, participants, round.Holes)
		if err != nil {
			return nil, fmt.Errorf("game %d (%s): %w", game.ID, game.GameType, err)
		}
		if !outcome.Applicable() {
			log.Infof("skipping game %d (%s): not applicable to its players",
				game.ID, game.GameType)
			continue
		}

		nets := outcome.MoneyByPlayer()
		flows, pressFlows, presses, err := s.gameFlows(game, participants, round.Holes, outcome)
		if err != nil {
			return nil, fmt.Errorf("game %d (%s): %w", game.ID, game.GameType, err)
		}
		for _, p := range presses {
			pressStatus[p.PressID] = p.Status
		}
		allFlows = append(allFlows, flows...)
		allFlows = append(allFlows, pressFlows...)

		// Press money belongs to the same game's career record.
		for _, f := range pressFlows {
			nets[f.ToUserID] = nets[f.ToUserID].Add(f.Amount)
			nets[f.FromUserID] = nets[f.FromUserID].Sub(f.Amount)
		}
		for _, p := range participants {
			results = append(results, models.GameResult{
				GameID:    game.ID,
				UserID:    p.UserID,
				GameType:  game.GameType,
				NetAmount: nets[p.UserID].Round(2),
			})
		}
	}

	if err := s.validateFlows(allFlows); err != nil {
		return nil, err
	}

	consolidated := engine.Consolidate(allFlows)
	settlements := make([]models.Settlement, 0, len(consolidated))
	for _, f := range consolidated {
		settlements = append(settlements, models.Settlement{
			RoundID:    roundID,
			FromUserID: f.FromUserID,
			ToUserID:   f.ToUserID,
			Amount:     f.Amount,
			Status:     models.SettlementPending,
		})
	}

	if err := s.committer.CommitFinalization(ctx, roundID, settlements, results, pressStatus); err != nil {
		return nil, err
	}

	log.Infof("round %d finalized: %d settlements, %d game results",
		roundID, len(settlements), len(results))

	if s.notifier != nil {
		// fire-and-forget, deliberately outside the transaction
		s.notifier.RoundFinalized(roundID, settlements)
		s.notifier.RoundResults(roundID, results)
	}

	return &FinalizeSummary{
		RoundID:     roundID,
		Settlements: settlements,
		GameResults: results,
		PressStatus: pressStatus,
	}, nil
}

// gameFlows produces the settlement flows for one game. Nassau, match play
// and skins have inherently pairwise money; everything else reduces its
// standings through the proportional allocation.
func (s *FinalizeService) gameFlows(game models.Game, participants []models.Player,
	holes []models.Hole, outcome engine.Outcome) (flows, pressFlows []engine.SettlementFlow, presses []engine.PressOutcome, err error) {

	switch game.GameType {
	case models.GameNassau:
		flows = engine.NassauFlows(outcome.(engine.NassauResult), participants)
		presses, pressFlows, err = engine.ResolvePresses(participants, holes, game.Presses, game.BetAmount)
		return flows, pressFlows, presses, err
	case models.GameMatchPlay:
		flows = engine.MatchPlayFlows(outcome.(engine.MatchPlayResult), participants)
		presses, pressFlows, err = engine.ResolvePresses(participants, holes, game.Presses, game.BetAmount)
		return flows, pressFlows, presses, err
	case models.GameSkins:
		return engine.SkinsFlows(outcome.(engine.SkinsResult)), nil, nil, nil
	default:
		return engine.ProportionalFlows(outcome.MoneyByPlayer()), nil, nil, nil
	}
}

// validateFlows enforces the per-settlement and aggregate caps and treats a
// negative amount as an internal bug, never clamped.
func (s *FinalizeService) validateFlows(flows []engine.SettlementFlow) error {
	total := decimal.Zero
	for _, f := range flows {
		if f.Amount.IsNegative() {
			log.Errorf("negative settlement flow computed: %d -> %d amount %s",
				f.FromUserID, f.ToUserID, f.Amount)
			return engine.ErrNegativeFlow
		}
		if f.Amount.GreaterThan(s.maxPerSettlement) {
			return fmt.Errorf("%w: %s from %d to %d (cap %s)",
				ErrSettlementCapExceeded, f.Amount, f.FromUserID, f.ToUserID, s.maxPerSettlement)
		}
		total = total.Add(f.Amount)
	}
	if total.GreaterThan(s.maxAggregate) {
		return fmt.Errorf("%w: total %s (cap %s)", ErrAggregateCapExceeded, total, s.maxAggregate)
	}
	return nil
}
