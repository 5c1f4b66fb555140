package service

import (
	"context"

	"github.com/greenside/wager-services/internal/wagersvc/models"
	"github.com/greenside/wager-services/internal/wagersvc/store"
)

// RoundService loads rounds and their full graph for finalization.
type RoundService struct {
	roundStore  *store.RoundStore
	holeStore   *store.HoleStore
	playerStore *store.PlayerStore
	gameStore   *store.GameStore
}

func NewRoundService(rounds *store.RoundStore, holes *store.HoleStore,
	players *store.PlayerStore, games *store.GameStore) *RoundService {
	return &RoundService{
		roundStore:  rounds,
		holeStore:   holes,
		playerStore: players,
		gameStore:   games,
	}
}

func (s *RoundService) GetRoundByID(ctx context.Context, roundID int64) (*models.Round, error) {
	return s.roundStore.GetRoundByID(ctx, roundID)
}

// LoadRoundGraph returns the round with holes, players+scores and games
// with decisions and presses, everything the engine needs in one value.
func (s *RoundService) LoadRoundGraph(ctx context.Context, roundID int64) (*models.Round, error) {
	return s.roundStore.GetRoundGraph(ctx, roundID, s.holeStore, s.playerStore, s.gameStore)
}

func (s *RoundService) GetGameResults(ctx context.Context, gameID int64) ([]models.GameResult, error) {
	return s.gameStore.GetGameResults(ctx, gameID)
}
