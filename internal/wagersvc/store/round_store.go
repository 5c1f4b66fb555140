package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

type RoundStore struct {
	db *pgxpool.Pool
}

func NewRoundStore(db *pgxpool.Pool) *RoundStore {
	return &RoundStore{db: db}
}

func (s *RoundStore) GetRoundByID(ctx context.Context, roundID int64) (*models.Round, error) {
	query := `
		SELECT id, course_id, status, created_at, updated_at
		FROM rounds
		WHERE id = $1
	`

	round := &models.Round{}
	err := s.db.QueryRow(ctx, query, roundID).Scan(
		&round.ID,
		&round.CourseID,
		&round.Status,
		&round.CreatedAt,
		&round.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // round not found
		}
		return nil, fmt.Errorf("failed to get round by ID: %w", err)
	}

	return round, nil
}

// GetRoundGraph loads the round with everything finalization needs: holes,
// players with their scores, and games with decisions and presses.
func (s *RoundStore) GetRoundGraph(ctx context.Context, roundID int64,
	holes *HoleStore, players *PlayerStore, games *GameStore) (*models.Round, error) {

	round, err := s.GetRoundByID(ctx, roundID)
	if err != nil || round == nil {
		return round, err
	}

	round.Holes, err = holes.GetHolesByRoundID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	round.Players, err = players.GetPlayersByRoundID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	round.Games, err = games.GetGamesByRoundID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return round, nil
}
