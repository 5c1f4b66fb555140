package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

// GetPlayersByRoundID returns the round's players with their scores loaded.
func (s *PlayerStore) GetPlayersByRoundID(ctx context.Context, roundID int64) ([]models.Player, error) {
	query := `
		SELECT rp.user_id, u.name, rp.course_handicap, rp.created_at, rp.updated_at
		FROM round_players rp
		JOIN users u ON u.user_id = rp.user_id
		WHERE rp.round_id = $1
		ORDER BY rp.user_id
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.UserID, &p.Name, &p.CourseHandicap, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range players {
		scores, err := s.getScores(ctx, roundID, players[i].UserID)
		if err != nil {
			return nil, err
		}
		players[i].Scores = scores
	}

	return players, nil
}

func (s *PlayerStore) getScores(ctx context.Context, roundID, userID int64) ([]models.Score, error) {
	query := `
		SELECT id, hole_number, strokes, putts, created_at, updated_at
		FROM scores
		WHERE round_id = $1 AND user_id = $2
		ORDER BY hole_number
	`

	rows, err := s.db.Query(ctx, query, roundID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores for user %d: %w", userID, err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var sc models.Score
		if err := rows.Scan(&sc.ID, &sc.HoleNumber, &sc.Strokes, &sc.Putts, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}

	return scores, rows.Err()
}
