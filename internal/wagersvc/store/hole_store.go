package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

type HoleStore struct {
	db *pgxpool.Pool
}

func NewHoleStore(db *pgxpool.Pool) *HoleStore {
	return &HoleStore{db: db}
}

func (s *HoleStore) GetHolesByRoundID(ctx context.Context, roundID int64) ([]models.Hole, error) {
	query := `
		SELECT h.hole_number, h.par, h.handicap_rank
		FROM holes h
		JOIN rounds r ON r.course_id = h.course_id
		WHERE r.id = $1
		ORDER BY h.hole_number
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holes for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var holes []models.Hole
	for rows.Next() {
		var h models.Hole
		if err := rows.Scan(&h.HoleNumber, &h.Par, &h.HandicapRank); err != nil {
			return nil, err
		}
		holes = append(holes, h)
	}

	return holes, rows.Err()
}
