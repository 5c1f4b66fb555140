package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

// GetGamesByRoundID loads the round's games with their participant lists,
// game-specific decisions and presses.
func (s *GameStore) GetGamesByRoundID(ctx context.Context, roundID int64) ([]models.Game, error) {
	query := `
		SELECT id, round_id, game_type, bet_amount, created_at, updated_at
		FROM games
		WHERE round_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get games for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.RoundID, &g.GameType, &g.BetAmount, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range games {
		if err := s.loadGameDetail(ctx, &games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}

// GetGameResults returns the persisted career records for one game, empty
// until the round is finalized.
func (s *GameStore) GetGameResults(ctx context.Context, gameID int64) ([]models.GameResult, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, user_id, game_type, net_amount, created_at
		FROM game_results
		WHERE game_id = $1
		ORDER BY user_id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var results []models.GameResult
	for rows.Next() {
		var r models.GameResult
		if err := rows.Scan(&r.ID, &r.GameID, &r.UserID, &r.GameType, &r.NetAmount, &r.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *GameStore) loadGameDetail(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx,
		`SELECT user_id FROM game_players WHERE game_id = $1 ORDER BY user_id`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get players for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		g.PlayerIDs = append(g.PlayerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	switch g.GameType {
	case models.GameWolf:
		return s.loadWolfDecisions(ctx, g)
	case models.GameVegas:
		return s.loadVegasTeams(ctx, g)
	case models.GameBanker:
		return s.loadBankerDecisions(ctx, g)
	case models.GameBingoBangoBongo:
		return s.loadBingoPoints(ctx, g)
	case models.GameNassau, models.GameMatchPlay:
		return s.loadPresses(ctx, g)
	}
	return nil
}

func (s *GameStore) loadWolfDecisions(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx, `
		SELECT hole_number, wolf_user_id, partner_user_id, is_lone_wolf, is_blind
		FROM wolf_decisions
		WHERE game_id = $1
		ORDER BY hole_number
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get wolf decisions for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.WolfDecision
		if err := rows.Scan(&d.HoleNumber, &d.WolfUserID, &d.PartnerUserID, &d.IsLoneWolf, &d.IsBlind); err != nil {
			return err
		}
		g.WolfDecisions = append(g.WolfDecisions, d)
	}
	return rows.Err()
}

func (s *GameStore) loadVegasTeams(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx, `
		SELECT team_number, player1_id, player2_id
		FROM vegas_teams
		WHERE game_id = $1
		ORDER BY team_number
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get vegas teams for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var t models.VegasTeam
		if err := rows.Scan(&t.TeamNumber, &t.Player1ID, &t.Player2ID); err != nil {
			return err
		}
		g.VegasTeams = append(g.VegasTeams, t)
	}
	return rows.Err()
}

func (s *GameStore) loadBankerDecisions(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx, `
		SELECT hole_number, banker_user_id
		FROM banker_decisions
		WHERE game_id = $1
		ORDER BY hole_number
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get banker decisions for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.BankerDecision
		if err := rows.Scan(&d.HoleNumber, &d.BankerUserID); err != nil {
			return err
		}
		g.BankerDecisions = append(g.BankerDecisions, d)
	}
	return rows.Err()
}

func (s *GameStore) loadBingoPoints(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx, `
		SELECT hole_number, bingo_user_id, bango_user_id, bongo_user_id
		FROM bingo_bango_bongo_points
		WHERE game_id = $1
		ORDER BY hole_number
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get bingo points for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var pt models.BingoBangoBongoPoint
		if err := rows.Scan(&pt.HoleNumber, &pt.BingoUserID, &pt.BangoUserID, &pt.BongoUserID); err != nil {
			return err
		}
		g.BingoPoints = append(g.BingoPoints, pt)
	}
	return rows.Err()
}

func (s *GameStore) loadPresses(ctx context.Context, g *models.Game) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, game_id, segment, start_hole, initiated_by_id, bet_multiplier,
		       parent_press_id, status, created_at, updated_at
		FROM presses
		WHERE game_id = $1
		ORDER BY id
	`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get presses for game %d: %w", g.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Press
		if err := rows.Scan(&p.ID, &p.GameID, &p.Segment, &p.StartHole, &p.InitiatedByID,
			&p.BetMultiplier, &p.ParentPressID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		g.Presses = append(g.Presses, p)
	}
	return rows.Err()
}
