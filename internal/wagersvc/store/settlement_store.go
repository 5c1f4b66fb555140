package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// Benign finalize-race outcomes. Whoever loses the race sees one of these
// and treats the round as settled by the other writer, not as a failure.
var (
	ErrRoundAlreadyCompleted = errors.New("round already completed")
	ErrSettlementsExist      = errors.New("settlements already exist for round")
	ErrRoundNotFound         = errors.New("round not found")
	ErrInvalidTransition     = errors.New("invalid settlement status transition")
)

type SettlementStore struct {
	db *pgxpool.Pool
}

func NewSettlementStore(db *pgxpool.Pool) *SettlementStore {
	return &SettlementStore{db: db}
}

// CommitFinalization writes a round's entire settlement set exactly once.
// The round row is locked FOR UPDATE and status plus settlement count are
// re-checked inside the same transaction that writes, so two racing
// finalize calls cannot both commit: the loser gets ErrRoundAlreadyCompleted
// or ErrSettlementsExist and nothing is partially written.
func (s *SettlementStore) CommitFinalization(ctx context.Context, roundID int64,
	settlements []models.Settlement, results []models.GameResult,
	pressStatus map[int64]models.PressStatus) error {

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin finalize transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status models.RoundStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM rounds WHERE id = $1 FOR UPDATE`, roundID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("failed to lock round %d: %w", roundID, err)
	}
	if status == models.RoundCompleted {
		return ErrRoundAlreadyCompleted
	}

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM settlements WHERE round_id = $1`, roundID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to count settlements for round %d: %w", roundID, err)
	}
	if existing > 0 {
		return ErrSettlementsExist
	}

	for _, st := range settlements {
		_, err = tx.Exec(ctx, `
			INSERT INTO settlements (round_id, from_user_id, to_user_id, amount, status)
			VALUES ($1, $2, $3, $4, $5)
		`, roundID, st.FromUserID, st.ToUserID, st.Amount, models.SettlementPending)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return fmt.Errorf("invalid reference in settlement: %s", pgErr.Message)
			}
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	for _, r := range results {
		_, err = tx.Exec(ctx, `
			INSERT INTO game_results (game_id, user_id, game_type, net_amount)
			VALUES ($1, $2, $3, $4)
		`, r.GameID, r.UserID, r.GameType, r.NetAmount)
		if err != nil {
			return fmt.Errorf("failed to insert game result: %w", err)
		}
	}

	for pressID, ps := range pressStatus {
		_, err = tx.Exec(ctx, `
			UPDATE presses SET status = $1, updated_at = NOW() WHERE id = $2
		`, ps, pressID)
		if err != nil {
			return fmt.Errorf("failed to update press %d: %w", pressID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE rounds SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.RoundCompleted, roundID)
	if err != nil {
		return fmt.Errorf("failed to complete round %d: %w", roundID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit finalize transaction: %w", err)
	}
	return nil
}

func (s *SettlementStore) GetSettlementsByRoundID(ctx context.Context, roundID int64) ([]models.Settlement, error) {
	query := `
		SELECT id, round_id, from_user_id, to_user_id, amount, status, created_at, updated_at
		FROM settlements
		WHERE round_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		if err := rows.Scan(&st.ID, &st.RoundID, &st.FromUserID, &st.ToUserID,
			&st.Amount, &st.Status, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		settlements = append(settlements, st)
	}
	return settlements, rows.Err()
}

// MarkPaid moves a settlement PENDING -> PAID; only the payer may do it.
func (s *SettlementStore) MarkPaid(ctx context.Context, settlementID, payerUserID int64) error {
	return s.transition(ctx, settlementID, payerUserID, "from_user_id",
		models.SettlementPending, models.SettlementPaid)
}

// MarkSettled moves a settlement PAID -> SETTLED; only the payee may do it.
func (s *SettlementStore) MarkSettled(ctx context.Context, settlementID, payeeUserID int64) error {
	return s.transition(ctx, settlementID, payeeUserID, "to_user_id",
		models.SettlementPaid, models.SettlementSettled)
}

func (s *SettlementStore) transition(ctx context.Context, settlementID, userID int64,
	partyColumn string, from, to models.SettlementStatus) error {

	query := fmt.Sprintf(`
		UPDATE settlements
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND %s = $3 AND status = $4
	`, partyColumn)

	tag, err := s.db.Exec(ctx, query, to, settlementID, userID, from)
	if err != nil {
		return fmt.Errorf("failed to update settlement %d: %w", settlementID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// GetNetPositionByUserID sums what the user is owed minus what they owe
// across all unsettled obligations.
func (s *SettlementStore) GetNetPositionByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var owed, owing decimal.Decimal

	err := s.db.QueryRow(ctx, `
        SELECT
            COALESCE(SUM(amount) FILTER (WHERE to_user_id = $1), 0),
            COALESCE(SUM(amount) FILTER (WHERE from_user_id = $1), 0)
        FROM settlements
        WHERE status <> 'SETTLED' AND (to_user_id = $1 OR from_user_id = $1)
    `, userID).Scan(&owed, &owing)

	if err != nil {
		return decimal.Zero, err
	}

	return owed.Sub(owing), nil
}
