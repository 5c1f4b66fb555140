package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/greenside/wager-services/internal/wagersvc/models"
	"github.com/greenside/wager-services/internal/wagersvc/store"
)

// SettlementService exposes the persisted settlement lifecycle: listing and
// the two-phase PENDING -> PAID -> SETTLED confirmation.
type SettlementService struct {
	settlementStore *store.SettlementStore
}

func NewSettlementService(store *store.SettlementStore) *SettlementService {
	return &SettlementService{settlementStore: store}
}

func (s *SettlementService) GetRoundSettlements(ctx context.Context, roundID int64) ([]models.Settlement, error) {
	return s.settlementStore.GetSettlementsByRoundID(ctx, roundID)
}

// MarkPaid is the payer's half of confirmation.
func (s *SettlementService) MarkPaid(ctx context.Context, settlementID, payerUserID int64) error {
	return s.settlementStore.MarkPaid(ctx, settlementID, payerUserID)
}

// MarkSettled is the payee's half of confirmation.
func (s *SettlementService) MarkSettled(ctx context.Context, settlementID, payeeUserID int64) error {
	return s.settlementStore.MarkSettled(ctx, settlementID, payeeUserID)
}

func (s *SettlementService) GetNetPosition(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.settlementStore.GetNetPositionByUserID(ctx, userID)
}
