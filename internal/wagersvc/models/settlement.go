package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementStatus string

const (
	SettlementPending SettlementStatus = "PENDING" // created at finalization
	SettlementPaid    SettlementStatus = "PAID"    // payer says the money moved
	SettlementSettled SettlementStatus = "SETTLED" // payee confirms receipt
)

// Settlement is one persisted money obligation between two players of a
// round, produced by consolidating every game's flows at finalization.
// Amount is always positive; direction is FromUserID -> ToUserID.
type Settlement struct {
	ID         int64            `json:"id"`
	RoundID    int64            `json:"round_id"`
	FromUserID int64            `json:"from_user_id"`
	ToUserID   int64            `json:"to_user_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Status     SettlementStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
