package comm

import (
	"encoding/json"
	"time"
)

// WSMessage is the envelope the socket service exchanges with web clients
// and forwards over NATS.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "init", "subscribe-round"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// SettlementNotice is one golfer's line of a finalized round: a directed
// obligation they are on one end of.
type SettlementNotice struct {
	SettlementID int64  `json:"settlement_id"`
	FromUserID   int64  `json:"from_user_id"`
	ToUserID     int64  `json:"to_user_id"`
	Amount       string `json:"amount"` // decimal string, already rounded to cents
}

// RoundFinalized is published on the wager.round.finalized topic after the
// settlement transaction commits. Delivery is fire-and-forget and not part
// of the transaction's success or failure.
type RoundFinalized struct {
	RoundID     int64              `json:"round_id"`
	Settlements []SettlementNotice `json:"settlements"`
	FinalizedAt time.Time          `json:"finalized_at"`
}

// GameResultRecord mirrors a persisted game_results row for the career
// stats consumer.
type GameResultRecord struct {
	RoundID   int64  `json:"round_id"`
	GameID    int64  `json:"game_id"`
	UserID    int64  `json:"user_id"`
	GameType  string `json:"game_type"`
	NetAmount string `json:"net_amount"`
}

// RoundResults carries the per-game career records for the stats service,
// published alongside RoundFinalized.
type RoundResults struct {
	RoundID     int64              `json:"round_id"`
	GameResults []GameResultRecord `json:"game_results"`
	FinalizedAt time.Time          `json:"finalized_at"`
}

// ServiceHeartbeat lets long-lived services report liveness over NATS.
type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service instance id
	Timestamp time.Time `json:"timestamp"`
}
