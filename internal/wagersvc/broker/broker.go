package broker

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/comm"
	"github.com/greenside/wager-services/internal/wagersvc/models"
)

const (
	TopicRoundFinalized   = "wager.round.finalized"
	TopicRoundResults     = "wager.round.results"
	TopicServiceHeartbeat = "wager.service.heartbeat"
)

// Broker publishes post-commit events to the socket and stats services.
// Publishing is fire-and-forget: a failed publish is logged and never rolls
// back the settlement transaction that preceded it.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// RoundFinalized implements the finalize service's Notifier.
func (b *Broker) RoundFinalized(roundID int64, settlements []models.Settlement) {
	notices := make([]comm.SettlementNotice, 0, len(settlements))
	for _, s := range settlements {
		notices = append(notices, comm.SettlementNotice{
			SettlementID: s.ID,
			FromUserID:   s.FromUserID,
			ToUserID:     s.ToUserID,
			Amount:       s.Amount.StringFixed(2),
		})
	}

	event := comm.RoundFinalized{
		RoundID:     roundID,
		Settlements: notices,
		FinalizedAt: time.Now().UTC(),
	}

	b.publish(TopicRoundFinalized, event)
}

// RoundResults fans the career records out to the stats service.
func (b *Broker) RoundResults(roundID int64, results []models.GameResult) {
	records := make([]comm.GameResultRecord, 0, len(results))
	for _, r := range results {
		records = append(records, comm.GameResultRecord{
			RoundID:   roundID,
			GameID:    r.GameID,
			UserID:    r.UserID,
			GameType:  string(r.GameType),
			NetAmount: r.NetAmount.StringFixed(2),
		})
	}

	b.publish(TopicRoundResults, comm.RoundResults{
		RoundID:     roundID,
		GameResults: records,
		FinalizedAt: time.Now().UTC(),
	})
}

// StartHeartbeat publishes liveness for this instance until stop is closed.
func (b *Broker) StartHeartbeat(instanceID string, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.publish(TopicServiceHeartbeat, comm.ServiceHeartbeat{
					ID:        instanceID,
					Timestamp: time.Now().UTC(),
				})
			case <-stop:
				return
			}
		}
	}()
}

func (b *Broker) publish(topic string, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Error marshaling %s event: %s", topic, err)
		return
	}
	if err := b.Conn.Publish(topic, bytes); err != nil {
		log.Errorf("Error publishing to %s: %s", topic, err)
	}
}
