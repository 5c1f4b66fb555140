package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/comm"
	"github.com/greenside/wager-services/internal/statsvc/store"
)

// Broker consumes round results off NATS and archives them.
type Broker struct {
	Conn        *nats.Conn
	ResultStore *store.ResultStore
}

func NewBroker(nc *nats.Conn, resultStore *store.ResultStore) *Broker {
	return &Broker{Conn: nc, ResultStore: resultStore}
}

// SubscribeRoundResults consumes the wager service's results topic. A queue
// group keeps multiple stats instances from double-archiving.
func (b *Broker) SubscribeRoundResults(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, "statsvc", b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessage(msgNat *nats.Msg) {
	results := comm.RoundResults{}
	if err := json.Unmarshal(msgNat.Data, &results); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.ResultStore.ArchiveResults(ctx, results); err != nil {
		log.Errorf("Error [ResultStore.ArchiveResults] round %d: %s", results.RoundID, err)
		return
	}
	log.Infof("archived %d game results for round %d", len(results.GameResults), results.RoundID)
}
