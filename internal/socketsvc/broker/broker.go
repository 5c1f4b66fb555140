package broker

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/comm"
)

// Broker consumes finalized-round events from the wager service and pushes
// each settlement to the golfers on either end of it.
type Broker struct {
	Conn             *nats.Conn
	GetConnection    func(string) (*websocket.Conn, bool)
	GetUserSockets   func(int64) []string
	LastHeartbeatMap sync.Map // wager instance id -> last heartbeat time
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetUserSockets func(int64) []string) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetUserSockets: fncGetUserSockets,
	}
}

// Subscribe consumes a wager service topic.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleRoundFinalized)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// SubscribeHeartbeat tracks wager service instance liveness.
func (b *Broker) SubscribeHeartbeat(topic string) (*nats.Subscription, error) {
	return b.Conn.Subscribe(topic, func(msgNat *nats.Msg) {
		hb := comm.ServiceHeartbeat{}
		if err := json.Unmarshal(msgNat.Data, &hb); err != nil {
			log.Errorf("Error nats message %s", err)
			return
		}
		b.LastHeartbeatMap.Store(hb.ID, hb.Timestamp)
	})
}

// UpstreamStatus snapshots the last heartbeat seen per wager instance.
func (b *Broker) UpstreamStatus() map[string]string {
	status := map[string]string{}
	b.LastHeartbeatMap.Range(func(k, v interface{}) bool {
		id, ok := k.(string)
		if !ok {
			return true
		}
		if ts, ok := v.(time.Time); ok {
			status[id] = ts.UTC().Format(time.RFC3339)
		}
		return true
	})
	return status
}

func (b *Broker) handleRoundFinalized(msgNat *nats.Msg) {
	event := &comm.RoundFinalized{}
	if err := json.Unmarshal(msgNat.Data, event); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	for _, notice := range event.Settlements {
		b.pushToUser(notice.FromUserID, event.RoundID, notice)
		b.pushToUser(notice.ToUserID, event.RoundID, notice)
	}
}

func (b *Broker) pushToUser(userId, roundId int64, notice comm.SettlementNotice) {
	payload, err := json.Marshal(struct {
		Type    string                `json:"type"`
		RoundID int64                 `json:"round_id"`
		Notice  comm.SettlementNotice `json:"notice"`
	}{Type: "settlement", RoundID: roundId, Notice: notice})
	if err != nil {
		log.Errorf("Error marshaling settlement notice: %s", err)
		return
	}

	for _, socketId := range b.GetUserSockets(userId) {
		conn, ok := b.GetConnection(socketId)
		if !ok {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Errorf("Error pushing settlement to socket %s: %s", socketId, err)
		}
	}
}
