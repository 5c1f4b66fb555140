package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/greenside/wager-services/internal/comm"
)

// Ws tracks live golfer connections so finalized-round notices can be
// pushed to the players they concern.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	userMap sync.Map // socketId -> userId
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles a message from a web client.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "init":
		s.handleInit(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleInit binds the socket to a golfer so settlement notices can find
// them later.
func (s *Ws) handleInit(socketId string, msg *comm.WSMessage) {

	var payload struct {
		UserId int64 `json:"user_id"`
	}

	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_init_data Malformed init payload %s", err)
		return
	}

	if payload.UserId == 0 {
		log.Error("Invalid init payload: missing user id")
		return
	}

	s.userMap.Store(socketId, payload.UserId)
	log.Infof("socket %s bound to user %d", socketId, payload.UserId)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

// GetUserSockets returns every socket currently bound to the user. A golfer
// can be connected from more than one device.
func (s *Ws) GetUserSockets(userId int64) []string {
	var sockets []string
	s.userMap.Range(func(key, value interface{}) bool {
		if value.(int64) == userId {
			sockets = append(sockets, key.(string))
		}
		return true
	})
	return sockets
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.userMap.Delete(socketId)
}
