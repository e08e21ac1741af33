package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/comm"
)

// NATS topics between the gateway and the room service.
const (
	ActionTopic = "socket.service" // gateway -> room service
	EventTopic  = "room.service"   // room service -> gateway
)

// Broker delivers room-service events to websocket clients: single-socket
// messages, room-wide fan-outs, and the socket-room binding control flow.
type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetRoomSockets func(string) ([]string, bool)
	StoreRoom      func(socketId, roomCode string)
	RemoveRoom     func(socketId string)
}

func NewBroker(conn *nats.Conn,
	fncGetConnection func(string) (*websocket.Conn, bool),
	fncGetRoomSockets func(string) ([]string, bool),
	fncStoreRoom func(socketId, roomCode string),
	fncRemoveRoom func(socketId string)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetRoomSockets: fncGetRoomSockets,
		StoreRoom:      fncStoreRoom,
		RemoveRoom:     fncRemoveRoom,
	}
}

// Subscribe consumes events from the room service.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	return b.Conn.Subscribe(topic, b.handleMessages)
}

// Publish sends a message toward the room service.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}
	return nil
}

// handleMessages routes one room-service event: bind control messages
// update the gateway's room map and stop there; broadcast events fan out
// to every socket in the room; everything else goes to a single socket.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	if err := json.Unmarshal(msgNats.Data, message); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "socket-bind":
		var bind comm.BindData
		if err := json.Unmarshal(message.Data, &bind); err != nil {
			log.Errorf("malformed socket-bind: %v", err)
			return
		}
		b.StoreRoom(message.SocketId, bind.RoomCode)
	case "socket-unbind":
		b.RemoveRoom(message.SocketId)
	default:
		if message.Broadcast {
			b.broadcast(message)
		} else {
			b.sendMessage(message, message.SocketId)
		}
	}
}

func (b *Broker) broadcast(m *comm.WSMessage) {
	sockets, ok := b.GetRoomSockets(m.RoomCode)
	if !ok {
		return
	}
	for _, socketId := range sockets {
		b.sendMessage(m, socketId)
	}
}

// sendMessage writes one event to a web client.
func (b *Broker) sendMessage(m *comm.WSMessage, socketId string) {
	if conn, ok := b.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Println(err)
		}
	}
}
