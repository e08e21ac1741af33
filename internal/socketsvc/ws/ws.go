package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/comm"
	"github.com/mvarela/party-services/internal/socketsvc/broker"
)

// actions the gateway forwards to the room service; anything else from a
// client is dropped with a warning
var knownActions = map[string]bool{
	"create_room":           true,
	"join_room":             true,
	"check_room":            true,
	"reconnect_room":        true,
	"update_settings":       true,
	"generate_ai_words":     true,
	"start_game":            true,
	"start_random_game":     true,
	"start_voting":          true,
	"submit_vote":           true,
	"next_round":            true,
	"end_game":              true,
	"restart_game":          true,
	"start_werewolf_game":   true,
	"cupid_link":            true,
	"mark_night_victim":     true,
	"use_life_potion":       true,
	"use_death_potion":      true,
	"end_night":             true,
	"start_night":           true,
	"start_werewolf_voting": true,
	"werewolf_vote":         true,
	"hunter_shoots":         true,
	"get_all_roles":         true,
	"set_mayor":             true,
	"revive_player":         true,
}

type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	roomMap sync.Map // socketId -> room code
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage forwards one client action to the room service. The
// gateway never interprets game semantics; it only stamps the socket id
// and its known room binding.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	if !knownActions[message.Type] {
		log.Warnf("unknown action received: %s", message.Type)
		return
	}

	message.SocketId = socketId
	if room, ok := s.GetRoom(socketId); ok {
		message.RoomCode = room
	}

	bytes, err := json.Marshal(message)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}
	if err := s.Broker.Publish(broker.ActionTopic, bytes); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", broker.ActionTopic, err)
	}
}

// HandleDisconnect reports a dropped connection to the room service and
// forgets the socket. The disconnect is an independent event; any action
// already in flight for this socket completes on its own.
func (s *Ws) HandleDisconnect(socketId string) {
	msg := &comm.WSMessage{Type: "socket-disconnect", SocketId: socketId}
	if room, ok := s.GetRoom(socketId); ok {
		msg.RoomCode = room
	}

	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)

	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Failed to marshal disconnect for NATS: %v", err)
		return
	}
	if err := s.Broker.Publish(broker.ActionTopic, bytes); err != nil {
		log.Errorf("Failed to publish disconnect for socket %s: %v", socketId, err)
	}
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

func (s *Ws) StoreRoom(socketId string, roomCode string) {
	s.roomMap.Store(socketId, roomCode)
}

func (s *Ws) RemoveRoom(socketId string) {
	s.roomMap.Delete(socketId)
}

func (s *Ws) GetRoom(socketId string) (string, bool) {
	room, ok := s.roomMap.Load(socketId)
	if !ok {
		return "", false
	}
	return room.(string), true
}

// GetRoomSockets lists every socket currently bound to a room code.
func (s *Ws) GetRoomSockets(roomCode string) ([]string, bool) {
	var sockets []string
	found := false

	s.roomMap.Range(func(key, value interface{}) bool {
		if value.(string) == roomCode {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}
