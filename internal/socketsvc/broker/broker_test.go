package broker

import (
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarela/party-services/internal/comm"
)

func controlMsg(t *testing.T, msgType, socketId string, data interface{}) *nats.Msg {
	t.Helper()
	var raw json.RawMessage
	if data != nil {
		var err error
		raw, err = json.Marshal(data)
		require.NoError(t, err)
	}
	payload, err := json.Marshal(&comm.WSMessage{Type: msgType, SocketId: socketId, Data: raw})
	require.NoError(t, err)
	return &nats.Msg{Data: payload}
}

func TestBindControlFlow(t *testing.T) {
	bindings := map[string]string{}
	b := &Broker{
		StoreRoom:  func(socketId, roomCode string) { bindings[socketId] = roomCode },
		RemoveRoom: func(socketId string) { delete(bindings, socketId) },
	}

	b.handleMessages(controlMsg(t, "socket-bind", "sock-1", comm.BindData{RoomCode: "AB12"}))
	assert.Equal(t, map[string]string{"sock-1": "AB12"}, bindings)

	// a lobby removal unbinds the socket before it ever drops
	b.handleMessages(controlMsg(t, "socket-unbind", "sock-1", nil))
	assert.Empty(t, bindings)
}

func TestMalformedBindIsDropped(t *testing.T) {
	bindings := map[string]string{}
	b := &Broker{
		StoreRoom:  func(socketId, roomCode string) { bindings[socketId] = roomCode },
		RemoveRoom: func(socketId string) { delete(bindings, socketId) },
	}

	payload, err := json.Marshal(&comm.WSMessage{
		Type: "socket-bind", SocketId: "sock-1", Data: json.RawMessage(`"not an object"`),
	})
	require.NoError(t, err)
	b.handleMessages(&nats.Msg{Data: payload})
	assert.Empty(t, bindings)
}
