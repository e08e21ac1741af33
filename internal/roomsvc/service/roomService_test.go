package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarela/party-services/internal/comm"
	"github.com/mvarela/party-services/internal/roomsvc/models"
	"github.com/mvarela/party-services/internal/roomsvc/registry"
)

// newTestRoom creates a room with the first name as admin and the rest
// joined as regular players. Every player's socket id is "sock-<name>".
func newTestRoom(t *testing.T, names ...string) (*RoomService, *models.Room) {
	t.Helper()
	require.NotEmpty(t, names)

	reg := registry.NewRegistry()
	svc := NewRoomService(reg)
	room, _ := svc.CreateRoom(names[0], "sock-"+names[0])
	for i, name := range names[1:] {
		p, err := svc.Join(room, name, "sock-"+name)
		require.NoError(t, err)
		// spread join times so admin-transfer ordering is deterministic
		p.ConnectedAt = p.ConnectedAt.Add(time.Duration(i+1) * time.Second)
	}
	return svc, room
}

func player(t *testing.T, room *models.Room, name string) *models.Player {
	t.Helper()
	p := room.FindBySocket("sock-" + name)
	require.NotNil(t, p, "player %s not in roster", name)
	return p
}

func TestJoinOnlyInLobby(t *testing.T) {
	svc, room := newTestRoom(t, "ana")

	p, err := svc.Join(room, "ben", "sock-ben")
	require.NoError(t, err)
	assert.True(t, p.Connected)
	assert.Len(t, room.Players, 2)

	room.State = models.StatePlaying
	_, err = svc.Join(room, "cal", "sock-cal")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, room.Players, 2)
}

func TestDisconnectInLobbyRemoves(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben", "cal")

	p, removed := svc.Disconnect(room, "sock-ben")
	require.NotNil(t, p)
	assert.True(t, removed)
	assert.Len(t, room.Players, 2)
	assert.Nil(t, room.FindBySocket("sock-ben"))
}

func TestDisconnectDuringGameMarks(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	room.State = models.StatePlaying

	p, removed := svc.Disconnect(room, "sock-ben")
	require.NotNil(t, p)
	assert.False(t, removed)
	assert.False(t, p.Connected)
	assert.Len(t, room.Players, 2, "mid-game roster keeps the record for reconnects")
}

func TestDisconnectAdminTransfersToOldest(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben", "cal")
	ben := player(t, room, "ben")

	_, removed := svc.Disconnect(room, "sock-ana")
	assert.True(t, removed)
	assert.Equal(t, ben.Id, room.AdminId, "oldest-connected player inherits authority")
	assert.Equal(t, "ben", room.AdminName)
}

func TestDisconnectUnknownSocket(t *testing.T) {
	svc, room := newTestRoom(t, "ana")
	p, removed := svc.Disconnect(room, "sock-nobody")
	assert.Nil(t, p)
	assert.False(t, removed)
}

func TestReconnectRebindsSocket(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	room.State = models.StatePlaying
	ben := player(t, room, "ben")
	svc.Disconnect(room, "sock-ben")

	got, err := svc.Reconnect(room, ben.Id, "sock-ben2", "")
	require.NoError(t, err)
	assert.Same(t, ben, got)
	assert.True(t, ben.Connected)
	assert.Equal(t, "sock-ben2", ben.SocketId)
}

func TestReconnectRejectsConnectedTarget(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	ben := player(t, room, "ben")

	_, err := svc.Reconnect(room, ben.Id, "sock-other", "")
	assert.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestReconnectUnknownTarget(t *testing.T) {
	svc, room := newTestRoom(t, "ana")
	_, err := svc.Reconnect(room, "no-such-id", "sock-x", "")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAdminReconnectRequiresPin(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	room.State = models.StatePlaying
	ana := player(t, room, "ana")
	svc.Disconnect(room, "sock-ana")

	room.AdminPin = "4242"

	_, err := svc.Reconnect(room, ana.Id, "sock-ana2", "")
	assert.ErrorIs(t, err, ErrInvalidPin)
	assert.False(t, ana.Connected)

	_, err = svc.Reconnect(room, ana.Id, "sock-ana2", "0000")
	assert.ErrorIs(t, err, ErrInvalidPin)

	got, err := svc.Reconnect(room, ana.Id, "sock-ana2", "4242")
	require.NoError(t, err)
	assert.Equal(t, got.Id, room.AdminId)
}

func TestAbandonedImpostorRoomFirstReturnerTakesAuthority(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	room.State = models.StatePlaying
	ben := player(t, room, "ben")
	svc.Disconnect(room, "sock-ana")
	svc.Disconnect(room, "sock-ben")
	require.True(t, room.AllDisconnected())

	_, err := svc.Reconnect(room, ben.Id, "sock-ben2", "")
	require.NoError(t, err)
	assert.Equal(t, ben.Id, room.AdminId)
	assert.Equal(t, "ben", room.AdminName)
}

func TestAbandonedWerewolfRoomKeepsNarratorAuthority(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")
	room.Mode = models.ModeWerewolf
	room.State = models.StateNight
	ana := player(t, room, "ana")
	ben := player(t, room, "ben")
	svc.Disconnect(room, "sock-ana")
	svc.Disconnect(room, "sock-ben")

	_, err := svc.Reconnect(room, ben.Id, "sock-ben2", "")
	require.NoError(t, err)
	assert.Equal(t, ana.Id, room.AdminId, "werewolf narrator can only be restored through the PIN path")
}

func TestReapIfEmpty(t *testing.T) {
	svc, room := newTestRoom(t, "ana")
	assert.False(t, svc.ReapIfEmpty(room))

	svc.Disconnect(room, "sock-ana")
	assert.True(t, svc.ReapIfEmpty(room))
}

func TestUpdateSettings(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")

	rounds := 5
	words := []string{"sun", "tree", "rock", "bird", "lamp"}
	mode := string(models.ModeWerewolf)
	wolves := 2
	err := svc.UpdateSettings(room, "sock-ana", comm.UpdateSettingsRequest{
		Mode:   &mode,
		Rounds: &rounds,
		Words:  &words,
		Wolves: &wolves,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ModeWerewolf, room.Mode)
	assert.Equal(t, 5, room.Settings.Rounds)
	assert.Equal(t, words, room.Settings.Words)
	assert.Equal(t, 2, room.Settings.Wolves)
	assert.Equal(t, 1, room.Settings.Seers, "untouched fields keep their value")
}

func TestUpdateSettingsAuthority(t *testing.T) {
	svc, room := newTestRoom(t, "ana", "ben")

	rounds := 2
	err := svc.UpdateSettings(room, "sock-ben", comm.UpdateSettingsRequest{Rounds: &rounds})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	room.State = models.StatePlaying
	err = svc.UpdateSettings(room, "sock-ana", comm.UpdateSettingsRequest{Rounds: &rounds})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateSettingsRejectsUnknownMode(t *testing.T) {
	svc, room := newTestRoom(t, "ana")
	mode := "CHESS"
	err := svc.UpdateSettings(room, "sock-ana", comm.UpdateSettingsRequest{Mode: &mode})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, models.ModeImpostor, room.Mode)
}
