package service

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/comm"
	"github.com/mvarela/party-services/internal/roomsvc/models"
	"github.com/mvarela/party-services/internal/roomsvc/registry"
)

// RoomService owns roster membership, the connection lifecycle and
// authority transfer. All methods except CreateRoom expect the caller to
// hold the room lock.
type RoomService struct {
	registry *registry.Registry
}

func NewRoomService(reg *registry.Registry) *RoomService {
	return &RoomService{registry: reg}
}

func (s *RoomService) CreateRoom(name, socketId string) (*models.Room, *models.Player) {
	room, admin := s.registry.Create(name, socketId)
	log.Infof("room %s created by %s", room.Code, name)
	return room, admin
}

// Join appends a new player with default fields. Rooms only accept new
// players while open for joining.
func (s *RoomService) Join(room *models.Room, name, socketId string) (*models.Player, error) {
	if room.State != models.StateLobby {
		return nil, ErrInvalidState
	}
	p := &models.Player{
		Id:          uuid.New().String(),
		SocketId:    socketId,
		Name:        name,
		Connected:   true,
		ConnectedAt: time.Now(),
	}
	room.Players = append(room.Players, p)
	return p, nil
}

// Reconnect rebinds a disconnected player's record to a new socket. A
// target whose name matches the stored admin name is an admin reconnect:
// it demands the room PIN and restores authority to the rebound identity.
// When the whole room had gone dark, the first player back picks up
// authority, except in werewolf mode where only the PIN path may
// restore the narrator.
func (s *RoomService) Reconnect(room *models.Room, targetId, socketId, pin string) (*models.Player, error) {
	target := room.FindPlayer(targetId)
	if target == nil {
		return nil, ErrPlayerNotFound
	}
	if target.Connected {
		return nil, ErrAlreadyConnected
	}

	adminReturn := target.Name == room.AdminName
	if adminReturn && pin != room.AdminPin {
		return nil, ErrInvalidPin
	}
	abandoned := room.AllDisconnected()

	target.SocketId = socketId
	target.Connected = true
	target.ConnectedAt = time.Now()

	if adminReturn {
		room.AdminId = target.Id
	} else if abandoned && room.Mode == models.ModeImpostor {
		room.AdminId = target.Id
		room.AdminName = target.Name
		log.Infof("room %s: abandoned session, authority picked up by %s", room.Code, target.Name)
	}
	return target, nil
}

// Disconnect applies the mark-vs-remove policy: during an active game the
// player is only flagged so they can resume; in the lobby or a post-game
// summary they are removed outright and authority moves on if needed.
// Returns the affected player and whether they were removed.
func (s *RoomService) Disconnect(room *models.Room, socketId string) (*models.Player, bool) {
	p := room.FindBySocket(socketId)
	if p == nil || !p.Connected {
		return nil, false
	}

	if room.GameActive() {
		p.Connected = false
		return p, false
	}

	room.RemovePlayer(p.Id)
	if p.Id == room.AdminId {
		s.transferAdmin(room)
	}
	return p, true
}

// ReapIfEmpty removes the room from the registry once its roster is empty.
func (s *RoomService) ReapIfEmpty(room *models.Room) bool {
	if removed := s.registry.RemoveIfEmpty(room.Code); removed {
		log.Infof("room %s is empty, removed", room.Code)
		return true
	}
	return false
}

// transferAdmin hands authority to the oldest-connected remaining player.
func (s *RoomService) transferAdmin(room *models.Room) {
	var next *models.Player
	for _, p := range room.Players {
		if !p.Connected {
			continue
		}
		if next == nil || p.ConnectedAt.Before(next.ConnectedAt) {
			next = p
		}
	}
	if next == nil {
		return
	}
	room.AdminId = next.Id
	room.AdminName = next.Name
	log.Infof("room %s: authority transferred to %s", room.Code, next.Name)
}

// UpdateSettings merges the admin's patch into the room settings. Only
// provided fields change; settings are frozen once a game starts.
func (s *RoomService) UpdateSettings(room *models.Room, socketId string, patch comm.UpdateSettingsRequest) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StateLobby {
		return ErrInvalidState
	}

	if patch.Mode != nil {
		switch models.GameMode(*patch.Mode) {
		case models.ModeImpostor, models.ModeWerewolf:
			room.Mode = models.GameMode(*patch.Mode)
		default:
			return ErrInvalidState
		}
	}
	if patch.Rounds != nil {
		room.Settings.Rounds = *patch.Rounds
	}
	if patch.Words != nil {
		room.Settings.Words = append([]string(nil), (*patch.Words)...)
	}
	if patch.Wolves != nil {
		room.Settings.Wolves = *patch.Wolves
	}
	if patch.Seers != nil {
		room.Settings.Seers = *patch.Seers
	}
	if patch.Witches != nil {
		room.Settings.Witches = *patch.Witches
	}
	if patch.Hunters != nil {
		room.Settings.Hunters = *patch.Hunters
	}
	if patch.Cupids != nil {
		room.Settings.Cupids = *patch.Cupids
	}
	if patch.LittleGirls != nil {
		room.Settings.LittleGirls = *patch.LittleGirls
	}
	return nil
}
