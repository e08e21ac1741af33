package broker

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/comm"
	"github.com/mvarela/party-services/internal/roomsvc/models"
	"github.com/mvarela/party-services/internal/roomsvc/registry"
	"github.com/mvarela/party-services/internal/roomsvc/service"
	"github.com/mvarela/party-services/internal/roomsvc/words"
)

const outTopic = "room.service"

// Broker consumes player actions from the socket gateway and publishes
// responses, private deliveries and room broadcasts back. Each message is
// dispatched on its own goroutine so rooms never block one another; the
// per-room mutex serializes everything that touches one room, broadcast
// included.
type Broker struct {
	Conn        *nats.Conn
	Registry    *registry.Registry
	RoomService *service.RoomService
	WordService *service.WordService
	WolfService *service.WerewolfService
	Generator   *words.Generator
}

func NewBroker(nc *nats.Conn, reg *registry.Registry, roomService *service.RoomService,
	wordService *service.WordService, wolfService *service.WerewolfService,
	generator *words.Generator) *Broker {
	return &Broker{
		Conn:        nc,
		Registry:    reg,
		RoomService: roomService,
		WordService: wordService,
		WolfService: wolfService,
		Generator:   generator,
	}
}

// SubscribeSocketService consumes inbound actions from the gateway.
func (b *Broker) SubscribeSocketService(topic string) (*nats.Subscription, error) {
	return b.Conn.Subscribe(topic, b.handleMessage)
}

func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	if err := json.Unmarshal(msgNat.Data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}
	go b.dispatch(msg)
}

func (b *Broker) dispatch(msg *comm.WSMessage) {
	switch msg.Type {
	case "create_room":
		b.handleCreateRoom(msg)
	case "join_room":
		b.handleJoinRoom(msg)
	case "check_room":
		b.handleCheckRoom(msg)
	case "reconnect_room":
		b.handleReconnect(msg)
	case "update_settings":
		b.handleUpdateSettings(msg)
	case "generate_ai_words":
		b.handleGenerateWords(msg)
	case "start_game":
		b.withRoom(msg, func(room *models.Room) error {
			if err := b.WordService.Start(room, msg.SocketId); err != nil {
				return err
			}
			b.publishWordCards(room)
			return nil
		})
	case "start_random_game":
		b.withRoom(msg, func(room *models.Room) error {
			if err := b.WordService.StartRandom(room, msg.SocketId); err != nil {
				return err
			}
			b.publishWordCards(room)
			return nil
		})
	case "start_voting":
		b.withRoom(msg, func(room *models.Room) error {
			return b.WordService.OpenVoting(room, msg.SocketId)
		})
	case "submit_vote":
		b.handleSubmitVote(msg)
	case "next_round":
		b.withRoom(msg, func(room *models.Room) error {
			if err := b.WordService.NextRound(room, msg.SocketId); err != nil {
				return err
			}
			if room.State == models.StatePlaying {
				b.publishWordCards(room)
			}
			return nil
		})
	case "end_game":
		b.handleEndGame(msg)
	case "restart_game":
		b.withRoom(msg, func(room *models.Room) error {
			return b.WordService.Restart(room, msg.SocketId)
		})
	case "start_werewolf_game":
		b.withRoom(msg, func(room *models.Room) error {
			if err := b.WolfService.Start(room, msg.SocketId); err != nil {
				return err
			}
			b.publishRoleCards(room)
			return nil
		})
	case "cupid_link":
		b.handleCupidLink(msg)
	case "mark_night_victim":
		b.handleNightAction(msg)
	case "use_life_potion":
		b.handleNightAction(msg)
	case "use_death_potion":
		b.handleNightAction(msg)
	case "end_night":
		b.withRoom(msg, func(room *models.Room) error {
			if err := b.WolfService.EndNight(room, msg.SocketId); err != nil {
				return err
			}
			b.publishWolfOutcome(room)
			return nil
		})
	case "start_night":
		b.withRoom(msg, func(room *models.Room) error {
			return b.WolfService.StartNight(room, msg.SocketId)
		})
	case "start_werewolf_voting":
		b.withRoom(msg, func(room *models.Room) error {
			return b.WolfService.StartVoting(room, msg.SocketId)
		})
	case "werewolf_vote":
		b.handleWerewolfVote(msg)
	case "hunter_shoots":
		b.handleHunterShoots(msg)
	case "get_all_roles":
		b.handleGetAllRoles(msg)
	case "set_mayor":
		b.handleTargetedOverride(msg, b.WolfService.SetMayor)
	case "revive_player":
		b.handleTargetedOverride(msg, b.WolfService.Revive)
	case "socket-disconnect":
		b.handleSocketDisconnect(msg)
	default:
		log.Warnf("unknown action received: %s", msg.Type)
	}
}

// withRoom runs an admin/phase action against msg's room under its lock
// and broadcasts the snapshot on success.
func (b *Broker) withRoom(msg *comm.WSMessage, fn func(room *models.Room) error) {
	var request struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	code := request.Code
	if code == "" {
		code = msg.RoomCode
	}
	room, ok := b.Registry.Get(code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if err := fn(room); err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishSnapshot(room)
}

func (b *Broker) handleCreateRoom(msg *comm.WSMessage) {
	var request struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil || request.Name == "" {
		b.PublishError(msg.SocketId, "a display name is required")
		return
	}

	room, admin := b.RoomService.CreateRoom(request.Name, msg.SocketId)

	room.Lock()
	defer room.Unlock()
	b.PublishBind(msg.SocketId, room.Code)
	b.PublishToSocket("create_room-response", comm.CreateRoomResponse{
		Code:     room.Code,
		Pin:      room.AdminPin,
		PlayerId: admin.Id,
	}, msg.SocketId)
	b.PublishSnapshot(room)
}

func (b *Broker) handleJoinRoom(msg *comm.WSMessage) {
	var request struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil || request.Name == "" {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	p, err := b.RoomService.Join(room, request.Name, msg.SocketId)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishBind(msg.SocketId, room.Code)
	b.PublishToSocket("join_room-response", comm.JoinRoomResponse{
		Code:     room.Code,
		PlayerId: p.Id,
	}, msg.SocketId)
	b.PublishSnapshot(room)
}

func (b *Broker) handleCheckRoom(msg *comm.WSMessage) {
	var request struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishToSocket("check_room-response", comm.CheckRoomResponse{Exists: false}, msg.SocketId)
		return
	}

	room.Lock()
	defer room.Unlock()
	snap := room.Snapshot()
	b.PublishToSocket("check_room-response", comm.CheckRoomResponse{
		Exists:  true,
		Code:    room.Code,
		Mode:    snap.Mode,
		State:   snap.State,
		Players: snap.Players,
	}, msg.SocketId)
}

func (b *Broker) handleReconnect(msg *comm.WSMessage) {
	var request struct {
		Code     string `json:"code"`
		PlayerId string `json:"player_id"`
		Pin      string `json:"pin"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	p, err := b.RoomService.Reconnect(room, request.PlayerId, msg.SocketId, request.Pin)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishBind(msg.SocketId, room.Code)
	b.PublishToSocket("reconnect_room-response", comm.ReconnectResponse{
		Code:     room.Code,
		PlayerId: p.Id,
		IsAdmin:  p.Id == room.AdminId,
	}, msg.SocketId)
	b.redeliverSecrets(room, p)
	b.PublishSnapshot(room)
}

// redeliverSecrets resends the private per-player state a reconnecting
// client lost with its old socket.
func (b *Broker) redeliverSecrets(room *models.Room, p *models.Player) {
	switch room.Mode {
	case models.ModeImpostor:
		if room.GameActive() && p.Word != "" {
			b.PublishToSocket("word_assigned", comm.WordAssignment{
				Round: room.Word.Round,
				Word:  p.Word,
			}, p.SocketId)
		}
	case models.ModeWerewolf:
		if p.Role == "" {
			return
		}
		card := comm.RoleAssignment{
			Role:        string(p.Role),
			Description: p.Role.Description(),
		}
		if p.Role.IsWolf() {
			card.Allies = b.WolfService.WolfAllies(room)
		}
		b.PublishToSocket("role_assigned", card, p.SocketId)
		if p.IsLover {
			if partner := room.FindPlayer(p.LoverId); partner != nil {
				b.PublishToSocket("lover_linked", comm.LoverNotice{PartnerName: partner.Name}, p.SocketId)
			}
		}
		// a pending shot outlives the socket that missed the invite
		if invite, ok := b.hunterInvite(room, p); ok {
			b.PublishToSocket("hunter_revenge", invite, p.SocketId)
		}
	}
}

// hunterInvite builds the retaliation invite when p is the player owed
// the pending shot.
func (b *Broker) hunterInvite(room *models.Room, p *models.Player) (comm.HunterInvite, bool) {
	if room.State != models.StateHunterRevenge {
		return comm.HunterInvite{}, false
	}
	hunter := b.WolfService.PendingHunter(room)
	if hunter == nil || hunter.Id != p.Id {
		return comm.HunterInvite{}, false
	}
	invite := comm.HunterInvite{}
	for _, t := range room.AlivePlayers() {
		invite.Targets = append(invite.Targets, comm.PlayerView{
			Id:        t.Id,
			Name:      t.Name,
			Connected: t.Connected,
			IsAlive:   t.IsAlive,
			IsMayor:   t.IsMayor,
		})
	}
	return invite, true
}

func (b *Broker) handleUpdateSettings(msg *comm.WSMessage) {
	var request struct {
		Code     string                     `json:"code"`
		Settings comm.UpdateSettingsRequest `json:"settings"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if err := b.RoomService.UpdateSettings(room, msg.SocketId, request.Settings); err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishSnapshot(room)
}

// handleGenerateWords calls the external service without holding the room
// lock; the lock is taken only to read the request context and to write
// the result back, re-checking authority and state in between.
func (b *Broker) handleGenerateWords(msg *comm.WSMessage) {
	var request struct {
		Code  string `json:"code"`
		Theme string `json:"theme"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	if !room.IsAdmin(msg.SocketId) {
		room.Unlock()
		b.PublishError(msg.SocketId, service.ErrNotAuthorized.Error())
		return
	}
	if room.State != models.StateLobby {
		room.Unlock()
		b.PublishError(msg.SocketId, service.ErrInvalidState.Error())
		return
	}
	count := request.Count
	if count < 1 {
		count = room.Settings.Rounds
	}
	room.Unlock()

	generated, err := b.Generator.Generate(context.Background(), request.Theme, count)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if !room.IsAdmin(msg.SocketId) || room.State != models.StateLobby {
		b.PublishError(msg.SocketId, service.ErrInvalidState.Error())
		return
	}
	room.Settings.Words = generated
	b.PublishToSocket("generate_ai_words-response", comm.GenerateWordsResponse{Words: generated}, msg.SocketId)
	b.PublishSnapshot(room)
}

func (b *Broker) handleSubmitVote(msg *comm.WSMessage) {
	var request struct {
		Code     string `json:"code"`
		TargetId string `json:"target_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if _, err := b.WordService.CastVote(room, msg.SocketId, request.TargetId); err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishSnapshot(room)
}

func (b *Broker) handleEndGame(msg *comm.WSMessage) {
	b.withRoom(msg, func(room *models.Room) error {
		if room.Mode == models.ModeWerewolf {
			if err := b.WolfService.EndGame(room, msg.SocketId); err != nil {
				return err
			}
			b.PublishToRoom("game_over", comm.GameOver{
				Winner:    string(room.Wolf.Winner),
				Survivors: room.RevealAll(),
			}, room.Code)
			return nil
		}
		return b.WordService.EndGame(room, msg.SocketId)
	})
}

func (b *Broker) handleCupidLink(msg *comm.WSMessage) {
	var request struct {
		Code    string `json:"code"`
		PlayerA string `json:"player_a"`
		PlayerB string `json:"player_b"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	a, pb, err := b.WolfService.CupidLink(room, msg.SocketId, request.PlayerA, request.PlayerB)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	// each lover learns the partner's name only, never the role
	if a.Connected {
		b.PublishToSocket("lover_linked", comm.LoverNotice{PartnerName: pb.Name}, a.SocketId)
	}
	if pb.Connected {
		b.PublishToSocket("lover_linked", comm.LoverNotice{PartnerName: a.Name}, pb.SocketId)
	}
	b.PublishAck("cupid_link-response", msg.SocketId)
}

// handleNightAction covers the narrator's secret night records: the wolf
// victim and the witch's two potions. No broadcast, only an ack, so the
// room cannot infer what the narrator touched.
func (b *Broker) handleNightAction(msg *comm.WSMessage) {
	var request struct {
		Code     string `json:"code"`
		TargetId string `json:"target_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	var err error
	switch msg.Type {
	case "mark_night_victim":
		err = b.WolfService.MarkNightVictim(room, msg.SocketId, request.TargetId)
	case "use_life_potion":
		err = b.WolfService.UseLifePotion(room, msg.SocketId)
	case "use_death_potion":
		err = b.WolfService.UseDeathPotion(room, msg.SocketId, request.TargetId)
	}
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishAck(msg.Type+"-response", msg.SocketId)
}

func (b *Broker) handleWerewolfVote(msg *comm.WSMessage) {
	var request struct {
		Code     string `json:"code"`
		TargetId string `json:"target_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	resolved, err := b.WolfService.CastVote(room, msg.SocketId, request.TargetId)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	if resolved {
		b.publishWolfOutcome(room)
	}
	b.PublishSnapshot(room)
}

func (b *Broker) handleHunterShoots(msg *comm.WSMessage) {
	var request struct {
		Code     string `json:"code"`
		TargetId string `json:"target_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if err := b.WolfService.HunterShoot(room, msg.SocketId, request.TargetId); err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.publishWolfOutcome(room)
	b.PublishSnapshot(room)
}

func (b *Broker) handleGetAllRoles(msg *comm.WSMessage) {
	var request struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	roles, err := b.WolfService.RoleList(room, msg.SocketId)
	if err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishToSocket("get_all_roles-response", comm.RoleListResponse{Roles: roles}, msg.SocketId)
}

func (b *Broker) handleTargetedOverride(msg *comm.WSMessage, fn func(room *models.Room, socketId, targetId string) error) {
	var request struct {
		Code     string `json:"code"`
		TargetId string `json:"target_id"`
	}
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		b.PublishError(msg.SocketId, "malformed request")
		return
	}
	room, ok := b.Registry.Get(request.Code)
	if !ok {
		b.PublishError(msg.SocketId, service.ErrRoomNotFound.Error())
		return
	}

	room.Lock()
	defer room.Unlock()
	if err := fn(room, msg.SocketId, request.TargetId); err != nil {
		b.PublishError(msg.SocketId, err.Error())
		return
	}
	b.PublishSnapshot(room)
}

// handleSocketDisconnect applies the mark-vs-remove policy when the
// gateway reports a dropped connection.
func (b *Broker) handleSocketDisconnect(msg *comm.WSMessage) {
	if msg.RoomCode == "" {
		return
	}
	room, ok := b.Registry.Get(msg.RoomCode)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()
	p, removed := b.RoomService.Disconnect(room, msg.SocketId)
	if p == nil {
		return
	}
	if removed {
		b.PublishUnbind(msg.SocketId)
	}
	if b.RoomService.ReapIfEmpty(room) {
		return
	}

	// a departed voter may have been the last vote missing
	switch room.State {
	case models.StateVoting:
		b.WordService.MaybeResolve(room)
	case models.StateWolfVoting:
		if b.WolfService.MaybeResolveVote(room) {
			b.publishWolfOutcome(room)
		}
	}
	b.PublishSnapshot(room)
}

// publishWordCards privately delivers each player's word for the round.
func (b *Broker) publishWordCards(room *models.Room) {
	for _, p := range room.Players {
		if !p.Connected {
			continue
		}
		b.PublishToSocket("word_assigned", comm.WordAssignment{
			Round: room.Word.Round,
			Word:  p.Word,
		}, p.SocketId)
	}
}

// publishRoleCards privately delivers each player's role; wolves also
// learn their allies' names.
func (b *Broker) publishRoleCards(room *models.Room) {
	allies := b.WolfService.WolfAllies(room)
	for _, p := range room.NonAdminPlayers() {
		if !p.Connected {
			continue
		}
		card := comm.RoleAssignment{
			Role:        string(p.Role),
			Description: p.Role.Description(),
		}
		if p.Role.IsWolf() {
			card.Allies = allies
		}
		b.PublishToSocket("role_assigned", card, p.SocketId)
	}
}

// publishWolfOutcome handles everything a cascade pass may have produced:
// death notices, the hunter's invite, or the end of the game.
func (b *Broker) publishWolfOutcome(room *models.Room) {
	for _, d := range room.Wolf.LastDeaths {
		if p := room.FindPlayer(d.PlayerId); p != nil && p.Connected {
			b.PublishToSocket("death_notice", comm.DeathNotice{Cause: d.Cause}, p.SocketId)
		}
	}

	if room.State == models.StateHunterRevenge {
		hunter := b.WolfService.PendingHunter(room)
		if hunter != nil && hunter.Connected {
			if invite, ok := b.hunterInvite(room, hunter); ok {
				b.PublishToSocket("hunter_revenge", invite, hunter.SocketId)
			}
		}
		return
	}

	if room.State == models.StateEnded {
		b.PublishToRoom("game_over", comm.GameOver{
			Winner:    string(room.Wolf.Winner),
			Survivors: room.RevealAll(),
		}, room.Code)
	}
}

func (b *Broker) PublishSnapshot(room *models.Room) {
	b.PublishToRoom("room_update", room.Snapshot(), room.Code)
}

func (b *Broker) PublishToSocket(msgType string, v interface{}, socketId string) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("[%s] unable to marshal payload: %v", msgType, err)
		return
	}
	b.publish(&comm.WSMessage{Type: msgType, Data: data, SocketId: socketId})
}

func (b *Broker) PublishToRoom(msgType string, v interface{}, roomCode string) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("[%s] unable to marshal payload: %v", msgType, err)
		return
	}
	b.publish(&comm.WSMessage{Type: msgType, Data: data, RoomCode: roomCode, Broadcast: true})
}

func (b *Broker) PublishError(socketId, message string) {
	data, _ := json.Marshal(comm.ErrorData{Message: message})
	b.publish(&comm.WSMessage{Type: "error-response", Data: data, SocketId: socketId})
}

func (b *Broker) PublishAck(msgType, socketId string) {
	b.publish(&comm.WSMessage{Type: msgType, SocketId: socketId})
}

// PublishBind tells the gateway to associate the socket with the room.
func (b *Broker) PublishBind(socketId, roomCode string) {
	data, _ := json.Marshal(comm.BindData{RoomCode: roomCode})
	b.publish(&comm.WSMessage{Type: "socket-bind", Data: data, SocketId: socketId})
}

// PublishUnbind drops the gateway's socket-room binding once the player
// leaves the roster for good.
func (b *Broker) PublishUnbind(socketId string) {
	b.publish(&comm.WSMessage{Type: "socket-unbind", SocketId: socketId})
}

func (b *Broker) publish(msg *comm.WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}
	if err := b.Conn.Publish(outTopic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", outTopic, err)
	}
}
