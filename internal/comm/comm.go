package comm

import (
	"encoding/json"
)

// WSMessage is the envelope for every message crossing the NATS fabric
// between the socket gateway and the room service. RoomCode and Broadcast
// are routing hints for the gateway: a broadcast message is fanned out to
// every socket bound to the room, otherwise it goes to SocketId alone.
type WSMessage struct {
	Type      string          `json:"type"` // e.g. "join_room", "room_update"
	Data      json.RawMessage `json:"data"`
	SocketId  string          `json:"socketid"`
	RoomCode  string          `json:"room,omitempty"`
	Broadcast bool            `json:"broadcast,omitempty"`
}

// BindData tells the gateway to (un)bind a socket to a room code. These
// control messages are consumed by the gateway and never reach a client.
type BindData struct {
	RoomCode string `json:"room"`
}

// UpdateSettingsRequest is a sparse patch: only non-nil fields apply.
type UpdateSettingsRequest struct {
	Mode        *string   `json:"mode,omitempty"`
	Rounds      *int      `json:"rounds,omitempty"`
	Words       *[]string `json:"words,omitempty"`
	Wolves      *int      `json:"wolves,omitempty"`
	Seers       *int      `json:"seers,omitempty"`
	Witches     *int      `json:"witches,omitempty"`
	Hunters     *int      `json:"hunters,omitempty"`
	Cupids      *int      `json:"cupids,omitempty"`
	LittleGirls *int      `json:"little_girls,omitempty"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type CreateRoomResponse struct {
	Code     string `json:"code"`
	Pin      string `json:"pin"` // disclosed once, only to the creator
	PlayerId string `json:"player_id"`
}

type JoinRoomResponse struct {
	Code     string `json:"code"`
	PlayerId string `json:"player_id"`
}

type CheckRoomResponse struct {
	Exists  bool         `json:"exists"`
	Code    string       `json:"code,omitempty"`
	Mode    string       `json:"mode,omitempty"`
	State   string       `json:"state,omitempty"`
	Players []PlayerView `json:"players,omitempty"`
}

type ReconnectResponse struct {
	Code     string `json:"code"`
	PlayerId string `json:"player_id"`
	IsAdmin  bool   `json:"is_admin"`
}

// PlayerView is the public shape of a player inside a snapshot. Words,
// roles and lover links are delivered privately, never here.
type PlayerView struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	IsAlive   bool   `json:"is_alive"`
	IsMayor   bool   `json:"is_mayor"`
}

type SettingsView struct {
	Rounds      int `json:"rounds"`
	WordCount   int `json:"word_count"`
	Wolves      int `json:"wolves"`
	Seers       int `json:"seers"`
	Witches     int `json:"witches"`
	Hunters     int `json:"hunters"`
	Cupids      int `json:"cupids"`
	LittleGirls int `json:"little_girls"`
}

type RoundResultView struct {
	ImpostorId     string `json:"impostor_id"`
	ImpostorName   string `json:"impostor_name"`
	VotedOutId     string `json:"voted_out_id"`
	ImpostorCaught bool   `json:"impostor_caught"`
}

type DeathView struct {
	PlayerId string `json:"player_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsWolf   bool   `json:"is_wolf"`
	Cause    string `json:"cause"`
}

type RevealView struct {
	PlayerId string `json:"player_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsAlive  bool   `json:"is_alive"`
}

// RoomSnapshot is broadcast to the whole room on every state change.
type RoomSnapshot struct {
	Code       string            `json:"code"`
	Mode       string            `json:"mode"`
	State      string            `json:"state"`
	Round      int               `json:"round,omitempty"`
	Night      int               `json:"night,omitempty"`
	AdminId    string            `json:"admin_id"`
	Settings   SettingsView      `json:"settings"`
	Players    []PlayerView      `json:"players"`
	Votes      map[string]string `json:"votes,omitempty"`
	LastResult *RoundResultView  `json:"last_result,omitempty"`
	LastDeaths []DeathView       `json:"last_deaths,omitempty"`
	Winner     string            `json:"winner,omitempty"`
	Survivors  []RevealView      `json:"survivors,omitempty"`
}

// WordAssignment is the private per-round word delivery; the hidden
// impostor receives the sentinel instead of the round word.
type WordAssignment struct {
	Round int    `json:"round"`
	Word  string `json:"word"`
}

// RoleAssignment is the private role card. Allies is populated for
// werewolves only.
type RoleAssignment struct {
	Role        string   `json:"role"`
	Description string   `json:"description"`
	Allies      []string `json:"allies,omitempty"`
}

type LoverNotice struct {
	PartnerName string `json:"partner_name"`
}

// HunterInvite is sent to the dead hunter only, inviting one last shot.
type HunterInvite struct {
	Targets []PlayerView `json:"targets"`
}

type DeathNotice struct {
	Cause string `json:"cause"`
}

// RoleInfo is one row of the narrator's full role list.
type RoleInfo struct {
	PlayerId  string `json:"player_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsAlive   bool   `json:"is_alive"`
	IsLover   bool   `json:"is_lover"`
	IsMayor   bool   `json:"is_mayor"`
	Connected bool   `json:"connected"`
}

type RoleListResponse struct {
	Roles []RoleInfo `json:"roles"`
}

type GenerateWordsResponse struct {
	Words []string `json:"words"`
}

type GameOver struct {
	Winner    string       `json:"winner"`
	Survivors []RevealView `json:"survivors"`
}
