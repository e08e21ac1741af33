package models

import (
	"sync"
)

type GameMode string

const (
	ModeImpostor GameMode = "IMPOSTOR"
	ModeWerewolf GameMode = "WEREWOLF"
)

type GameState string

const (
	// shared
	StateLobby GameState = "LOBBY"

	// impostor mode
	StatePlaying  GameState = "PLAYING"
	StateVoting   GameState = "VOTING"
	StateRoundEnd GameState = "ROUND_END"
	StateGameEnd  GameState = "GAME_END"

	// werewolf mode
	StateNight         GameState = "NIGHT"
	StateDay           GameState = "DAY"
	StateWolfVoting    GameState = "WOLF_VOTING"
	StateHunterRevenge GameState = "HUNTER_REVENGE"
	StateEnded         GameState = "ENDED"
)

// Room is one game session. The envelope fields are mode-independent;
// engine state lives in exactly one of Word or Wolf, selected by Mode.
// All reads and writes go through the room mutex, one action at a time.
type Room struct {
	mu sync.Mutex

	Code      string
	AdminId   string // stable player id of the current authority holder
	AdminName string // used to recognize the admin across reconnects
	AdminPin  string // 4 digits, constant for the room's lifetime
	Mode      GameMode
	State     GameState
	Settings  Settings
	Players   []*Player

	Word *WordState
	Wolf *WolfState
}

// WordState is the impostor-mode engine payload.
type WordState struct {
	Round      int
	Votes      map[string]string // voter id -> target id
	VoteOrder  []string          // voter ids in first-vote order
	LastResult *RoundResult
}

func NewWordState() *WordState {
	return &WordState{Round: 0, Votes: make(map[string]string)}
}

// WolfState is the werewolf-mode engine payload.
type WolfState struct {
	Night     int
	Votes     map[string]string
	VoteOrder []string

	NightVictim  string // pending wolf elimination, cleared by the heal potion
	PotionVictim string // pending kill-potion elimination
	HealUsed     bool
	PoisonUsed   bool
	CupidUsed    bool

	// HunterQueue holds dead hunters still owed their shot; ReturnState is
	// where play resumes once the queue drains without ending the game.
	HunterQueue []string
	ReturnState GameState

	LastDeaths []DeathRecord
	Winner     Faction
}

func NewWolfState() *WolfState {
	return &WolfState{Night: 1, Votes: make(map[string]string)}
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (r *Room) FindBySocket(socketId string) *Player {
	for _, p := range r.Players {
		if p.SocketId == socketId {
			return p
		}
	}
	return nil
}

// IsAdmin reports whether the socket currently holds room authority.
// Authority is re-checked on every admin-gated call, never cached.
func (r *Room) IsAdmin(socketId string) bool {
	p := r.FindBySocket(socketId)
	return p != nil && p.Connected && p.Id == r.AdminId
}

func (r *Room) RemovePlayer(id string) {
	for i, p := range r.Players {
		if p.Id == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// GameActive reports whether a game is in progress, i.e. the room is
// neither open for joining nor showing a final summary.
func (r *Room) GameActive() bool {
	switch r.State {
	case StateLobby, StateGameEnd, StateEnded:
		return false
	}
	return true
}

func (r *Room) AllDisconnected() bool {
	for _, p := range r.Players {
		if p.Connected {
			return false
		}
	}
	return true
}

// NonAdminPlayers are the role-eligible players: the werewolf narrator
// never receives a role and is never alive.
func (r *Room) NonAdminPlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Id != r.AdminId {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) AlivePlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.IsAlive {
			out = append(out, p)
		}
	}
	return out
}
