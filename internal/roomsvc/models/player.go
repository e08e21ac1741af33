package models

import "time"

// Player is one participant inside a room. Id is the stable game-visible
// identity assigned at join time; SocketId is the transport handle and is
// rebound on every reconnect. Authority and votes always reference Id.
type Player struct {
	Id          string
	SocketId    string
	Name        string
	Score       int // impostor mode only
	Connected   bool
	ConnectedAt time.Time // orders admin-transfer eligibility

	// impostor mode
	IsImpostor bool
	Word       string

	// werewolf mode
	Role    Role
	IsAlive bool
	IsLover bool
	LoverId string
	IsMayor bool
}

// ResetGameFields clears everything a finished or restarted game assigned.
func (p *Player) ResetGameFields() {
	p.Score = 0
	p.IsImpostor = false
	p.Word = ""
	p.Role = ""
	p.IsAlive = false
	p.IsLover = false
	p.LoverId = ""
	p.IsMayor = false
}
