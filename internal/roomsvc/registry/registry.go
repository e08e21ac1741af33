package registry

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvarela/party-services/internal/roomsvc/models"
)

// room codes stay short and typeable; collisions are re-rolled at creation
const (
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength = 4
)

// Registry holds every active room keyed by code. It exclusively owns
// room lifetime: rooms are created here and deleted when their roster
// empties out.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
	rnd   *rand.Rand
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*models.Room),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create builds a room with the initiator as sole player and admin, and
// returns it together with the admin player. The PIN is constant for the
// room's lifetime and is disclosed only through the creation response.
func (g *Registry) Create(adminName, socketId string) (*models.Room, *models.Player) {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := g.newCode()
	admin := &models.Player{
		Id:          uuid.New().String(),
		SocketId:    socketId,
		Name:        adminName,
		Connected:   true,
		ConnectedAt: time.Now(),
	}
	room := &models.Room{
		Code:      code,
		AdminId:   admin.Id,
		AdminName: adminName,
		AdminPin:  fmt.Sprintf("%04d", g.rnd.Intn(10000)),
		Mode:      models.ModeImpostor,
		State:     models.StateLobby,
		Settings:  models.DefaultSettings(),
		Players:   []*models.Player{admin},
		Word:      models.NewWordState(),
	}
	g.rooms[code] = room
	return room, admin
}

func (g *Registry) Get(code string) (*models.Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[code]
	return room, ok
}

// RemoveIfEmpty deletes the room when its roster is empty. Invoked after
// any roster removal; a room mid-game keeps marked-disconnected players
// in the roster, so it is never reaped while a game is resumable.
func (g *Registry) RemoveIfEmpty(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[code]
	if !ok || !room.IsEmpty() {
		return false
	}
	delete(g.rooms, code)
	return true
}

func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

func (g *Registry) newCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeChars[g.rnd.Intn(len(codeChars))]
		}
		code := string(b)
		if _, taken := g.rooms[code]; !taken {
			return code
		}
	}
}
