package service

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mvarela/party-services/internal/comm"
	"github.com/mvarela/party-services/internal/roomsvc/models"
)

// WerewolfService runs the elimination game: hidden asymmetric roles, a
// night/day/vote cycle, cascading deaths and victory evaluation. The
// room's admin acts purely as narrator and never holds a role. All
// methods expect the room lock to be held by the caller.
type WerewolfService struct {
	rnd *rand.Rand
}

func NewWerewolfService() *WerewolfService {
	return &WerewolfService{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Start validates the role pool against the non-narrator roster, assigns
// shuffled roles and opens the first night.
func (s *WerewolfService) Start(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.State != models.StateLobby {
		return ErrInvalidState
	}
	eligible := room.NonAdminPlayers()
	if err := room.Settings.ValidateWerewolf(len(eligible)); err != nil {
		return err
	}

	room.Mode = models.ModeWerewolf
	room.Word = nil
	room.Wolf = models.NewWolfState()
	s.assignRoles(room, eligible)
	room.State = models.StateNight
	log.Infof("room %s: werewolf game started with %d players", room.Code, len(eligible))
	return nil
}

// assignRoles builds the pool from the configured counts plus villager
// filler, shuffles it and deals one role per eligible player. The
// narrator stays roleless and never alive.
func (s *WerewolfService) assignRoles(room *models.Room, eligible []*models.Player) {
	cfg := room.Settings
	pool := make([]models.Role, 0, len(eligible))
	addRole := func(role models.Role, count int) {
		for i := 0; i < count; i++ {
			pool = append(pool, role)
		}
	}
	addRole(models.RoleWerewolf, cfg.Wolves)
	addRole(models.RoleSeer, cfg.Seers)
	addRole(models.RoleWitch, cfg.Witches)
	addRole(models.RoleHunter, cfg.Hunters)
	addRole(models.RoleCupid, cfg.Cupids)
	addRole(models.RoleLittleGirl, cfg.LittleGirls)
	addRole(models.RoleVillager, len(eligible)-len(pool))

	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for i, p := range eligible {
		p.Role = pool[i]
		p.IsAlive = true
		p.IsLover = false
		p.LoverId = ""
		p.IsMayor = false
	}
	if admin := room.FindPlayer(room.AdminId); admin != nil {
		admin.Role = ""
		admin.IsAlive = false
	}
}

// WolfAllies returns the werewolves' names, for the wolves' role cards.
func (s *WerewolfService) WolfAllies(room *models.Room) []string {
	var names []string
	for _, p := range room.NonAdminPlayers() {
		if p.Role.IsWolf() {
			names = append(names, p.Name)
		}
	}
	return names
}

// CupidLink pairs two players, once per game, on the first night only.
// Each learns the other's name, never the role.
func (s *WerewolfService) CupidLink(room *models.Room, socketId, idA, idB string) (*models.Player, *models.Player, error) {
	if !room.IsAdmin(socketId) {
		return nil, nil, ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateNight || room.Wolf.Night != 1 || room.Wolf.CupidUsed {
		return nil, nil, ErrInvalidState
	}
	a, b := room.FindPlayer(idA), room.FindPlayer(idB)
	if a == nil || b == nil {
		return nil, nil, ErrPlayerNotFound
	}
	if a == b || !a.IsAlive || !b.IsAlive {
		return nil, nil, ErrInvalidState
	}

	a.IsLover, a.LoverId = true, b.Id
	b.IsLover, b.LoverId = true, a.Id
	room.Wolf.CupidUsed = true
	return a, b, nil
}

// MarkNightVictim records the pending wolf elimination for this night.
func (s *WerewolfService) MarkNightVictim(room *models.Room, socketId, victimId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateNight {
		return ErrInvalidState
	}
	victim := room.FindPlayer(victimId)
	if victim == nil {
		return ErrPlayerNotFound
	}
	if !victim.IsAlive {
		return ErrInvalidState
	}
	room.Wolf.NightVictim = victimId
	return nil
}

// UseLifePotion spends the witch's one-shot heal, cancelling the pending
// wolf elimination.
func (s *WerewolfService) UseLifePotion(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateNight || room.Wolf.HealUsed {
		return ErrInvalidState
	}
	room.Wolf.HealUsed = true
	room.Wolf.NightVictim = ""
	return nil
}

// UseDeathPotion spends the witch's one-shot poison on a second victim.
func (s *WerewolfService) UseDeathPotion(room *models.Room, socketId, targetId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateNight || room.Wolf.PoisonUsed {
		return ErrInvalidState
	}
	target := room.FindPlayer(targetId)
	if target == nil {
		return ErrPlayerNotFound
	}
	if !target.IsAlive {
		return ErrInvalidState
	}
	room.Wolf.PoisonUsed = true
	room.Wolf.PotionVictim = targetId
	return nil
}

// EndNight applies the recorded eliminations in one cascade pass, then
// either hands a dead hunter their shot, ends the game, or opens the day.
func (s *WerewolfService) EndNight(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateNight {
		return ErrInvalidState
	}

	var victims []pendingDeath
	if room.Wolf.NightVictim != "" {
		victims = append(victims, pendingDeath{room.Wolf.NightVictim, models.CauseWolves})
	}
	if room.Wolf.PotionVictim != "" {
		victims = append(victims, pendingDeath{room.Wolf.PotionVictim, models.CausePotion})
	}
	room.Wolf.NightVictim = ""
	room.Wolf.PotionVictim = ""

	deaths := s.resolveDeaths(room, victims)
	room.Wolf.LastDeaths = deaths
	s.afterDeaths(room, deaths, models.StateDay)
	return nil
}

// StartVoting opens the day's elimination vote.
func (s *WerewolfService) StartVoting(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateDay {
		return ErrInvalidState
	}
	room.State = models.StateWolfVoting
	room.Wolf.Votes = make(map[string]string)
	room.Wolf.VoteOrder = nil
	return nil
}

// StartNight skips the vote and moves straight into the next night.
func (s *WerewolfService) StartNight(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || room.State != models.StateDay {
		return ErrInvalidState
	}
	s.enterNight(room)
	return nil
}

// CastVote records a living player's elimination vote and resolves the
// tally once every living connected player has voted.
func (s *WerewolfService) CastVote(room *models.Room, socketId, targetId string) (bool, error) {
	if room.Mode != models.ModeWerewolf || room.State != models.StateWolfVoting {
		return false, ErrInvalidState
	}
	voter := room.FindBySocket(socketId)
	if voter == nil {
		return false, ErrPlayerNotFound
	}
	if !voter.IsAlive {
		return false, ErrInvalidState
	}
	target := room.FindPlayer(targetId)
	if target == nil {
		return false, ErrPlayerNotFound
	}
	if !target.IsAlive {
		return false, ErrInvalidState
	}

	if _, voted := room.Wolf.Votes[voter.Id]; !voted {
		room.Wolf.VoteOrder = append(room.Wolf.VoteOrder, voter.Id)
	}
	room.Wolf.Votes[voter.Id] = targetId

	return s.MaybeResolveVote(room), nil
}

// MaybeResolveVote tallies the day vote once recorded votes among living
// connected players equal their count. Also run after a disconnect.
func (s *WerewolfService) MaybeResolveVote(room *models.Room) bool {
	if room.Mode != models.ModeWerewolf || room.State != models.StateWolfVoting {
		return false
	}

	eligible := make(map[string]bool)
	for _, p := range room.Players {
		if p.IsAlive && p.Connected {
			eligible[p.Id] = true
		}
	}
	cast := 0
	for voterId := range room.Wolf.Votes {
		if eligible[voterId] {
			cast++
		}
	}
	if len(eligible) == 0 || cast < len(eligible) {
		return false
	}

	victim := s.tally(room, eligible)
	deaths := s.resolveDeaths(room, []pendingDeath{{victim, models.CauseVote}})
	room.Wolf.LastDeaths = deaths
	log.Infof("room %s: day %d vote eliminated %s", room.Code, room.Wolf.Night, victim)
	s.afterDeaths(room, deaths, models.StateNight)
	return true
}

// tally counts votes in arrival order. A tie falls to the living mayor's
// own vote when it names one of the tied players; otherwise the first
// target to have reached the plurality stands.
func (s *WerewolfService) tally(room *models.Room, eligible map[string]bool) string {
	counts := make(map[string]int)
	maxVotes := 0
	first := ""
	for _, voterId := range room.Wolf.VoteOrder {
		if !eligible[voterId] {
			continue
		}
		target := room.Wolf.Votes[voterId]
		counts[target]++
		if counts[target] > maxVotes {
			maxVotes = counts[target]
			first = target
		}
	}

	var tied []string
	for target, n := range counts {
		if n == maxVotes {
			tied = append(tied, target)
		}
	}
	if len(tied) < 2 {
		return first
	}

	for _, p := range room.Players {
		if !p.IsMayor || !p.IsAlive {
			continue
		}
		mayorPick := room.Wolf.Votes[p.Id]
		for _, t := range tied {
			if t == mayorPick {
				return mayorPick
			}
		}
	}
	return first
}

// HunterShoot is the dead hunter's one free elimination.
func (s *WerewolfService) HunterShoot(room *models.Room, socketId, targetId string) error {
	if room.Mode != models.ModeWerewolf || room.State != models.StateHunterRevenge {
		return ErrInvalidState
	}
	shooter := room.FindBySocket(socketId)
	if shooter == nil {
		return ErrPlayerNotFound
	}
	if len(room.Wolf.HunterQueue) == 0 || room.Wolf.HunterQueue[0] != shooter.Id {
		return ErrNotAuthorized
	}
	target := room.FindPlayer(targetId)
	if target == nil {
		return ErrPlayerNotFound
	}
	if !target.IsAlive {
		return ErrInvalidState
	}

	room.Wolf.HunterQueue = room.Wolf.HunterQueue[1:]
	deaths := s.resolveDeaths(room, []pendingDeath{{targetId, models.CauseHunter}})
	room.Wolf.LastDeaths = deaths
	s.afterDeaths(room, deaths, room.Wolf.ReturnState)
	return nil
}

// PendingHunter returns the player owed a revenge shot, if any.
func (s *WerewolfService) PendingHunter(room *models.Room) *models.Player {
	if room.Wolf == nil || len(room.Wolf.HunterQueue) == 0 {
		return nil
	}
	return room.FindPlayer(room.Wolf.HunterQueue[0])
}

// SetMayor hands the tie-break authority to a living player.
func (s *WerewolfService) SetMayor(room *models.Room, socketId, targetId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || !room.GameActive() {
		return ErrInvalidState
	}
	target := room.FindPlayer(targetId)
	if target == nil {
		return ErrPlayerNotFound
	}
	if !target.IsAlive {
		return ErrInvalidState
	}
	for _, p := range room.Players {
		p.IsMayor = false
	}
	target.IsMayor = true
	return nil
}

// Revive is the narrator's direct override for table mistakes.
func (s *WerewolfService) Revive(room *models.Room, socketId, targetId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || !room.GameActive() {
		return ErrInvalidState
	}
	target := room.FindPlayer(targetId)
	if target == nil {
		return ErrPlayerNotFound
	}
	if target.Id == room.AdminId || target.Role == "" {
		return ErrInvalidState
	}
	target.IsAlive = true
	return nil
}

// RoleList is the narrator's private full-roster reveal.
func (s *WerewolfService) RoleList(room *models.Room, socketId string) ([]comm.RoleInfo, error) {
	if !room.IsAdmin(socketId) {
		return nil, ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf {
		return nil, ErrInvalidState
	}
	var out []comm.RoleInfo
	for _, p := range room.NonAdminPlayers() {
		out = append(out, comm.RoleInfo{
			PlayerId:  p.Id,
			Name:      p.Name,
			Role:      string(p.Role),
			IsAlive:   p.IsAlive,
			IsLover:   p.IsLover,
			IsMayor:   p.IsMayor,
			Connected: p.Connected,
		})
	}
	return out, nil
}

// EndGame aborts the game; roles are revealed with no winning faction.
func (s *WerewolfService) EndGame(room *models.Room, socketId string) error {
	if !room.IsAdmin(socketId) {
		return ErrNotAuthorized
	}
	if room.Mode != models.ModeWerewolf || !room.GameActive() {
		return ErrInvalidState
	}
	room.State = models.StateEnded
	return nil
}

type pendingDeath struct {
	playerId string
	cause    string
}

// resolveDeaths applies every pending elimination and the "heartbreak"
// chains they trigger in one pass. A player is never eliminated twice,
// however many propagation paths reach them; the returned list is ordered
// by elimination.
func (s *WerewolfService) resolveDeaths(room *models.Room, victims []pendingDeath) []models.DeathRecord {
	var deaths []models.DeathRecord
	var kill func(p *models.Player, cause string)
	kill = func(p *models.Player, cause string) {
		if p == nil || !p.IsAlive {
			return
		}
		p.IsAlive = false
		deaths = append(deaths, models.DeathRecord{
			PlayerId: p.Id,
			Name:     p.Name,
			Role:     p.Role,
			IsWolf:   p.Role.IsWolf(),
			Cause:    cause,
		})
		if p.IsLover {
			kill(room.FindPlayer(p.LoverId), models.CauseHeartbreak)
		}
	}
	for _, v := range victims {
		kill(room.FindPlayer(v.playerId), v.cause)
	}
	return deaths
}

// afterDeaths routes play after a cascade pass: a dead hunter gets their
// shot before any victory check; then either a faction has won or play
// resumes at returnTo.
func (s *WerewolfService) afterDeaths(room *models.Room, deaths []models.DeathRecord, returnTo models.GameState) {
	for _, d := range deaths {
		if d.Role == models.RoleHunter {
			room.Wolf.HunterQueue = append(room.Wolf.HunterQueue, d.PlayerId)
		}
	}
	if len(room.Wolf.HunterQueue) > 0 {
		room.Wolf.ReturnState = returnTo
		room.State = models.StateHunterRevenge
		return
	}

	if winner, over := s.evaluateVictory(room); over {
		room.Wolf.Winner = winner
		room.State = models.StateEnded
		log.Infof("room %s: game over, %s win", room.Code, winner)
		return
	}

	if returnTo == models.StateNight {
		s.enterNight(room)
	} else {
		room.State = returnTo
	}
}

func (s *WerewolfService) enterNight(room *models.Room) {
	room.Wolf.Night++
	room.Wolf.Votes = make(map[string]string)
	room.Wolf.VoteOrder = nil
	room.State = models.StateNight
}

// evaluateVictory: the wolves win the moment they reach parity with the
// rest; the village wins the moment no wolf is left alive.
func (s *WerewolfService) evaluateVictory(room *models.Room) (models.Faction, bool) {
	wolves, others := 0, 0
	for _, p := range room.Players {
		if !p.IsAlive {
			continue
		}
		if p.Role.IsWolf() {
			wolves++
		} else {
			others++
		}
	}
	if wolves == 0 {
		return models.FactionVillage, true
	}
	if wolves >= others {
		return models.FactionWolves, true
	}
	return "", false
}
